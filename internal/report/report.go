package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	log "github.com/ChainSafe/log15"
	"github.com/mapprotocol/compass-verifier/internal/client"
	"github.com/mapprotocol/compass-verifier/internal/constant"
)

var (
	UrlOfReport = "/api/common/verify/result"
)

type Data struct {
	Id       string `json:"id"`
	Event    string `json:"event"`
	Contract string `json:"contract_address"`
	Verified bool   `json:"verified"`
	Reason   string `json:"reason"`
}

// Report posts verification outcomes to domain from a single goroutine.
type Report struct {
	log    log.Logger
	domain string
	ch     chan *Data
	post   func(ctx context.Context, url string, data []byte) ([]byte, error)
	once   sync.Once
	done   chan struct{}
}

func New(domain string) *Report {
	ll := log.Root().New("func", "reporter")
	return &Report{
		log:    ll,
		ch:     make(chan *Data, constant.ReportQueueLength),
		domain: domain,
		post:   client.JsonPost,
		done:   make(chan struct{}),
	}
}

// Add queues data without blocking. It reports false when the queue is full.
func (r *Report) Add(data *Data) bool {
	select {
	case r.ch <- data:
		return true
	default:
		r.log.Warn("report queue is full, drop", "id", data.Id)
		return false
	}
}

// Start runs the sending loop until ctx is done. Calling it twice is a no-op.
func (r *Report) Start(ctx context.Context) {
	r.once.Do(func() {
		go r.loop(ctx)
	})
}

// Done is closed once the sending loop has exited.
func (r *Report) Done() <-chan struct{} {
	return r.done
}

func (r *Report) loop(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-r.ch:
			r.Report(ctx, data)
		}
	}
}

func (r *Report) Report(ctx context.Context, data *Data) {
	reqData, _ := json.Marshal(data)
	url := fmt.Sprintf("%s%s", r.domain, UrlOfReport)
	for i := 0; i < constant.ReportRetryLimit; i++ {
		resp, err := r.post(ctx, url, reqData)
		if err == nil {
			r.log.Info("report success", "id", data.Id, "response", string(resp))
			return
		}
		r.log.Warn("report error", "id", data.Id, "retry", i, "err", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(constant.ReportRetryWait):
		}
	}
	r.log.Error("report failed, give up", "id", data.Id)
}
