package redis

import (
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

var (
	RecordKeyPrefix = "verifier_record_"
	RecordListKey   = "verifier_record_list"
	redisClient     *redis.Client
	once            = &sync.Once{}
)

// Init builds the process-wide client once. Later calls are no-ops.
func Init(url string) error {
	if url == "" {
		return errors.New("redis url is empty")
	}
	var err error
	once.Do(func() {
		var opt *redis.Options
		opt, err = redis.ParseURL(url)
		if err != nil {
			err = errors.Wrap(err, "parse redis url failed")
			return
		}
		redisClient = redis.NewClient(opt)
	})
	if err == nil && redisClient == nil {
		return errors.New("redis client not initialized")
	}
	return err
}

func GetClient() *redis.Client {
	return redisClient
}
