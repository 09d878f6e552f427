package expose

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mapprotocol/compass-verifier/config"
	"github.com/mapprotocol/compass-verifier/internal/constant"
	"github.com/mapprotocol/compass-verifier/internal/verifier"
	"github.com/mapprotocol/compass-verifier/pkg/util"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	DefaultConfigPath = "./config.json"
	DefaultPort       = ":8002"
)

type Config struct {
	Port   string           `json:"port,omitempty"`
	Strict bool             `json:"strict,omitempty"`
	Store  StoreConfig      `json:"store,omitempty"`
	Events []RawEventConfig `json:"events,omitempty"`
	Other  Construction     `json:"other,omitempty"`
}

type StoreConfig struct {
	Type   string `json:"type,omitempty"`   // "redis", "leveldb" or empty
	Target string `json:"target,omitempty"` // redis url or leveldb path
}

// RawEventConfig declares an event beyond the builtin ones. Either Signature (the
// event prototype, e.g. "Settled(bytes32)") or Topic may be set.
type RawEventConfig struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Signature string `json:"signature,omitempty"`
	Topic     string `json:"topic,omitempty"`
}

type Construction struct {
	MonitorUrl string `json:"monitor_url,omitempty"`
	Env        string `json:"env,omitempty"`
	ReportUrl  string `json:"report_url,omitempty"`
}

func (c *Config) validate() error {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	for _, ev := range c.Events {
		if ev.Name == "" {
			return fmt.Errorf("required field event.name empty")
		}
		if _, err := verifier.ParseKind(ev.Kind); err != nil {
			return errors.Wrapf(err, "event %s", ev.Name)
		}
		if ev.Signature != "" && ev.Topic != "" {
			return fmt.Errorf("event %s: set only one of signature and topic", ev.Name)
		}
		if ev.Topic != "" {
			if _, err := util.ParseHash(ev.Topic); err != nil {
				return errors.Wrapf(err, "event %s", ev.Name)
			}
		}
	}
	switch c.Store.Type {
	case "", "redis", "leveldb":
	default:
		return fmt.Errorf("unrecognized store type: %s", c.Store.Type)
	}
	if c.Store.Type != "" && c.Store.Target == "" {
		return fmt.Errorf("required field store.target empty for store %s", c.Store.Type)
	}
	return nil
}

// Shapes converts the configured events.
func (c *Config) Shapes() ([]verifier.Shape, error) {
	ret := make([]verifier.Shape, 0, len(c.Events))
	for _, ev := range c.Events {
		kind, err := verifier.ParseKind(ev.Kind)
		if err != nil {
			return nil, err
		}
		var sig common.Hash
		switch {
		case ev.Signature != "":
			sig = constant.EventSig(ev.Signature).GetTopic()
		case ev.Topic != "":
			if sig, err = util.ParseHash(ev.Topic); err != nil {
				return nil, err
			}
		}
		ret = append(ret, verifier.Shape{Name: ev.Name, Kind: kind, Signature: sig})
	}
	return ret, nil
}

func Local(ctx *cli.Context) (*Config, error) {
	var fig Config
	path := DefaultConfigPath
	if ctx.String(config.ConfigFileFlag.Name) != "" {
		path = ctx.String(config.ConfigFileFlag.Name)
	}

	err := loadConfig(path, &fig)
	if err != nil {
		return &fig, err
	}
	if ctx.IsSet(config.ExposePortFlag.Name) {
		fig.Port = fmt.Sprintf(":%d", ctx.Int(config.ExposePortFlag.Name))
	}
	if ctx.Bool(config.StrictFlag.Name) {
		fig.Strict = true
	}

	err = fig.validate()
	if err != nil {
		return nil, err
	}
	return &fig, nil
}

func loadConfig(file string, config *Config) error {
	ext := filepath.Ext(file)
	fp, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	f, err := os.Open(filepath.Clean(fp))
	if err != nil {
		return err
	}
	defer f.Close()

	if ext == ".json" {
		if err = json.NewDecoder(f).Decode(&config); err != nil {
			return err
		}
	} else {
		return fmt.Errorf("unrecognized extention: %s", ext)
	}

	return nil
}
