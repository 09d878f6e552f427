// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package record

import (
	"context"
	"encoding/json"

	log "github.com/ChainSafe/log15"
	"github.com/go-redis/redis/v8"
	rds "github.com/mapprotocol/compass-verifier/pkg/redis"
	"github.com/pkg/errors"
)

// RecentLimit is how many ids the redis store keeps in its recent list.
var RecentLimit int64 = 1000

type RedisStore struct {
	cli *redis.Client
	log log.Logger
}

func NewRedisStore(url string) (*RedisStore, error) {
	if err := rds.Init(url); err != nil {
		return nil, err
	}
	return &RedisStore{cli: rds.GetClient(), log: log.Root().New("module", "record", "store", "redis")}, nil
}

func (s *RedisStore) Put(ctx context.Context, r *Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.cli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, rds.RecordKeyPrefix+r.Id, data, 0)
		pipe.LPush(ctx, rds.RecordListKey, r.Id)
		pipe.LTrim(ctx, rds.RecordListKey, 0, RecentLimit-1)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "redis put record failed")
	}
	s.log.Debug("Record stored", "id", r.Id, "verified", r.Verified)
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	data, err := s.cli.Get(ctx, rds.RecordKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get record failed")
	}
	var r Record
	if err = json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "unmarshal record failed")
	}
	return &r, nil
}

// Recent returns up to n of the most recently stored ids.
func (s *RedisStore) Recent(ctx context.Context, n int64) ([]string, error) {
	return s.cli.LRange(ctx, rds.RecordListKey, 0, n-1).Result()
}

func (s *RedisStore) Close() error {
	return s.cli.Close()
}
