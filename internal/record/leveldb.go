// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package record

import (
	"context"
	"encoding/json"

	log "github.com/ChainSafe/log15"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

type LevelStore struct {
	db  *leveldb.DB
	log log.Logger
}

func NewLevelStore(path string) (*LevelStore, error) {
	if path == "" {
		return nil, errors.New("leveldb path is empty")
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb %s failed", path)
	}
	return &LevelStore{db: db, log: log.Root().New("module", "record", "store", "leveldb")}, nil
}

func (s *LevelStore) Put(_ context.Context, r *Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err = s.db.Put([]byte(r.Id), data, nil); err != nil {
		return errors.Wrap(err, "leveldb put record failed")
	}
	s.log.Debug("Record stored", "id", r.Id, "verified", r.Verified)
	return nil
}

func (s *LevelStore) Get(_ context.Context, id string) (*Record, error) {
	data, err := s.db.Get([]byte(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "leveldb get record failed")
	}
	var r Record
	if err = json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "unmarshal record failed")
	}
	return &r, nil
}

func (s *LevelStore) Close() error {
	return s.db.Close()
}
