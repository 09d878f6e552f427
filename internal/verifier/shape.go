// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package verifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mapprotocol/compass-verifier/internal/constant"
	"github.com/mapprotocol/compass-verifier/internal/receipt"
	"github.com/pkg/errors"
)

// Kind says where an event keeps its commitments.
type Kind uint8

const (
	CommitmentFromTopic Kind = iota + 1 // one commitment in topics[1]
	CommitmentFromData                  // one commitment in data word 0
	CommitmentsFromData                 // two commitments in data words 0 and 1
)

var kindNames = map[Kind]string{
	CommitmentFromTopic: "topic",
	CommitmentFromData:  "data",
	CommitmentsFromData: "data2",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, errors.Errorf("unknown shape kind %q", s)
}

// Commitments returns how many commitments an event of this kind carries.
func (k Kind) Commitments() int {
	if k == CommitmentsFromData {
		return 2
	}
	return 1
}

// Shape describes one event verified by this package.
type Shape struct {
	Name      string
	Kind      Kind
	Signature common.Hash // topics[0]; only checked in strict mode
}

func (s Shape) Commitments() int {
	return s.Kind.Commitments()
}

func (s Shape) validate() error {
	if s.Name == "" {
		return errors.New("shape name is empty")
	}
	if _, ok := kindNames[s.Kind]; !ok {
		return errors.Errorf("shape %s has unknown kind %d", s.Name, s.Kind)
	}
	return nil
}

// extract reads the commitments of s out of lg.
func (s Shape) extract(lg *receipt.Log) ([]common.Hash, error) {
	switch s.Kind {
	case CommitmentFromTopic:
		c, ok := lg.Topic(1)
		if !ok {
			return nil, errors.Wrapf(constant.ErrShapeMismatch, "%s: log has %d topics", s.Name, len(lg.Topics))
		}
		return []common.Hash{c}, nil
	case CommitmentFromData, CommitmentsFromData:
		n := s.Commitments()
		ret := make([]common.Hash, 0, n)
		for i := 0; i < n; i++ {
			c, ok := lg.Word(i)
			if !ok {
				return nil, errors.Wrapf(constant.ErrShapeMismatch, "%s: log data of %d bytes holds no word %d", s.Name, len(lg.Data), i)
			}
			ret = append(ret, c)
		}
		return ret, nil
	default:
		return nil, errors.Errorf("shape %s has unknown kind %d", s.Name, s.Kind)
	}
}

var (
	shapeOfConfirmed = Shape{
		Name:      constant.EventConfirmed,
		Kind:      CommitmentsFromData,
		Signature: constant.TopicOfConfirmed,
	}
	shapeOfInitiatorCancelled = Shape{
		Name:      constant.EventInitiatorCancelled,
		Kind:      CommitmentFromData,
		Signature: constant.TopicOfInitiatorCancelled,
	}
	shapeOfResponderCancelled = Shape{
		Name:      constant.EventResponderCancelled,
		Kind:      CommitmentsFromData,
		Signature: constant.TopicOfResponderCancelled,
	}
	shapeOfTradeInitiated = Shape{
		Name:      constant.EventTradeInitiated,
		Kind:      CommitmentFromData,
		Signature: constant.TopicOfTradeInitiated,
	}
	shapeOfTradeResponded = Shape{
		Name:      constant.EventTradeResponded,
		Kind:      CommitmentsFromData,
		Signature: constant.TopicOfTradeResponded,
	}
)

// Builtin returns the shapes of the five escrow events.
func Builtin() []Shape {
	return []Shape{
		shapeOfConfirmed,
		shapeOfInitiatorCancelled,
		shapeOfResponderCancelled,
		shapeOfTradeInitiated,
		shapeOfTradeResponded,
	}
}

// Registry maps event names to shapes. It is built once and read-only afterwards.
type Registry struct {
	shapes map[string]Shape
}

// NewRegistry returns a registry of the builtin shapes plus extra. An extra shape
// with a builtin name replaces the builtin.
func NewRegistry(extra ...Shape) (*Registry, error) {
	r := &Registry{shapes: make(map[string]Shape)}
	for _, s := range append(Builtin(), extra...) {
		if err := s.validate(); err != nil {
			return nil, err
		}
		r.shapes[strings.ToLower(s.Name)] = s
	}
	return r, nil
}

// Lookup finds a shape by case-insensitive name.
func (r *Registry) Lookup(name string) (Shape, error) {
	s, ok := r.shapes[strings.ToLower(name)]
	if !ok {
		return Shape{}, errors.Wrapf(constant.ErrUnknownEvent, "%q", name)
	}
	return s, nil
}

// Shapes returns all shapes ordered by name.
func (r *Registry) Shapes() []Shape {
	ret := make([]Shape, 0, len(r.shapes))
	for _, s := range r.shapes {
		ret = append(ret, s)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// Lookup finds a builtin shape by name.
func Lookup(name string) (Shape, error) {
	for _, s := range Builtin() {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Shape{}, errors.Wrapf(constant.ErrUnknownEvent, "%q", name)
}
