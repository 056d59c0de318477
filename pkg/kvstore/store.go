// Package kvstore is the persistence adapter: string keys mapped to JSON
// blobs, last writer wins. Every backend offers the same four operations so
// the rest of the application never knows where state lives.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("kvstore: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove is idempotent: removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Batch applies every op or none of them.
	Batch(ctx context.Context, ops ...Op) error
}

// Op is one write inside a Batch. Delete ops ignore Value.
type Op struct {
	Key    string
	Value  []byte
	Delete bool
}

func SetOp(key string, value []byte) Op {
	return Op{Key: key, Value: value}
}

func RemoveOp(key string) Op {
	return Op{Key: key, Delete: true}
}

// SetJSONOp marshals v into a set op.
func SetJSONOp(key string, v interface{}) (Op, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Op{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return SetOp(key, data), nil
}

// GetJSON decodes the value at key into v. It reports false when the key is
// absent, leaving v untouched.
func GetJSON(ctx context.Context, s Store, key string, v interface{}) (bool, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	op, err := SetJSONOp(key, v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, op.Value)
}
