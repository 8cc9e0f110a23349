// Package memory keeps repository data in process memory. Nothing survives a
// restart.
package memory

import (
	"context"
	"sync"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository"
)

type kvRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKVRepository creates an empty in-memory KVRepository
func NewKVRepository() repository.KVRepository {
	return &kvRepository{values: map[string]string{}}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	logger.FromContext(ctx).WithPrefix("kv_memory").Debug("get key=%s found=%t", key, ok)
	return v, ok, nil
}

func (r *kvRepository) Put(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	logger.FromContext(ctx).WithPrefix("kv_memory").Debug("put key=%s bytes=%d", key, len(value))
	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}
