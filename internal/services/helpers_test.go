package services

import (
	"fmt"
	"io"
	"sync"

	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
)

type memMedia struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemMedia() *memMedia {
	return &memMedia{files: map[string][]byte{}}
}

func (m *memMedia) Save(_ dbctx.Context, key string, file io.Reader) error {
	b, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = b
	return nil
}

func (m *memMedia) Delete(_ dbctx.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[key]; !ok {
		return fmt.Errorf("media %q: %w", key, pkgerrors.ErrNotFound)
	}
	delete(m.files, key)
	return nil
}

func (m *memMedia) URL(key string) string { return "/media/" + key }

func (m *memMedia) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[key]
	return ok
}
