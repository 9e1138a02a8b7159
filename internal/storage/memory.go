package storage

import (
	"context"
	"sync"
)

// MemorySlotStore はプロセス内のみで有効な SlotStore 実装
// テストおよび外部ストアを持たないローカル実行用
type MemorySlotStore struct {
	mu      sync.RWMutex
	payload []byte
}

// NewMemorySlotStore はMemorySlotStoreを作成する
func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{}
}

// Load はスロットの内容を読み出す
func (s *MemorySlotStore) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.payload == nil {
		return nil, nil
	}
	out := make([]byte, len(s.payload))
	copy(out, s.payload)
	return out, nil
}

// Save はスロットの内容を置き換える
func (s *MemorySlotStore) Save(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = make([]byte, len(payload))
	copy(s.payload, payload)
	return nil
}

var _ SlotStore = (*MemorySlotStore)(nil)
