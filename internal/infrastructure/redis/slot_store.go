package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/go-interview-scheduler/internal/storage"
)

// SlotStore は単一のRedisキーをスロットとして使う SlotStore 実装
type SlotStore struct {
	client *redis.Client
	key    string
}

// NewSlotStore はSlotStoreを作成する
func NewSlotStore(client *redis.Client, key string) *SlotStore {
	return &SlotStore{client: client, key: key}
}

// Load はスロットの内容を読み出す。キーが存在しない場合は (nil, nil) を返す
func (s *SlotStore) Load(ctx context.Context) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, &storage.StoreError{Op: "load", Err: err}
	}
	return val, nil
}

// Save はスロットの内容を全量書き込みで置き換える
func (s *SlotStore) Save(ctx context.Context, payload []byte) error {
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return &storage.StoreError{Op: "save", Err: err}
	}
	return nil
}

var _ storage.SlotStore = (*SlotStore)(nil)
