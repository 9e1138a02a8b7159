package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/go-interview-scheduler/internal/storage"
)

var (
	ErrLockNotAcquired = errors.New("ロックを取得できませんでした")
	ErrLockNotOwned    = errors.New("ロックの所有者ではありません")
)

// SlotLock はスロットの読み書きを直列化するRedisロック
// 複数プロセスが同じスロットキーを共有する場合の
// 全量書き込み同士の競合（last-writer-wins）を防ぐ
type SlotLock struct {
	client *redis.Client
	key    string
	value  string
	ttl    time.Duration
}

// LockManager はスロットロックを管理する
type LockManager struct {
	client *redis.Client
}

func NewLockManager(client *redis.Client) *LockManager {
	return &LockManager{client: client}
}

// Acquire はロックを取得する
func (m *LockManager) Acquire(ctx context.Context, key string, ttl time.Duration) (*SlotLock, error) {
	lockKey := fmt.Sprintf("lock:%s", key)
	lockValue := uuid.New().String()

	// SetNX でキーが存在しない場合のみ取得
	ok, err := m.client.SetNX(ctx, lockKey, lockValue, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("ロック取得に失敗: %w", err)
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}

	return &SlotLock{client: m.client, key: lockKey, value: lockValue, ttl: ttl}, nil
}

// AcquireWithRetry はリトライ付きでロックを取得する
func (m *LockManager) AcquireWithRetry(ctx context.Context, key string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (*SlotLock, error) {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		lock, err := m.Acquire(ctx, key, ttl)
		if err == nil {
			return lock, nil
		}
		lastErr = err
		if !errors.Is(err, ErrLockNotAcquired) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, lastErr
}

// Release はロックを解放する（Lua スクリプトで所有者確認と削除をアトミックに実行）
func (l *SlotLock) Release(ctx context.Context) error {
	script := `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`
	result, err := l.client.Eval(ctx, script, []string{l.key}, l.value).Int()
	if err != nil {
		return fmt.Errorf("ロック解放に失敗: %w", err)
	}
	if result == 0 {
		return ErrLockNotOwned
	}
	return nil
}

// GuardedSlotStore は書き込みをスロットロックで直列化する SlotStore デコレーター
type GuardedSlotStore struct {
	inner   storage.SlotStore
	lm      *LockManager
	slotKey string
	ttl     time.Duration
}

// NewGuardedSlotStore はGuardedSlotStoreを作成する
func NewGuardedSlotStore(inner storage.SlotStore, lm *LockManager, slotKey string) *GuardedSlotStore {
	return &GuardedSlotStore{inner: inner, lm: lm, slotKey: slotKey, ttl: 10 * time.Second}
}

// Load はスロットの内容を読み出す
func (s *GuardedSlotStore) Load(ctx context.Context) ([]byte, error) {
	return s.inner.Load(ctx)
}

// Save はロックを保持した状態で全量書き込みを行う
func (s *GuardedSlotStore) Save(ctx context.Context, payload []byte) error {
	lock, err := s.lm.AcquireWithRetry(ctx, s.slotKey, s.ttl, 3, 100*time.Millisecond)
	if err != nil {
		return &storage.StoreError{Op: "lock", Err: err}
	}
	defer lock.Release(ctx)

	return s.inner.Save(ctx, payload)
}

var _ storage.SlotStore = (*GuardedSlotStore)(nil)
