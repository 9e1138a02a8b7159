package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-interview-scheduler/internal/storage"
)

// snapshotRow はDBの行を表す構造体
type snapshotRow struct {
	SlotKey   string    `db:"slot_key"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SlotStore は単一行テーブルをスロットとして使う SlotStore 実装
// スロットキーごとに1行のみ保持し、保存はUPSERTで全量置き換えになる
type SlotStore struct {
	db  *sqlx.DB
	key string
}

// NewSlotStore はSlotStoreを作成する
func NewSlotStore(db *sqlx.DB, key string) *SlotStore {
	return &SlotStore{db: db, key: key}
}

// Load はスロットの内容を読み出す。行が存在しない場合は (nil, nil) を返す
func (s *SlotStore) Load(ctx context.Context) ([]byte, error) {
	query := `SELECT slot_key, payload, updated_at FROM calendar_snapshots WHERE slot_key = $1`

	var row snapshotRow
	err := s.db.GetContext(ctx, &row, query, s.key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &storage.StoreError{Op: "load", Err: err}
	}
	return row.Payload, nil
}

// Save はスロットの内容をUPSERTで置き換える
func (s *SlotStore) Save(ctx context.Context, payload []byte) error {
	query := `
		INSERT INTO calendar_snapshots (slot_key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (slot_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, s.key, payload, time.Now()); err != nil {
		return &storage.StoreError{Op: "save", Err: err}
	}
	return nil
}

var _ storage.SlotStore = (*SlotStore)(nil)
