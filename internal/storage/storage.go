// Package storage は面接イベントコレクションの永続化サーフェスを定義する。
// サーフェスは単一キーのスロットにシリアライズ済みコレクション全体を
// 保持するだけのキーバリューストアであり、トランザクションは持たない。
package storage

import (
	"context"
	"fmt"
)

// SlotStore は永続化スロットへの読み書きインターフェース
type SlotStore interface {
	// Load はスロットの内容を読み出す。スロットが空の場合は (nil, nil) を返す
	Load(ctx context.Context) ([]byte, error)

	// Save はスロットの内容を全量書き込みで置き換える
	Save(ctx context.Context, payload []byte) error
}

// StoreError は永続化の失敗を表す
// インメモリの変更は巻き戻されず、セッション中の正は引き続きメモリ側にある
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("永続化に失敗しました（%s）: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
