package candidate

import (
	"context"
	"errors"
)

// Candidate は外部の候補者レコードの読み取り専用ビューを表す
// このコアは候補者レコードを一切変更しない
type Candidate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	PhotoURL string `json:"photo_url,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Candidate ドメインのエラー定義
var (
	ErrCandidateNotFound = errors.New("候補者が見つかりません")
	ErrNoCandidates      = errors.New("候補者が登録されていません")
)

// Directory は候補者コラボレーターのインターフェース
type Directory interface {
	// List は候補者の一覧を取得する
	List(ctx context.Context) ([]Candidate, error)

	// GetByID はIDから候補者を取得する
	GetByID(ctx context.Context, id string) (*Candidate, error)
}
