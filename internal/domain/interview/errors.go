package interview

import (
	"errors"
	"fmt"
)

// Interview ドメインのエラー定義
var (
	ErrInterviewNotFound = errors.New("面接イベントが見つかりません")
	ErrDateRequired      = errors.New("日付は必須です")
	ErrTimeRequired      = errors.New("時刻は必須です")
	ErrInvalidDate       = errors.New("日付は YYYY-MM-DD 形式である必要があります")
	ErrInvalidTime       = errors.New("時刻は HH:MM 形式である必要があります")
	ErrInvalidDuration   = errors.New("面接時間は1分以上である必要があります")
	ErrInvalidType       = errors.New("面接形式が不正です")
)

// ConflictError は時間帯が重複する既存の面接イベントを保持するエラー
type ConflictError struct {
	With *Interview
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("面接時間が重複しています: %s %s（%s）",
		e.With.Date, e.With.Time, e.With.CandidateName)
}

// IsValidation はフォーム修正で回復可能なバリデーションエラーかを返す
func IsValidation(err error) bool {
	return errors.Is(err, ErrDateRequired) ||
		errors.Is(err, ErrTimeRequired) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrInvalidType)
}
