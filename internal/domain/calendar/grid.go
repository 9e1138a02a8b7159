package calendar

import (
	"fmt"
	"time"
)

// GridSize は月グリッドのセル数（6週 × 7日固定）
// 月によってグリッドの高さが変わらないよう常に42セルを返す
const GridSize = 42

// Cell は月グリッドの1セルを表す
type Cell struct {
	Date           string `json:"date"`
	Day            int    `json:"day"`
	InCurrentMonth bool   `json:"in_current_month"`
}

// Normalize は範囲外の月を通常の日付演算で正規化する
// （month 13 → 翌年1月、month 0 → 前年12月）
func Normalize(year, month int) (int, time.Month) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Cells は指定年月の42セルグリッドを返す
// 週の先頭は日曜日。前月末尾と翌月先頭のセルで42セルまで埋める
func Cells(year, month int) []Cell {
	y, m := Normalize(year, month)
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)

	// 月初の曜日インデックス（0=日曜）の分だけ前月の日を先行させる
	offset := int(first.Weekday())
	cells := make([]Cell, 0, GridSize)
	cursor := first.AddDate(0, 0, -offset)

	for i := 0; i < GridSize; i++ {
		cells = append(cells, Cell{
			Date:           DateKey(cursor),
			Day:            cursor.Day(),
			InCurrentMonth: cursor.Month() == m && cursor.Year() == y,
		})
		cursor = cursor.AddDate(0, 0, 1)
	}
	return cells
}

// DateKey は日付をタイムゾーン非依存の YYYY-MM-DD キーに変換する
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDateKey は YYYY-MM-DD 形式の日付キーを解析する
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return time.Time{}, fmt.Errorf("日付キーの形式が不正です: %w", err)
	}
	return t, nil
}

// Today は現在のローカル日付のキーを返す
func Today() string {
	return DateKey(time.Now())
}

// MonthLabel は「2024年6月」形式の表示ラベルを返す
func MonthLabel(year, month int) string {
	y, m := Normalize(year, month)
	return fmt.Sprintf("%d年%d月", y, int(m))
}
