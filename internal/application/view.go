package application

import (
	"context"
	"sync"
	"time"

	"github.com/sanosuguru/go-interview-scheduler/internal/domain/calendar"
)

// CalendarView は表示中の月を保持する読み取り専用ビュー
// 月送りのたびに永続化スロットからコレクションを読み直す
// （別の実行コンテキストがスロットを書き換えている場合に追随するため）
type CalendarView struct {
	mu    sync.Mutex
	store *EventStore
	year  int
	month int
}

// NewCalendarView は現在の年月を表示するCalendarViewを作成する
func NewCalendarView(store *EventStore) *CalendarView {
	now := time.Now()
	return &CalendarView{
		store: store,
		year:  now.Year(),
		month: int(now.Month()),
	}
}

// Current は表示中の月ビューを全量再構築して返す
func (v *CalendarView) Current() MonthView {
	v.mu.Lock()
	year, month := v.year, v.month
	v.mu.Unlock()
	return BuildMonthView(v.store, year, month)
}

// Navigate は表示月を delta か月ぶん送り、スロットを読み直してから
// 新しい月ビューを返す
func (v *CalendarView) Navigate(ctx context.Context, delta int) (MonthView, error) {
	v.mu.Lock()
	y, m := calendar.Normalize(v.year, v.month+delta)
	v.year, v.month = y, int(m)
	year, month := v.year, v.month
	v.mu.Unlock()

	if err := v.store.Load(ctx); err != nil {
		return BuildMonthView(v.store, year, month), err
	}
	return BuildMonthView(v.store, year, month), nil
}

// Show は表示月を指定の年月に切り替える
func (v *CalendarView) Show(year, month int) MonthView {
	y, m := calendar.Normalize(year, month)
	v.mu.Lock()
	v.year, v.month = y, int(m)
	v.mu.Unlock()
	return BuildMonthView(v.store, y, int(m))
}

// UpcomingPanel は今後の面接一覧の派生ビュー
// ストアのリフレッシュシグナルを購読し、変更のたびに全量再構築する
type UpcomingPanel struct {
	mu      sync.RWMutex
	store   *EventStore
	limit   int
	today   func() string
	entries []UpcomingEntry
}

// NewUpcomingPanel はUpcomingPanelを作成し、ストアの変更を購読する
func NewUpcomingPanel(store *EventStore, limit int) *UpcomingPanel {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	p := &UpcomingPanel{
		store: store,
		limit: limit,
		today: calendar.Today,
	}
	store.OnRefresh(p.Refresh)
	p.Refresh()
	return p
}

// Refresh はパネルの内容を再構築する
// ストアの変更がコレクションへ反映された後に同期的に呼ばれる
func (p *UpcomingPanel) Refresh() {
	entries := BuildUpcoming(p.store, p.today(), p.limit)
	p.mu.Lock()
	p.entries = entries
	p.mu.Unlock()
}

// Entries は現在のパネル内容を返す
func (p *UpcomingPanel) Entries() []UpcomingEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]UpcomingEntry, len(p.entries))
	copy(out, p.entries)
	return out
}
