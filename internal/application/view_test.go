package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-interview-scheduler/internal/storage"
)

func TestBuildMonthView(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Create(ctx, draft("2024-06-10", "10:00", 60))
	require.NoError(t, err)
	_, err = store.Create(ctx, draft("2024-06-10", "14:00", 30))
	require.NoError(t, err)

	view := BuildMonthView(store, 2024, 6)

	assert.Equal(t, 2024, view.Year)
	assert.Equal(t, 6, view.Month)
	assert.Equal(t, "2024年6月", view.Label)
	require.Len(t, view.Cells, 42)

	var withEvents []DayCell
	for _, c := range view.Cells {
		if len(c.Interviews) > 0 {
			withEvents = append(withEvents, c)
		}
	}
	require.Len(t, withEvents, 1)
	assert.Equal(t, "2024-06-10", withEvents[0].Date)
	assert.Len(t, withEvents[0].Interviews, 2)
}

func TestBuildMonthView_NormalizesOverflowMonth(t *testing.T) {
	store := newTestStore(t)

	view := BuildMonthView(store, 2024, 13)
	assert.Equal(t, 2025, view.Year)
	assert.Equal(t, 1, view.Month)
	assert.Equal(t, "2025年1月", view.Label)
}

func TestBuildUpcoming(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.Create(ctx, draft("2024-06-12", "09:00", 45))
	require.NoError(t, err)
	_, err = store.Create(ctx, draft("2024-06-01", "10:00", 30))
	require.NoError(t, err)

	entries := BuildUpcoming(store, "2024-06-10", 5)
	require.Len(t, entries, 1)
	assert.Equal(t, created.ID, entries[0].ID)
	assert.Equal(t, "2024-06-12", entries[0].Date)
	assert.Equal(t, "09:00", entries[0].Time)
	assert.Equal(t, 45, entries[0].DurationMinutes)
	assert.Equal(t, "山田 太郎", entries[0].CandidateName)
}

func TestCalendarView_Navigate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	view := NewCalendarView(store)

	t.Run("年をまたぐ月送りが正規化される", func(t *testing.T) {
		month := view.Show(2024, 12)
		assert.Equal(t, 12, month.Month)

		month, err := view.Navigate(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 2025, month.Year)
		assert.Equal(t, 1, month.Month)

		month, err = view.Navigate(ctx, -1)
		require.NoError(t, err)
		assert.Equal(t, 2024, month.Year)
		assert.Equal(t, 12, month.Month)
	})

	t.Run("複数月をまとめて送れる", func(t *testing.T) {
		view.Show(2024, 6)
		month, err := view.Navigate(ctx, 8)
		require.NoError(t, err)
		assert.Equal(t, 2025, month.Year)
		assert.Equal(t, 2, month.Month)
	})
}

func TestCalendarView_NavigateReloadsFromSlot(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlotStore()
	store := NewEventStore(slot, nil)
	view := NewCalendarView(store)
	view.Show(2024, 6)

	// 別の実行コンテキストがスロットを書き換えた状況を再現する
	other := NewEventStore(slot, nil)
	_, err := other.Create(ctx, draft("2024-07-05", "10:00", 60))
	require.NoError(t, err)

	require.Equal(t, 0, store.Count())
	month, err := view.Navigate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, month.Month)
	assert.Equal(t, 1, store.Count())
}

func TestUpcomingPanel(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	panel := NewUpcomingPanel(store, 3)
	panel.today = func() string { return "2024-06-01" }
	panel.Refresh()

	t.Run("初期状態は空", func(t *testing.T) {
		assert.Empty(t, panel.Entries())
	})

	t.Run("ストアの変更に同期して再構築される", func(t *testing.T) {
		created, err := store.Create(ctx, draft("2024-06-10", "10:00", 60))
		require.NoError(t, err)

		entries := panel.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, created.ID, entries[0].ID)
	})

	t.Run("削除にも追随する", func(t *testing.T) {
		entries := panel.Entries()
		require.Len(t, entries, 1)

		require.NoError(t, store.Remove(ctx, entries[0].ID))
		assert.Empty(t, panel.Entries())
	})

	t.Run("件数上限を超えた分は表示しない", func(t *testing.T) {
		for _, tm := range []string{"09:00", "10:00", "11:00", "12:00"} {
			_, err := store.Create(ctx, draft("2024-06-20", tm, 60))
			require.NoError(t, err)
		}
		assert.Len(t, panel.Entries(), 3)
	})
}
