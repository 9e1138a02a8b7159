package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-interview-scheduler/internal/domain/interview"
	"github.com/sanosuguru/go-interview-scheduler/internal/notify"
)

type staticSource struct {
	events []*interview.Interview
}

func (s *staticSource) Upcoming(_ string, _ int) []*interview.Interview {
	return s.events
}

func reminderAt(t *testing.T, now time.Time, events ...*interview.Interview) (*UpcomingReminder, *notify.Recorder) {
	t.Helper()
	recorder := notify.NewRecorder()
	r := NewUpcomingReminder(&staticSource{events: events}, recorder, time.Minute, 30*time.Minute)
	r.now = func() time.Time { return now }
	return r, recorder
}

func TestUpcomingReminder_Scan(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 45, 0, 0, time.Local)

	t.Run("lead以内に始まる面接を通知する", func(t *testing.T) {
		r, recorder := reminderAt(t, now, &interview.Interview{
			ID: 1, Date: "2024-06-10", Time: "10:00", CandidateName: "山田 太郎",
		})

		r.Scan()

		all := recorder.All()
		require.Len(t, all, 1)
		assert.Equal(t, notify.LevelInfo, all[0].Level)
		assert.Contains(t, all[0].Message, "まもなく面接")
		assert.Contains(t, all[0].Message, "山田 太郎")
	})

	t.Run("leadより先の面接は通知しない", func(t *testing.T) {
		r, recorder := reminderAt(t, now, &interview.Interview{
			ID: 2, Date: "2024-06-10", Time: "14:00",
		})

		r.Scan()
		assert.Empty(t, recorder.All())
	})

	t.Run("すでに始まった面接は通知しない", func(t *testing.T) {
		r, recorder := reminderAt(t, now, &interview.Interview{
			ID: 3, Date: "2024-06-10", Time: "09:00",
		})

		r.Scan()
		assert.Empty(t, recorder.All())
	})

	t.Run("時刻が壊れている面接は読み飛ばす", func(t *testing.T) {
		r, recorder := reminderAt(t, now,
			&interview.Interview{ID: 4, Date: "2024-06-10", Time: "potato"},
			&interview.Interview{ID: 5, Date: "2024-06-10", Time: "10:00", CandidateName: "佐藤 花子"},
		)

		r.Scan()
		all := recorder.All()
		require.Len(t, all, 1)
		assert.Contains(t, all[0].Message, "佐藤 花子")
	})

	t.Run("同じ面接は一度しか通知しない", func(t *testing.T) {
		r, recorder := reminderAt(t, now, &interview.Interview{
			ID: 6, Date: "2024-06-10", Time: "10:00",
		})

		r.Scan()
		r.Scan()
		r.Scan()
		assert.Len(t, recorder.All(), 1)
	})
}

func TestUpcomingReminder_StartStop(t *testing.T) {
	recorder := notify.NewRecorder()
	r := NewUpcomingReminder(&staticSource{}, recorder, 10*time.Millisecond, 30*time.Minute)

	done := make(chan struct{})
	go func() {
		r.Start(context.Background())
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	r.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("リマインダーが停止しない")
	}
}

func TestUpcomingReminder_StopsOnContextCancel(t *testing.T) {
	recorder := notify.NewRecorder()
	r := NewUpcomingReminder(&staticSource{}, recorder, 10*time.Millisecond, 30*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("リマインダーが停止しない")
	}
}
