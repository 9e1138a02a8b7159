package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-interview-scheduler/internal/domain/calendar"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/interview"
	"github.com/sanosuguru/go-interview-scheduler/internal/notify"
	"github.com/sanosuguru/go-interview-scheduler/internal/pkg/logger"
)

// reminderScanLimit は1回のスキャンで確認する面接の最大件数
const reminderScanLimit = 50

// UpcomingSource は今後の面接一覧を提供するインターフェース
type UpcomingSource interface {
	Upcoming(fromDate string, limit int) []*interview.Interview
}

// UpcomingReminder は開始が近い面接を通知するワーカー
type UpcomingReminder struct {
	source   UpcomingSource
	notifier notify.Notifier
	interval time.Duration
	lead     time.Duration
	now      func() time.Time

	mu       sync.Mutex
	notified map[int64]struct{}

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewUpcomingReminder は新しいリマインダーを作成
func NewUpcomingReminder(source UpcomingSource, notifier notify.Notifier, interval, lead time.Duration) *UpcomingReminder {
	return &UpcomingReminder{
		source:   source,
		notifier: notifier,
		interval: interval,
		lead:     lead,
		now:      time.Now,
		notified: make(map[int64]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はリマインダーを開始
func (r *UpcomingReminder) Start(ctx context.Context) {
	logger.Info("面接リマインダー開始",
		zap.Duration("interval", r.interval),
		zap.Duration("lead", r.lead),
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("面接リマインダー停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("面接リマインダー停止（シグナル受信）")
			return
		case <-ticker.C:
			r.Scan()
		}
	}
}

// Stop はリマインダーを停止
func (r *UpcomingReminder) Stop() {
	close(r.stopCh)
	<-r.doneCh
}

// Scan は開始が lead 以内に迫った面接を1回ずつ通知する
func (r *UpcomingReminder) Scan() {
	now := r.now()
	today := calendar.DateKey(now)

	for _, e := range r.source.Upcoming(today, reminderScanLimit) {
		start, err := startTime(e)
		if err != nil {
			continue
		}
		until := start.Sub(now)
		if until < 0 || until > r.lead {
			continue
		}
		if r.alreadyNotified(e.ID) {
			continue
		}

		r.notifier.Notify(notify.Info(fmt.Sprintf(
			"まもなく面接: %s %s（%s）", e.Date, e.Time, e.CandidateName)))
		r.markNotified(e.ID)

		logger.Debug("リマインダー送出",
			zap.Int64("interview_id", e.ID),
			zap.Duration("until", until),
		)
	}
}

func (r *UpcomingReminder) alreadyNotified(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.notified[id]
	return ok
}

func (r *UpcomingReminder) markNotified(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notified[id] = struct{}{}
}

// startTime は日付と時刻文字列からローカル時刻を組み立てる
func startTime(e *interview.Interview) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", e.Date+" "+e.Time, time.Local)
}
