package application

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-interview-scheduler/internal/domain/interview"
	"github.com/sanosuguru/go-interview-scheduler/internal/pkg/logger"
	"github.com/sanosuguru/go-interview-scheduler/internal/pkg/metrics"
	"github.com/sanosuguru/go-interview-scheduler/internal/storage"
)

// DefaultUpcomingLimit は今後の面接一覧の既定件数
const DefaultUpcomingLimit = 5

// RefreshListener はストア変更後に同期的に呼ばれるリスナー
// 変更がインメモリコレクションへ反映されてから呼ばれることが保証される
type RefreshListener func()

// EventStore は面接イベントコレクションの正本を所有する
// 変更のたびにコレクション全体を永続化スロットへ書き出す。
// 書き出しに失敗してもインメモリの変更は巻き戻さない（セッション中の正はメモリ側）。
type EventStore struct {
	mu        sync.RWMutex
	slot      storage.SlotStore
	events    []*interview.Interview
	lastID    int64
	listeners []RefreshListener
	metrics   *metrics.Metrics // nil可
}

// NewEventStore はEventStoreを作成する
func NewEventStore(slot storage.SlotStore, m *metrics.Metrics) *EventStore {
	return &EventStore{slot: slot, metrics: m}
}

// OnRefresh はリフレッシュリスナーを登録する
func (s *EventStore) OnRefresh(l RefreshListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Load は永続化スロットからコレクション全体を復元する
// ペイロードの解析に失敗した場合は空のコレクションとして扱う
// （ストレージが壊れていてもスケジューリングは使えなければならない）
func (s *EventStore) Load(ctx context.Context) error {
	payload, err := s.slot.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
	s.lastID = 0

	if len(payload) == 0 {
		s.updateGaugeLocked()
		return nil
	}

	var events []*interview.Interview
	if err := json.Unmarshal(payload, &events); err != nil {
		logger.Warn("スナップショットの解析に失敗したため空のコレクションで開始します", zap.Error(err))
		s.updateGaugeLocked()
		return nil
	}

	s.events = events
	for _, e := range events {
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}
	s.updateGaugeLocked()
	return nil
}

// Create は面接イベントを検証・重複チェックのうえ登録する
// 永続化に失敗した場合は登録済みエンティティと *storage.StoreError の両方を返す
func (s *EventStore) Create(ctx context.Context, draft *interview.Interview) (*interview.Interview, error) {
	s.mu.Lock()

	if err := draft.Validate(); err != nil {
		s.mu.Unlock()
		s.countOperation("create", "validation_error")
		return nil, err
	}

	if other, ok := interview.FindConflict(draft, s.eventsOnLocked(draft.Date)); ok {
		s.mu.Unlock()
		s.countOperation("create", "conflict")
		return nil, &interview.ConflictError{With: other}
	}

	ev := draft.Clone()
	if ev.ID == 0 {
		ev.ID = s.nextIDLocked()
	} else if ev.ID > s.lastID {
		s.lastID = ev.ID
	}
	now := time.Now()
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = now
	}
	ev.UpdatedAt = now

	s.events = append(s.events, ev)
	persistErr := s.persistLocked(ctx)
	s.updateGaugeLocked()
	s.mu.Unlock()

	s.fireRefresh()
	if persistErr != nil {
		s.countOperation("create", "storage_error")
		return ev.Clone(), persistErr
	}
	s.countOperation("create", "success")
	return ev.Clone(), nil
}

// UpdatePatch は部分更新を表す。nil のフィールドは変更しない
type UpdatePatch struct {
	CandidateID     *string
	CandidateName   *string
	Date            *string
	Time            *string
	DurationMinutes *int
	Type            *interview.Type
	Location        *string
	Notes           *string
	SendInvitation  *bool
}

// Update は既存の面接イベントを部分更新する
// 日付または時刻が変わった場合のみ、自身を除外して重複チェックを再実行する
func (s *EventStore) Update(ctx context.Context, id int64, patch UpdatePatch) (*interview.Interview, error) {
	s.mu.Lock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		s.countOperation("update", "not_found")
		return nil, interview.ErrInterviewNotFound
	}

	current := s.events[idx]
	updated := current.Clone()
	applyPatch(updated, patch)

	if err := updated.Validate(); err != nil {
		s.mu.Unlock()
		s.countOperation("update", "validation_error")
		return nil, err
	}

	if updated.Date != current.Date || updated.Time != current.Time {
		if other, ok := interview.FindConflict(updated, s.eventsOnLocked(updated.Date)); ok {
			s.mu.Unlock()
			s.countOperation("update", "conflict")
			return nil, &interview.ConflictError{With: other}
		}
	}

	updated.UpdatedAt = time.Now()
	s.events[idx] = updated
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.fireRefresh()
	if persistErr != nil {
		s.countOperation("update", "storage_error")
		return updated.Clone(), persistErr
	}
	s.countOperation("update", "success")
	return updated.Clone(), nil
}

// Remove は面接イベントを削除する
// 冪等であり、存在しないIDの削除は何もしない（重複クリックに耐えるため）
func (s *EventStore) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	s.events = append(s.events[:idx], s.events[idx+1:]...)
	persistErr := s.persistLocked(ctx)
	s.updateGaugeLocked()
	s.mu.Unlock()

	s.fireRefresh()
	if persistErr != nil {
		s.countOperation("delete", "storage_error")
		return persistErr
	}
	s.countOperation("delete", "success")
	return nil
}

// Get はIDから面接イベントを取得する
func (s *EventStore) Get(id int64) (*interview.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return nil, interview.ErrInterviewNotFound
	}
	return s.events[idx].Clone(), nil
}

// EventsOn は指定日の面接イベントを挿入順で返す
func (s *EventStore) EventsOn(date string) []*interview.Interview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.eventsOnLocked(date)
	out := make([]*interview.Interview, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}

// Upcoming は fromDate 以降（当日を含む）の面接イベントを
// (日付, 時刻) 昇順で最大 limit 件返す。同時刻は挿入順を保つ
func (s *EventStore) Upcoming(fromDate string, limit int) []*interview.Interview {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	s.mu.RLock()
	var future []*interview.Interview
	for _, e := range s.events {
		if e.Date >= fromDate {
			future = append(future, e)
		}
	}
	s.mu.RUnlock()

	// ISO日付文字列は辞書順がそのまま時系列順になる
	sort.SliceStable(future, func(i, j int) bool {
		if future[i].Date != future[j].Date {
			return future[i].Date < future[j].Date
		}
		return future[i].StartMinutes() < future[j].StartMinutes()
	})

	if len(future) > limit {
		future = future[:limit]
	}
	out := make([]*interview.Interview, len(future))
	for i, e := range future {
		out[i] = e.Clone()
	}
	return out
}

// All はコレクション全体を挿入順で返す
func (s *EventStore) All() []*interview.Interview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*interview.Interview, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	return out
}

// Count は登録されている面接イベント数を返す
func (s *EventStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Persist はコレクション全体を明示的に永続化する
func (s *EventStore) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *EventStore) eventsOnLocked(date string) []*interview.Interview {
	var out []*interview.Interview
	for _, e := range s.events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

func (s *EventStore) indexOfLocked(id int64) int {
	for i, e := range s.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// nextIDLocked は作成時刻由来の単調増加IDを払い出す
func (s *EventStore) nextIDLocked() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *EventStore) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.events)
	if err != nil {
		return &storage.StoreError{Op: "marshal", Err: err}
	}

	start := time.Now()
	saveErr := s.slot.Save(ctx, payload)
	s.observePersist(time.Since(start), saveErr)

	if saveErr != nil {
		logger.Warn("スナップショットの書き込みに失敗しました", zap.Error(saveErr))
		var storeErr *storage.StoreError
		if errors.As(saveErr, &storeErr) {
			return saveErr
		}
		return &storage.StoreError{Op: "save", Err: saveErr}
	}
	return nil
}

// fireRefresh は登録済みリスナーを同期的に呼び出す
// ロック解放後に呼ぶこと（リスナーはストアを読み戻すため）
func (s *EventStore) fireRefresh() {
	s.mu.RLock()
	listeners := make([]RefreshListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}

func (s *EventStore) countOperation(operation, status string) {
	if s.metrics != nil {
		s.metrics.InterviewOperationsTotal.WithLabelValues(operation, status).Inc()
	}
}

func (s *EventStore) observePersist(d time.Duration, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.metrics.SnapshotPersistDuration.WithLabelValues("slot", status).Observe(d.Seconds())
}

func (s *EventStore) updateGaugeLocked() {
	if s.metrics != nil {
		s.metrics.ScheduledInterviews.Set(float64(len(s.events)))
	}
}

func applyPatch(e *interview.Interview, p UpdatePatch) {
	if p.CandidateID != nil {
		e.CandidateID = *p.CandidateID
	}
	if p.CandidateName != nil {
		e.CandidateName = *p.CandidateName
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.DurationMinutes != nil {
		e.DurationMinutes = *p.DurationMinutes
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	if p.SendInvitation != nil {
		e.SendInvitation = *p.SendInvitation
	}
}
