package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-interview-scheduler/internal/domain/candidate"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/interview"
	"github.com/sanosuguru/go-interview-scheduler/internal/notify"
	"github.com/sanosuguru/go-interview-scheduler/internal/pkg/logger"
	"github.com/sanosuguru/go-interview-scheduler/internal/storage"
)

// WorkflowState はスケジューリングワークフローの状態を表す
type WorkflowState string

const (
	StateIdle             WorkflowState = "idle"
	StatePickingCandidate WorkflowState = "picking_candidate"
	StateComposingEvent   WorkflowState = "composing_event"
	StateSaving           WorkflowState = "saving"
	StateConfirmingDelete WorkflowState = "confirming_delete"
)

// SchedulingWorkflow ドメインのエラー定義
var (
	ErrInvalidTransition = errors.New("現在の状態では実行できない操作です")
)

// WorkflowDefaults はフォーム初期値の設定
type WorkflowDefaults struct {
	Time            string
	DurationMinutes int
}

// SchedulingWorkflow は「日付選択 → 候補者選択 → フォーム入力 → 保存」の
// 状態機械を駆動する。同時に有効なインスタンスは1つで、再入不可：
// 進行中のセッションがある状態で Start が呼ばれた場合は前のセッションを
// リセットしてから開始する（共有フォームを使う元の画面と同じ構え）。
type SchedulingWorkflow struct {
	mu        sync.Mutex
	store     *EventStore
	directory candidate.Directory
	notifier  notify.Notifier
	defaults  WorkflowDefaults

	state           WorkflowState
	sessionID       string
	draft           *interview.Interview
	editing         bool
	pendingDeleteID int64
}

// NewSchedulingWorkflow はSchedulingWorkflowを作成する
func NewSchedulingWorkflow(store *EventStore, dir candidate.Directory, notifier notify.Notifier, defaults WorkflowDefaults) *SchedulingWorkflow {
	if defaults.Time == "" {
		defaults.Time = "10:00"
	}
	if defaults.DurationMinutes <= 0 {
		defaults.DurationMinutes = interview.DefaultDurationMinutes
	}
	return &SchedulingWorkflow{
		store:     store,
		directory: dir,
		notifier:  notifier,
		defaults:  defaults,
		state:     StateIdle,
	}
}

// Snapshot はワークフローの現在状態のコピーを表す
type Snapshot struct {
	State           WorkflowState        `json:"state"`
	SessionID       string               `json:"session_id,omitempty"`
	Editing         bool                 `json:"editing"`
	Draft           *interview.Interview `json:"draft,omitempty"`
	PendingDeleteID int64                `json:"pending_delete_id,omitempty"`
}

// Snapshot は現在の状態を返す
func (w *SchedulingWorkflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *SchedulingWorkflow) snapshotLocked() Snapshot {
	s := Snapshot{
		State:           w.state,
		SessionID:       w.sessionID,
		Editing:         w.editing,
		PendingDeleteID: w.pendingDeleteID,
	}
	if w.draft != nil {
		s.Draft = w.draft.Clone()
	}
	return s
}

// Start は日付セルのクリックからセッションを開始する
// 候補者が1人も存在しない場合は遷移を拒否して Idle のまま留まる
func (w *SchedulingWorkflow) Start(ctx context.Context, date string) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateIdle {
		logger.Debug("進行中のセッションをリセットします",
			zap.String("session_id", w.sessionID),
			zap.String("state", string(w.state)),
		)
		w.resetLocked()
	}

	candidates, err := w.directory.List(ctx)
	if err != nil {
		w.notifier.Notify(notify.Error("候補者一覧を取得できませんでした"))
		return w.snapshotLocked(), fmt.Errorf("候補者一覧の取得に失敗: %w", err)
	}
	if len(candidates) == 0 {
		w.notifier.Notify(notify.Info("面接を登録するには先に候補者を登録してください"))
		return w.snapshotLocked(), candidate.ErrNoCandidates
	}

	w.state = StatePickingCandidate
	w.sessionID = uuid.New().String()
	w.draft = &interview.Interview{
		Date:            date,
		Time:            w.defaults.Time,
		DurationMinutes: w.defaults.DurationMinutes,
		Type:            interview.TypeInPerson,
	}
	return w.snapshotLocked(), nil
}

// SelectCandidate は候補者を選択してフォーム入力へ遷移する
func (w *SchedulingWorkflow) SelectCandidate(ctx context.Context, candidateID string) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StatePickingCandidate {
		return w.snapshotLocked(), ErrInvalidTransition
	}

	c, err := w.directory.GetByID(ctx, candidateID)
	if err != nil {
		return w.snapshotLocked(), err
	}

	// 候補者名は選択時点の値を非正規化して保持する
	w.draft.CandidateID = c.ID
	w.draft.CandidateName = c.Name
	w.state = StateComposingEvent
	return w.snapshotLocked(), nil
}

// UpdateDraft はフォーム内容をドラフトへ反映する
func (w *SchedulingWorkflow) UpdateDraft(patch UpdatePatch) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateComposingEvent {
		return w.snapshotLocked(), ErrInvalidTransition
	}

	applyPatch(w.draft, patch)
	return w.snapshotLocked(), nil
}

// Save はドラフトを検証・重複チェックのうえ永続化する
// バリデーション・重複エラー時はフォーム内容を保持したまま ComposingEvent に戻る。
// 永続化の失敗はインメモリの変更を巻き戻さないため、警告通知のうえ成功として扱う
func (w *SchedulingWorkflow) Save(ctx context.Context) (*interview.Interview, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateComposingEvent {
		return nil, ErrInvalidTransition
	}
	w.state = StateSaving

	var (
		saved *interview.Interview
		err   error
	)
	if w.editing {
		saved, err = w.store.Update(ctx, w.draft.ID, patchFromDraft(w.draft))
	} else {
		saved, err = w.store.Create(ctx, w.draft)
	}

	if err != nil {
		var storeErr *storage.StoreError
		switch {
		case errors.As(err, &storeErr):
			// インメモリには反映済み。変更がリロード後に残らない可能性だけ警告する
			w.notifier.Notify(notify.Error("保存に失敗しました。変更はリロード後に失われる可能性があります"))
			w.resetLocked()
			return saved, nil
		case errors.Is(err, interview.ErrInterviewNotFound):
			w.notifier.Notify(notify.Error("対象の面接が見つかりません"))
			w.resetLocked()
			return nil, err
		default:
			// バリデーション・重複はフォーム修正で回復可能
			w.notifier.Notify(notify.Error(err.Error()))
			w.state = StateComposingEvent
			return nil, err
		}
	}

	if w.editing {
		w.notifier.Notify(notify.Success("面接を更新しました"))
	} else {
		w.notifier.Notify(notify.Success("面接を登録しました"))
	}
	w.resetLocked()
	return saved, nil
}

// Cancel はストアを呼び出さずにセッションを破棄して Idle へ戻る
func (w *SchedulingWorkflow) Cancel() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.resetLocked()
	return w.snapshotLocked()
}

// StartEditing は既存イベントからドラフトを事前入力して編集セッションを開始する
func (w *SchedulingWorkflow) StartEditing(ctx context.Context, id int64) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateIdle {
		w.resetLocked()
	}

	ev, err := w.store.Get(id)
	if err != nil {
		w.notifier.Notify(notify.Error("対象の面接が見つかりません"))
		return w.snapshotLocked(), err
	}

	w.state = StateComposingEvent
	w.sessionID = uuid.New().String()
	w.draft = ev
	w.editing = true
	return w.snapshotLocked(), nil
}

// RequestDelete は削除確認ステップへ遷移する
func (w *SchedulingWorkflow) RequestDelete(id int64) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateIdle {
		w.resetLocked()
	}

	if _, err := w.store.Get(id); err != nil {
		w.notifier.Notify(notify.Error("対象の面接が見つかりません"))
		return w.snapshotLocked(), err
	}

	w.state = StateConfirmingDelete
	w.sessionID = uuid.New().String()
	w.pendingDeleteID = id
	return w.snapshotLocked(), nil
}

// ConfirmDelete は確認済みの削除を実行する
func (w *SchedulingWorkflow) ConfirmDelete(ctx context.Context) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateConfirmingDelete {
		return w.snapshotLocked(), ErrInvalidTransition
	}

	err := w.store.Remove(ctx, w.pendingDeleteID)
	if err != nil {
		var storeErr *storage.StoreError
		if errors.As(err, &storeErr) {
			w.notifier.Notify(notify.Error("削除の保存に失敗しました。変更はリロード後に失われる可能性があります"))
			w.resetLocked()
			return w.snapshotLocked(), nil
		}
		w.notifier.Notify(notify.Error(err.Error()))
		w.resetLocked()
		return w.snapshotLocked(), err
	}

	w.notifier.Notify(notify.Success("面接を削除しました"))
	w.resetLocked()
	return w.snapshotLocked(), nil
}

// DeclineDelete は削除を取りやめ、副作用なしで元の状態へ戻る
func (w *SchedulingWorkflow) DeclineDelete() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateConfirmingDelete {
		w.resetLocked()
	}
	return w.snapshotLocked()
}

func (w *SchedulingWorkflow) resetLocked() {
	w.state = StateIdle
	w.sessionID = ""
	w.draft = nil
	w.editing = false
	w.pendingDeleteID = 0
}

// patchFromDraft は編集ドラフトの全フィールドを更新パッチへ写す
func patchFromDraft(d *interview.Interview) UpdatePatch {
	return UpdatePatch{
		CandidateID:     &d.CandidateID,
		CandidateName:   &d.CandidateName,
		Date:            &d.Date,
		Time:            &d.Time,
		DurationMinutes: &d.DurationMinutes,
		Type:            &d.Type,
		Location:        &d.Location,
		Notes:           &d.Notes,
		SendInvitation:  &d.SendInvitation,
	}
}
