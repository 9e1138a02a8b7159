package handler

import (
	"context"

	"github.com/sanosuguru/go-interview-scheduler/internal/application"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/candidate"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/interview"
)

// EventStoreInterface はイベントストアのインターフェース
type EventStoreInterface interface {
	Create(ctx context.Context, draft *interview.Interview) (*interview.Interview, error)
	Update(ctx context.Context, id int64, patch application.UpdatePatch) (*interview.Interview, error)
	Remove(ctx context.Context, id int64) error
	Get(id int64) (*interview.Interview, error)
	EventsOn(date string) []*interview.Interview
	Upcoming(fromDate string, limit int) []*interview.Interview
	All() []*interview.Interview
}

// WorkflowInterface はスケジューリングワークフローのインターフェース
type WorkflowInterface interface {
	Start(ctx context.Context, date string) (application.Snapshot, error)
	SelectCandidate(ctx context.Context, candidateID string) (application.Snapshot, error)
	UpdateDraft(patch application.UpdatePatch) (application.Snapshot, error)
	Save(ctx context.Context) (*interview.Interview, error)
	Cancel() application.Snapshot
	StartEditing(ctx context.Context, id int64) (application.Snapshot, error)
	RequestDelete(id int64) (application.Snapshot, error)
	ConfirmDelete(ctx context.Context) (application.Snapshot, error)
	DeclineDelete() application.Snapshot
	Snapshot() application.Snapshot
}

// CalendarViewInterface はカレンダービューのインターフェース
type CalendarViewInterface interface {
	Current() application.MonthView
	Navigate(ctx context.Context, delta int) (application.MonthView, error)
	Show(year, month int) application.MonthView
}

// UpcomingPanelInterface は今後の面接パネルのインターフェース
type UpcomingPanelInterface interface {
	Entries() []application.UpcomingEntry
}

// CandidateDirectoryInterface は候補者ディレクトリのインターフェース
type CandidateDirectoryInterface interface {
	List(ctx context.Context) ([]candidate.Candidate, error)
}
