package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/go-interview-scheduler/internal/application"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/candidate"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/interview"
)

// MockEventStore はEventStoreInterfaceのモック
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Create(ctx context.Context, draft *interview.Interview) (*interview.Interview, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interview.Interview), args.Error(1)
}

func (m *MockEventStore) Update(ctx context.Context, id int64, patch application.UpdatePatch) (*interview.Interview, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interview.Interview), args.Error(1)
}

func (m *MockEventStore) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventStore) Get(id int64) (*interview.Interview, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interview.Interview), args.Error(1)
}

func (m *MockEventStore) EventsOn(date string) []*interview.Interview {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*interview.Interview)
}

func (m *MockEventStore) Upcoming(fromDate string, limit int) []*interview.Interview {
	args := m.Called(fromDate, limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*interview.Interview)
}

func (m *MockEventStore) All() []*interview.Interview {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*interview.Interview)
}

// MockWorkflow はWorkflowInterfaceのモック
type MockWorkflow struct {
	mock.Mock
}

func (m *MockWorkflow) Start(ctx context.Context, date string) (application.Snapshot, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(application.Snapshot), args.Error(1)
}

func (m *MockWorkflow) SelectCandidate(ctx context.Context, candidateID string) (application.Snapshot, error) {
	args := m.Called(ctx, candidateID)
	return args.Get(0).(application.Snapshot), args.Error(1)
}

func (m *MockWorkflow) UpdateDraft(patch application.UpdatePatch) (application.Snapshot, error) {
	args := m.Called(patch)
	return args.Get(0).(application.Snapshot), args.Error(1)
}

func (m *MockWorkflow) Save(ctx context.Context) (*interview.Interview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interview.Interview), args.Error(1)
}

func (m *MockWorkflow) Cancel() application.Snapshot {
	args := m.Called()
	return args.Get(0).(application.Snapshot)
}

func (m *MockWorkflow) StartEditing(ctx context.Context, id int64) (application.Snapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(application.Snapshot), args.Error(1)
}

func (m *MockWorkflow) RequestDelete(id int64) (application.Snapshot, error) {
	args := m.Called(id)
	return args.Get(0).(application.Snapshot), args.Error(1)
}

func (m *MockWorkflow) ConfirmDelete(ctx context.Context) (application.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(application.Snapshot), args.Error(1)
}

func (m *MockWorkflow) DeclineDelete() application.Snapshot {
	args := m.Called()
	return args.Get(0).(application.Snapshot)
}

func (m *MockWorkflow) Snapshot() application.Snapshot {
	args := m.Called()
	return args.Get(0).(application.Snapshot)
}

// MockCalendarView はCalendarViewInterfaceのモック
type MockCalendarView struct {
	mock.Mock
}

func (m *MockCalendarView) Current() application.MonthView {
	args := m.Called()
	return args.Get(0).(application.MonthView)
}

func (m *MockCalendarView) Navigate(ctx context.Context, delta int) (application.MonthView, error) {
	args := m.Called(ctx, delta)
	return args.Get(0).(application.MonthView), args.Error(1)
}

func (m *MockCalendarView) Show(year, month int) application.MonthView {
	args := m.Called(year, month)
	return args.Get(0).(application.MonthView)
}

// MockUpcomingPanel はUpcomingPanelInterfaceのモック
type MockUpcomingPanel struct {
	mock.Mock
}

func (m *MockUpcomingPanel) Entries() []application.UpcomingEntry {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]application.UpcomingEntry)
}

// MockCandidateDirectory はCandidateDirectoryInterfaceのモック
type MockCandidateDirectory struct {
	mock.Mock
}

func (m *MockCandidateDirectory) List(ctx context.Context) ([]candidate.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]candidate.Candidate), args.Error(1)
}
