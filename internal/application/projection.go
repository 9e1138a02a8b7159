package application

import (
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/calendar"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/interview"
)

// DayCell はイベントマーカー付きのグリッドセルを表す
type DayCell struct {
	calendar.Cell
	Interviews []*interview.Interview `json:"interviews,omitempty"`
}

// MonthView はカレンダー表示1か月分の読み取り専用プロジェクション
type MonthView struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Label string    `json:"label"`
	Cells []DayCell `json:"cells"`
}

// UpcomingEntry は今後の面接一覧の1行を表す
type UpcomingEntry struct {
	ID              int64          `json:"id"`
	Date            string         `json:"date"`
	Time            string         `json:"time"`
	DurationMinutes int            `json:"duration_minutes"`
	CandidateName   string         `json:"candidate_name"`
	Type            interview.Type `json:"type"`
}

// BuildMonthView はストアから月表示を全量再構築する
// インクリメンタルな差分更新は行わず、リフレッシュのたびに作り直す
func BuildMonthView(store *EventStore, year, month int) MonthView {
	y, m := calendar.Normalize(year, month)
	cells := calendar.Cells(y, int(m))

	view := MonthView{
		Year:  y,
		Month: int(m),
		Label: calendar.MonthLabel(y, int(m)),
		Cells: make([]DayCell, len(cells)),
	}
	for i, cell := range cells {
		view.Cells[i] = DayCell{
			Cell:       cell,
			Interviews: store.EventsOn(cell.Date),
		}
	}
	return view
}

// BuildUpcoming は today 以降の面接を最大 limit 件返すプロジェクション
func BuildUpcoming(store *EventStore, today string, limit int) []UpcomingEntry {
	events := store.Upcoming(today, limit)
	entries := make([]UpcomingEntry, len(events))
	for i, e := range events {
		entries[i] = UpcomingEntry{
			ID:              e.ID,
			Date:            e.Date,
			Time:            e.Time,
			DurationMinutes: e.DurationMinutes,
			CandidateName:   e.CandidateName,
			Type:            e.Type,
		}
	}
	return entries
}
