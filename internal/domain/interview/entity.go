package interview

import (
	"strconv"
	"strings"
	"time"
)

// Type は面接の形式を表す
type Type string

const (
	TypeInPerson Type = "in-person"
	TypeVirtual  Type = "virtual"
	TypePhone    Type = "phone"
)

// DefaultDurationMinutes は面接時間の既定値（分）
const DefaultDurationMinutes = 60

// Interview は面接イベントエンティティを表す
// Date は YYYY-MM-DD、Time は HH:MM のタイムゾーン非依存文字列として扱う
type Interview struct {
	ID              int64     `json:"id"`
	CandidateID     string    `json:"candidate_id,omitempty"`
	CandidateName   string    `json:"candidate_name"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	DurationMinutes int       `json:"duration_minutes"`
	Type            Type      `json:"type"`
	Location        string    `json:"location,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	SendInvitation  bool      `json:"send_invitation"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewInterview は新しい面接イベントを作成する
func NewInterview(candidateID, candidateName, date, timeOfDay string) *Interview {
	now := time.Now()
	return &Interview{
		CandidateID:     candidateID,
		CandidateName:   candidateName,
		Date:            date,
		Time:            timeOfDay,
		DurationMinutes: DefaultDurationMinutes,
		Type:            TypeInPerson,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate は面接イベントの検証を行う
func (i *Interview) Validate() error {
	if i.Date == "" {
		return ErrDateRequired
	}
	if _, err := time.Parse("2006-01-02", i.Date); err != nil {
		return ErrInvalidDate
	}
	if i.Time == "" {
		return ErrTimeRequired
	}
	if _, ok := parseMinutes(i.Time); !ok {
		return ErrInvalidTime
	}
	if i.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	switch i.Type {
	case TypeInPerson, TypeVirtual, TypePhone:
	default:
		return ErrInvalidType
	}
	return nil
}

// StartMinutes は開始時刻を深夜0時からの分数で返す
// 不正な時刻文字列は 00:00 として扱う
func (i *Interview) StartMinutes() int {
	m, _ := parseMinutes(i.Time)
	return m
}

// EndMinutes は終了時刻（半開区間の上端）を分数で返す
func (i *Interview) EndMinutes() int {
	d := i.DurationMinutes
	if d <= 0 {
		d = DefaultDurationMinutes
	}
	return i.StartMinutes() + d
}

// Clone はエンティティのコピーを返す
func (i *Interview) Clone() *Interview {
	c := *i
	return &c
}

func parseMinutes(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
