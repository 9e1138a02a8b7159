package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCells_Always42Cells(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for month := 1; month <= 12; month++ {
			cells := Cells(year, month)
			assert.Len(t, cells, GridSize, "year=%d month=%d", year, month)
		}
	}
}

func TestCells_InCurrentMonthReproducesMonth(t *testing.T) {
	cells := Cells(2024, 6)

	var days []int
	for _, c := range cells {
		if c.InCurrentMonth {
			days = append(days, c.Day)
		}
	}

	// 2024年6月は30日
	require.Len(t, days, 30)
	for i, d := range days {
		assert.Equal(t, i+1, d)
	}
}

func TestCells_LeapYearFebruary(t *testing.T) {
	// 2024年2月はうるう年で29日まである
	cells := Cells(2024, 2)

	var days []int
	for _, c := range cells {
		if c.InCurrentMonth {
			days = append(days, c.Day)
		}
	}

	require.Len(t, days, 29)
	assert.Equal(t, 1, days[0])
	assert.Equal(t, 29, days[len(days)-1])
}

func TestCells_LeadingDaysFromPreviousMonth(t *testing.T) {
	// 2024年6月1日は土曜日（曜日インデックス6）なので先頭6セルは5月
	cells := Cells(2024, 6)

	for i := 0; i < 6; i++ {
		assert.False(t, cells[i].InCurrentMonth)
		assert.Equal(t, "2024-05", cells[i].Date[:7])
	}
	assert.True(t, cells[6].InCurrentMonth)
	assert.Equal(t, "2024-06-01", cells[6].Date)
}

func TestCells_TrailingDaysFromNextMonth(t *testing.T) {
	cells := Cells(2024, 6)

	last := cells[len(cells)-1]
	assert.False(t, last.InCurrentMonth)
	assert.Equal(t, "2024-07", last.Date[:7])
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     int
		wantYear  int
		wantMonth time.Month
	}{
		{"通常の月はそのまま", 2024, 6, 2024, time.June},
		{"13月は翌年1月に正規化される", 2024, 13, 2025, time.January},
		{"0月は前年12月に正規化される", 2024, 0, 2023, time.December},
		{"14月は翌年2月に正規化される", 2024, 14, 2025, time.February},
		{"-1月は前年11月に正規化される", 2024, -1, 2023, time.November},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := Normalize(tt.year, tt.month)
			assert.Equal(t, tt.wantYear, y)
			assert.Equal(t, tt.wantMonth, m)
		})
	}
}

func TestCells_NormalizedOverflowMonth(t *testing.T) {
	// 13月のグリッドは翌年1月のグリッドと一致する
	assert.Equal(t, Cells(2025, 1), Cells(2024, 13))
}

func TestDateKey_RoundTrip(t *testing.T) {
	key := DateKey(time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2024-06-10", key)

	parsed, err := ParseDateKey(key)
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.June, parsed.Month())
	assert.Equal(t, 10, parsed.Day())
}

func TestParseDateKey_Invalid(t *testing.T) {
	_, err := ParseDateKey("2024/06/10")
	assert.Error(t, err)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "2024年6月", MonthLabel(2024, 6))
	assert.Equal(t, "2025年1月", MonthLabel(2024, 13))
}
