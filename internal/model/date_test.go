package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "valid date", input: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "wrong layout", input: "29/02/2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	d := DateOf(time.Date(2024, time.March, 10, 23, 59, 0, 0, loc))
	assert.Equal(t, "2024-03-10", d.String())
	assert.True(t, d.Equal(NewDate(2024, time.March, 10)))
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		day       Date
		wantStart string
		wantEnd   string
	}{
		{name: "wednesday", day: NewDate(2024, time.May, 15), wantStart: "2024-05-13", wantEnd: "2024-05-19"},
		{name: "monday", day: NewDate(2024, time.May, 13), wantStart: "2024-05-13", wantEnd: "2024-05-19"},
		{name: "sunday belongs to the preceding monday", day: NewDate(2024, time.May, 19), wantStart: "2024-05-13", wantEnd: "2024-05-19"},
		{name: "week spanning a year boundary", day: NewDate(2025, time.January, 1), wantStart: "2024-12-30", wantEnd: "2025-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.day)
			assert.Equal(t, tt.wantStart, start.String())
			assert.Equal(t, tt.wantEnd, end.String())
			assert.Equal(t, time.Monday, start.Weekday())
			assert.Equal(t, time.Sunday, end.Weekday())
		})
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name      string
		day       Date
		wantStart string
		wantEnd   string
	}{
		{name: "leap february", day: NewDate(2024, time.February, 10), wantStart: "2024-02-01", wantEnd: "2024-02-29"},
		{name: "non-leap february", day: NewDate(2023, time.February, 10), wantStart: "2023-02-01", wantEnd: "2023-02-28"},
		{name: "century non-leap", day: NewDate(2100, time.February, 1), wantStart: "2100-02-01", wantEnd: "2100-02-28"},
		{name: "thirty day month", day: NewDate(2024, time.April, 30), wantStart: "2024-04-01", wantEnd: "2024-04-30"},
		{name: "december", day: NewDate(2024, time.December, 31), wantStart: "2024-12-01", wantEnd: "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthBounds(tt.day)
			assert.Equal(t, tt.wantStart, start.String())
			assert.Equal(t, tt.wantEnd, end.String())
		})
	}
}

func TestDateRange_Contains(t *testing.T) {
	jan1 := NewDate(2024, time.January, 1)
	jan5 := NewDate(2024, time.January, 5)
	jan10 := NewDate(2024, time.January, 10)

	assert.True(t, DateRange{}.Contains(jan5), "unbounded range contains everything")
	assert.True(t, Between(jan1, jan10).Contains(jan1), "lower bound is inclusive")
	assert.True(t, Between(jan1, jan10).Contains(jan10), "upper bound is inclusive")
	assert.False(t, Between(jan5, jan10).Contains(jan1))
	assert.True(t, DateRange{From: &jan5}.Contains(jan10))
	assert.False(t, DateRange{To: &jan5}.Contains(jan10))
	assert.False(t, Between(jan10, jan1).Contains(jan5), "inverted range matches nothing")
}

func TestDate_JSON(t *testing.T) {
	data, err := json.Marshal(NewDate(2024, time.July, 4))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-07-04"`, string(data))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-07-04"`), &d))
	assert.Equal(t, "2024-07-04", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"2024-07-04T10:00:00Z"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240704`), &d))
}
