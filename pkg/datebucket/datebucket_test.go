package datebucket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var noon = time.Date(2024, 11, 12, 12, 0, 0, 0, time.UTC)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		target time.Time
		want   Bucket
	}{
		{"zero value is invalid", time.Time{}, Invalid},
		{"same instant", noon, Today},
		{"late same day", time.Date(2024, 11, 12, 23, 59, 0, 0, time.UTC), Today},
		{"early same day", time.Date(2024, 11, 12, 0, 1, 0, 0, time.UTC), Today},
		{"next calendar day", time.Date(2024, 11, 13, 8, 0, 0, 0, time.UTC), Tomorrow},
		{"within 24h but next day", time.Date(2024, 11, 13, 1, 0, 0, 0, time.UTC), Tomorrow},
		{"yesterday", time.Date(2024, 11, 11, 12, 0, 0, 0, time.UTC), Past},
		{"next week", time.Date(2024, 11, 19, 12, 0, 0, 0, time.UTC), Future},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(noon, tt.target))
		})
	}
}

func TestClassifyUsesReferenceLocation(t *testing.T) {
	east := time.FixedZone("UTC+9", 9*3600)
	// 23:30 UTC on the 12th is already the 13th in UTC+9.
	now := time.Date(2024, 11, 13, 8, 30, 0, 0, east)
	target := time.Date(2024, 11, 12, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, Today, Classify(now, target))
}

func TestWithinInclusiveBounds(t *testing.T) {
	start := noon
	end := noon.AddDate(0, 0, 7)

	assert.True(t, Within(start, start, end))
	assert.True(t, Within(end, start, end))
	assert.True(t, Within(noon.AddDate(0, 0, 3), start, end))
	assert.False(t, Within(start.Add(-time.Second), start, end))
	assert.False(t, Within(end.Add(time.Second), start, end))
	assert.False(t, Within(time.Time{}, start, end))
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, "Tuesday", Weekday(noon))
}
