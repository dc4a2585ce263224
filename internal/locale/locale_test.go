package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatter(t *testing.T) {
	f := NewFormatter("Europe/Zurich")
	// 13:00 UTC is 15:00 in Zurich during summer time.
	ts := time.Date(2024, time.October, 12, 13, 0, 0, 0, time.UTC)

	assert.Equal(t, "Samstag", f.Weekday(ts))
	assert.Equal(t, "OKT", f.MonthShort(ts))
	assert.Equal(t, "15:00", f.Clock(ts))
	assert.Equal(t, "Oktober 2024", f.MonthYear(ts))
	assert.Equal(t, "Samstag, 12. Oktober 2024 um 15:00", f.Long(ts))
	assert.Equal(t, "October 12, 2024", f.Countdown(ts))
}

func TestFormatterUnknownZone(t *testing.T) {
	f := NewFormatter("Mars/Olympus_Mons")
	assert.Equal(t, time.UTC, f.Location())
}

func TestDuration(t *testing.T) {
	start := time.Date(2025, time.March, 1, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		end  time.Time
		want string
	}{
		{start.Add(75 * time.Minute), "ca. 1h 15min"},
		{start.Add(2 * time.Hour), "ca. 2h"},
		{start.Add(45 * time.Minute), "ca. 45min"},
		{start.Add(30 * time.Second), ""},
		{start, ""},
		{start.Add(-time.Hour), ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Duration(start, c.end))
	}
}
