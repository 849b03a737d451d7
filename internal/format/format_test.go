package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// setLocal replaces the local time zone for the duration of the test.
func setLocal(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestRelativeTimeBoundaries(t *testing.T) {
	setLocal(t, time.UTC)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"zero", 0, "Just now"},
		{"0:59:59", 59*time.Minute + 59*time.Second, "Just now"},
		{"1:00:00", time.Hour, "1 hour ago"},
		{"2h", 2 * time.Hour, "2 hours ago"},
		{"23:59:59", 23*time.Hour + 59*time.Minute + 59*time.Second, "23 hours ago"},
		{"24:00:00", 24 * time.Hour, "1 day ago"},
		{"3d", 3 * 24 * time.Hour, "3 days ago"},
		{"6d23h59m", 6*24*time.Hour + 23*time.Hour + 59*time.Minute, "6 days ago"},
		{"7d0h0m", 7 * 24 * time.Hour, "10/11/2026"},
		{"future", -time.Hour, "Just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(now.Add(-tt.ago), now))
		})
	}
}

func TestRelativeTimeNeverJustNowAtADay(t *testing.T) {
	now := time.Now()
	assert.NotEqual(t, "Just now", RelativeTime(now.Add(-24*time.Hour), now))
}

func TestPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"120", "$120.00"},
		{"120.5", "$120.50"},
		{"19.999", "$20.00"},
		{"1299", "$1,299.00"},
		{"1234567.89", "$1,234,567.89"},
		{"0.005", "$0.01"},
		{"-42.1", "-$42.10"},
		{"12345678901234567.89", "$12,345,678,901,234,567.89"},
		{"98765432109876543210", "$98,765,432,109,876,543,210.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Price(decimal.RequireFromString(tt.in)), "Price(%s)", tt.in)
	}
}

func TestDateTime(t *testing.T) {
	setLocal(t, time.UTC)
	ts := time.Date(2026, 3, 4, 15, 7, 9, 0, time.UTC)
	assert.Equal(t, "3/4/2026", Date(ts))
	assert.Equal(t, "3/4/2026, 3:07:09 PM", DateTime(ts))
}

func TestDatesUseLocalZone(t *testing.T) {
	setLocal(t, time.FixedZone("PDT", -7*60*60))

	// 03:30 UTC on March 5 is still March 4 on the US west coast.
	ts := time.Date(2026, 3, 5, 3, 30, 0, 0, time.UTC)
	assert.Equal(t, "3/4/2026", Date(ts))
	assert.Equal(t, "3/4/2026, 8:30:00 PM", DateTime(ts))

	now := ts.Add(10 * 24 * time.Hour)
	assert.Equal(t, "3/4/2026", RelativeTime(ts, now))
}

func TestBytes(t *testing.T) {
	assert.Equal(t, "5.0 MiB", Bytes(5<<20))
}
