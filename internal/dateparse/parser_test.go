package dateparse_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/freefood/internal/dateparse"
	"github.com/jonesrussell/freefood/internal/logger"
)

func dublin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Dublin")
	require.NoError(t, err)
	return loc
}

func TestBest(t *testing.T) {
	loc := dublin(t)
	ref := time.Date(2026, 2, 23, 9, 30, 0, 0, loc) // Monday
	p := dateparse.New(logger.NewNop())

	tests := []struct {
		name     string
		text     string
		wantDate string
		wantConf float64
		wantTag  string
	}{
		{"day month weekday", "23 February, Monday", "2026-02-23", 1.0, "day_month_weekday"},
		{"weekday day month", "Tuesday 24th Feb in the JJ", "2026-02-24", 1.0, "weekday_day_month"},
		{"weekday month day", "Thursday, March 5", "2026-03-05", 1.0, "weekday_month_day"},
		{"day month", "Join us on 3rd of March!", "2026-03-03", 0.95, "day_month"},
		{"month day", "sept 1 is too far", "", 0, ""},
		{"numeric with year", "date: 05/03/2026", "2026-03-05", 0.85, "numeric_dmy"},
		{"numeric dotted", "date: 05.03.26", "2026-03-05", 0.85, "numeric_dmy"},
		{"numeric short", "see you 24/02", "2026-02-24", 0.75, "numeric_dm"},
		{"weekday numeric", "Fri 27/02", "2026-02-27", 0.85, "weekday_numeric"},
		{"tomorrow", "pizza tmrw!", "2026-02-24", 0.7, "tomorrow"},
		{"tonight", "tonight in the Red Room", "2026-02-23", 0.7, "today"},
		{"this weekday", "this friday", "2026-02-27", 0.65, "this_weekday"},
		{"next weekday is strict", "next monday", "2026-03-02", 0.65, "next_weekday"},
		{"ordinal this month", "on the 28th", "2026-02-28", 0.6, "ordinal_day"},
		{"ordinal rolls to next month", "on the 5th", "2026-03-05", 0.6, "ordinal_day"},
		{"bare weekday earliest wins", "saturday or friday", "2026-02-27", 0.5, "weekday"},
		{"ordinal year excluded", "1st year students", "", 0, ""},
		{"invalid day dropped", "30 February", "", 0, ""},
		{"beyond window dropped", "1 January", "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Best(tt.text, ref)
			if tt.wantDate == "" {
				assert.False(t, ok, "unexpected candidate %+v", got)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantDate, got.Date.Format(time.DateOnly))
			assert.InDelta(t, tt.wantConf, got.Confidence, 0.001)
			assert.Equal(t, tt.wantTag, got.PatternTag)
			assert.Equal(t, loc, got.Date.Location())
		})
	}
}

func TestWeekdayMismatchKeepsExplicitDate(t *testing.T) {
	ref := time.Date(2026, 2, 23, 12, 0, 0, 0, dublin(t))
	p := dateparse.New(logger.NewNop())

	cands := p.Candidates("Wednesday 24th February", ref)
	require.NotEmpty(t, cands)
	assert.Equal(t, "2026-02-24", cands[0].Date.Format(time.DateOnly))

	var mismatch bool
	for _, c := range cands {
		if c.PatternTag == "weekday_day_month_mismatch" {
			mismatch = true
			assert.InDelta(t, 0.9, c.Confidence, 0.001)
			assert.Equal(t, "2026-02-24", c.Date.Format(time.DateOnly))
		}
		assert.NotEqual(t, "weekday_day_month", c.PatternTag)
	}
	assert.True(t, mismatch)
}

func TestYearRollover(t *testing.T) {
	ref := time.Date(2026, 12, 20, 10, 0, 0, 0, dublin(t))
	p := dateparse.New(logger.NewNop())

	got := p.ParseDate("Christmas party 5 January", ref)
	assert.Equal(t, "2027-01-05", got.Format(time.DateOnly))
}

func TestParseDate_DefaultsToReference(t *testing.T) {
	loc := dublin(t)
	ref := time.Date(2026, 2, 23, 17, 45, 0, 0, loc)
	p := dateparse.New(nil)

	got := p.ParseDate("free pizza, come along", ref)
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, loc), got)
}

func TestParseDate_IdempotentOnWinner(t *testing.T) {
	ref := time.Date(2026, 2, 23, 8, 0, 0, 0, dublin(t))
	p := dateparse.New(logger.NewNop())

	inputs := []string{"Friday 6th March", "march 10", "the 28th", "next tuesday", "02/04/2026"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first := p.ParseDate(in, ref)
			again := p.ParseDate(first.Format("2 January 2006"), ref)
			assert.Equal(t, first, again)
		})
	}
}

func TestWithWindow(t *testing.T) {
	ref := time.Date(2026, 2, 23, 8, 0, 0, 0, dublin(t))
	p := dateparse.New(logger.NewNop(), dateparse.WithWindow(0, 7*24*time.Hour))

	_, ok := p.Best("10 March", ref)
	assert.False(t, ok)

	got, ok := p.Best("1 March", ref)
	require.True(t, ok)
	assert.Equal(t, "2026-03-01", got.Date.Format(time.DateOnly))
}
