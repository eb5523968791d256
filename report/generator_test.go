package report

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/Nydauron/champstandings/parsers"
	"github.com/Nydauron/champstandings/standings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(vals ...any) []standings.Cell {
	out := make([]standings.Cell, len(vals))
	for i, v := range vals {
		switch v := v.(type) {
		case int:
			out[i] = standings.IntCell(v)
		case string:
			out[i] = standings.TextCell(v)
		default:
			out[i] = standings.OtherCell(v)
		}
	}
	return out
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestGenerate(t *testing.T) {
	tables := []parsers.Table{{
		Name: "Pro",
		Rows: [][]standings.Cell{
			row("Week", "Track", "Ana", "Ben"),
			row(1, "Monza", 1, "DNF"),
			row(2, "Spa", 3, 1),
		},
	}}
	cfg := standings.DefaultConfig()
	cfg.DropWeeks = 1

	var logs bytes.Buffer
	rep, err := Generate("2024", tables, cfg, testLogger(&logs))
	require.NoError(t, err)

	assert.Equal(t, "2024", rep.Title)
	assert.Equal(t, 1, rep.DropWeeks)
	assert.Equal(t, []int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}, rep.Points)
	require.Len(t, rep.Series, 1)

	pro, ok := rep.FindSeries("Pro")
	require.True(t, ok)
	week2, ok := pro.FindWeek(2)
	require.True(t, ok)
	assert.Equal(t, "Spa", week2.Event)

	// Ana: 25 + 15 with one drop -> 25. Ben: 0 + 25 with one drop -> 25.
	// Tie on points; Ana's dropped 3rd beats Ben's dropped DNF.
	require.Len(t, week2.Standings, 2)
	ana := week2.Standings[0]
	assert.Equal(t, "Ana", ana.Driver)
	assert.Equal(t, 25, ana.Points)
	assert.Equal(t, []Finish{
		{Week: 1, Label: "1st", Points: 25, Counted: true},
		{Week: 2, Label: "3rd", Points: 15, Counted: false},
	}, ana.Finishes)
	assert.Equal(t, "Ben", week2.Standings[1].Driver)
	assert.Equal(t, 0, week2.Standings[1].Gap)

	assert.Contains(t, logs.String(), "series ranked")
}

func TestGenerate_IsolatesMalformedSeries(t *testing.T) {
	tables := []parsers.Table{
		{Name: "Broken", Rows: [][]standings.Cell{row("Week", "", "Ana", "Ben"), row(1, "", 1)}},
		{Name: "Good", Rows: [][]standings.Cell{row("Week", "", "Ana"), row(1, "", 2.5)}},
	}
	var logs bytes.Buffer
	rep, err := Generate("", tables, standings.DefaultConfig(), testLogger(&logs))
	require.NoError(t, err)

	require.Len(t, rep.Series, 2)
	assert.Contains(t, rep.Series[0].Error, "malformed input")
	assert.Contains(t, rep.Series[0].Error, `competitor "Ben"`)
	assert.Empty(t, rep.Series[0].Weeks)
	assert.Empty(t, rep.Series[1].Error)
	require.Len(t, rep.Series[1].Weeks, 1)
	assert.Equal(t, "2.5", rep.Series[1].Weeks[0].Standings[0].Finishes[0].Label)

	assert.Contains(t, logs.String(), "unrecognized finish code")
	assert.Contains(t, logs.String(), "series skipped")
}

func TestGenerate_RenamesDuplicateSeries(t *testing.T) {
	grid := [][]standings.Cell{row("Week", "", "Ana"), row(1, "", 1)}
	tables := []parsers.Table{
		{Name: "Series 1", Rows: grid},
		{Name: "Series 1", Rows: grid},
		{Name: "Series 1 (2)", Rows: grid},
		{Name: "Series 1", Rows: grid},
	}
	var logs bytes.Buffer
	rep, err := Generate("", tables, standings.DefaultConfig(), testLogger(&logs))
	require.NoError(t, err)

	var names []string
	for _, s := range rep.Series {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Series 1", "Series 1 (3)", "Series 1 (2)", "Series 1 (4)"}, names)
	for _, name := range names {
		_, ok := rep.FindSeries(name)
		assert.True(t, ok, name)
	}
	assert.Equal(t, "Series 1", tables[1].Name)
	assert.Contains(t, logs.String(), "duplicate series name renamed")
}

func TestGenerate_AllSeriesFailed(t *testing.T) {
	tables := []parsers.Table{{Name: "Empty", Rows: [][]standings.Cell{row("Week", "", "Ana")}}}
	_, err := Generate("", tables, standings.DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrNoStandings)
	assert.ErrorIs(t, err, standings.ErrMalformedInput)

	_, err = Generate("", nil, standings.DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrNoStandings)
}

func TestGenerate_InvalidConfiguration(t *testing.T) {
	cfg := standings.DefaultConfig()
	cfg.DropWeeks = -2
	_, err := Generate("", []parsers.Table{{Name: "X"}}, cfg, nil)
	assert.ErrorIs(t, err, standings.ErrInvalidConfiguration)
}

func TestFindWeek_OutOfRange(t *testing.T) {
	s := Series{Weeks: []Week{{Number: 1}}}
	_, ok := s.FindWeek(0)
	assert.False(t, ok)
	_, ok = s.FindWeek(2)
	assert.False(t, ok)

	rep := Report{}
	_, ok = rep.FindSeries("nope")
	assert.False(t, ok)
}
