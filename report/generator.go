package report

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Nydauron/champstandings/parsers"
	"github.com/Nydauron/champstandings/standings"
)

// ErrNoStandings is returned when no series in the input could be ranked.
var ErrNoStandings = errors.New("no series could be ranked")

// Generate ranks every table independently. A table that fails with
// malformed input is reported in its Series.Error and does not affect the
// others. An invalid configuration aborts before any table is read. Series
// names are made unique within the report.
func Generate(title string, tables []parsers.Table, cfg standings.Config, logger *slog.Logger) (Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	rep := Report{
		Title:     title,
		DropWeeks: cfg.DropWeeks,
		Points:    cfg.Points.Values(),
		Series:    make([]Series, 0, len(tables)),
	}
	var errs []error
	names := uniqueNames(tables)
	for i, table := range tables {
		if names[i] != table.Name {
			logger.Warn("duplicate series name renamed", "series", table.Name, "name", names[i])
			table.Name = names[i]
		}
		series, err := generateSeries(table, cfg, logger)
		if err != nil {
			logger.Error("series skipped", "series", table.Name, "err", err)
			errs = append(errs, err)
			series = Series{Name: table.Name, Error: err.Error()}
		}
		rep.Series = append(rep.Series, series)
	}
	if len(tables) == 0 {
		return rep, ErrNoStandings
	}
	if len(errs) == len(tables) {
		return rep, fmt.Errorf("%w: %w", ErrNoStandings, errors.Join(errs...))
	}
	return rep, nil
}

// uniqueNames returns the table names with later duplicates suffixed " (2)",
// " (3)", ... so every series in a report can be addressed by name.
func uniqueNames(tables []parsers.Table) []string {
	taken := make(map[string]bool, len(tables))
	for _, t := range tables {
		taken[t.Name] = true
	}
	seen := make(map[string]bool, len(tables))
	names := make([]string, len(tables))
	for i, t := range tables {
		name := t.Name
		if seen[name] {
			for n := 2; ; n++ {
				name = fmt.Sprintf("%s (%d)", t.Name, n)
				if !taken[name] && !seen[name] {
					break
				}
			}
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func generateSeries(table parsers.Table, cfg standings.Config, logger *slog.Logger) (Series, error) {
	s, err := standings.NewSeries(table.Name, table.Rows)
	if err != nil {
		return Series{}, err
	}
	for _, rc := range s.Recovered {
		logger.Debug("unrecognized finish code scored as non-numeric",
			"series", s.Name, "competitor", rc.Competitor, "week", rc.Week, "value", rc.Value)
	}

	entries, err := s.Rank(cfg)
	if err != nil {
		return Series{}, err
	}
	out := Series{Name: s.Name, Weeks: make([]Week, 0, len(entries))}
	for _, e := range entries {
		out.Weeks = append(out.Weeks, newWeek(e))
	}
	logger.Info("series ranked", "series", s.Name, "weeks", len(s.Weeks), "competitors", len(s.Competitors))
	return out, nil
}

func newWeek(e standings.RankingEntry) Week {
	w := Week{
		Number:    e.Week.Number,
		Label:     e.Week.Label,
		Event:     e.Week.Event,
		Standings: make([]Standing, 0, len(e.Standings)),
	}
	for _, st := range e.Standings {
		finishes := make([]Finish, len(st.Results))
		for i, r := range st.Results {
			finishes[i] = Finish{Week: r.Week, Label: r.Label, Points: r.Points, Counted: r.Counted}
		}
		w.Standings = append(w.Standings, Standing{
			Position: st.Position,
			Driver:   st.Competitor,
			Points:   st.Total,
			Gap:      st.Gap,
			Change:   st.Change,
			Finishes: finishes,
		})
	}
	return w
}
