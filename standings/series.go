package standings

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// Week is one entry of a series' week axis.
type Week struct {
	Number int
	Label  string
	// Event is the optional second-column label, e.g. the venue.
	Event string
}

// RecoveredCode records a cell that was neither a position nor a code and
// was scored as a non-numeric code.
type RecoveredCode struct {
	Competitor string
	Week       int
	Value      string
}

// Series is a set of competitors sharing a week axis.
type Series struct {
	Name        string
	Weeks       []Week
	Competitors []*Competitor
	Recovered   []RecoveredCode
}

// Standing is one competitor's place in a week's ranking.
type Standing struct {
	Position   int
	Competitor string
	Total      int
	Results    []ScoredResult
	Dropped    []ScoredResult
	// Gap is the points deficit to the leader.
	Gap int
	// Change is the number of places gained since the previous week.
	Change int
}

// RankingEntry is the ordered standings for one week, best first.
type RankingEntry struct {
	Week      Week
	Standings []Standing
}

func cellAt(grid [][]Cell, row, col int) Cell {
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return BlankCell()
	}
	return grid[row][col]
}

// NewSeries reads a series from grid. Row 0 holds competitor names from
// column 2 on, column 0 holds week labels from row 1 on and column 1 an
// optional event label. A blank name or week label ends the respective list.
func NewSeries(name string, grid [][]Cell) (*Series, error) {
	if len(grid) == 0 {
		return nil, malformed(name, "empty grid")
	}
	s := &Series{Name: name}

	seen := map[string]int{}
	for col := 2; !cellAt(grid, 0, col).IsBlank(); col++ {
		competitor := cellAt(grid, 0, col).String()
		if prev, ok := seen[competitor]; ok {
			err := malformed(name, fmt.Sprintf("duplicate competitor name, first seen in column %d", prev))
			err.Competitor, err.Row, err.Col = competitor, 1, col+1
			return nil, err
		}
		seen[competitor] = col + 1
		s.Competitors = append(s.Competitors, &Competitor{Name: competitor, Column: col + 1})
	}
	if len(s.Competitors) == 0 {
		err := malformed(name, "missing competitor axis")
		err.Row, err.Col = 1, 3
		return nil, err
	}

	row := 1
	for ; !cellAt(grid, row, 0).IsBlank(); row++ {
		label := cellAt(grid, row, 0)
		if label.Kind == CellInt && label.Int != row {
			err := malformed(name, fmt.Sprintf("week label %d out of sequence, expected %d", label.Int, row))
			err.Week, err.Row, err.Col = row, row+1, 1
			return nil, err
		}
		s.Weeks = append(s.Weeks, Week{
			Number: row,
			Label:  label.String(),
			Event:  cellAt(grid, row, 1).String(),
		})
	}
	if len(s.Weeks) == 0 {
		err := malformed(name, "missing week axis")
		err.Row, err.Col = 2, 1
		return nil, err
	}
	for r := row + 1; r < len(grid); r++ {
		if !cellAt(grid, r, 0).IsBlank() {
			err := malformed(name, "weeks are not contiguous")
			err.Row, err.Col = r+1, 1
			return nil, err
		}
	}

	for _, c := range s.Competitors {
		c.Codes = make([]FinishCode, len(s.Weeks))
		for i := range s.Weeks {
			cell := cellAt(grid, i+1, c.Column-1)
			if cell.IsBlank() {
				return nil, &InputError{
					Kind:       ErrMalformedInput,
					Series:     name,
					Competitor: c.Name,
					Week:       i + 1,
					Row:        i + 2,
					Col:        c.Column,
					Reason:     "no finish code recorded",
				}
			}
			code, ok := FinishCodeFromCell(cell)
			if !ok {
				s.Recovered = append(s.Recovered, RecoveredCode{Competitor: c.Name, Week: i + 1, Value: cell.String()})
			}
			c.Codes[i] = code
		}
	}
	return s, nil
}

// CompareStandings orders two standings best first: higher total, then the
// better dropped result at the first position where both dropped lists
// differ, then competitor name.
func CompareStandings(a, b Standing) int {
	if c := cmp.Compare(b.Total, a.Total); c != 0 {
		return c
	}
	for i := 0; i < len(a.Dropped) && i < len(b.Dropped); i++ {
		if c := cmp.Compare(a.Dropped[i].RankValue, b.Dropped[i].RankValue); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Competitor, b.Competitor)
}

// order returns every competitor's standing through week, best first.
func (s *Series) order(week int, cfg Config) ([]Standing, error) {
	out := make([]Standing, 0, len(s.Competitors))
	for _, c := range s.Competitors {
		cut, err := c.Through(week, cfg)
		if err != nil {
			var ie *InputError
			if errors.As(err, &ie) {
				ie.Series = s.Name
			}
			return nil, err
		}
		out = append(out, Standing{
			Competitor: c.Name,
			Total:      cut.Total,
			Results:    cut.Results,
			Dropped:    cut.Dropped,
		})
	}
	slices.SortStableFunc(out, CompareStandings)
	for i := range out {
		out[i].Position = i + 1
		out[i].Gap = out[0].Total - out[i].Total
	}
	return out, nil
}

func (s *Series) entry(week int, cur, prev []Standing) RankingEntry {
	if prev != nil {
		before := make(map[string]int, len(prev))
		for _, st := range prev {
			before[st.Competitor] = st.Position
		}
		for i := range cur {
			cur[i].Change = before[cur[i].Competitor] - cur[i].Position
		}
	}
	return RankingEntry{Week: s.Weeks[week-1], Standings: cur}
}

// RankWeek ranks the series as of week alone. It is the random-access form of
// Rank and gives the same entry Rank returns for that week; Change needs the
// week before, so that week is ordered as well.
func (s *Series) RankWeek(week int, cfg Config) (RankingEntry, error) {
	if err := cfg.Validate(); err != nil {
		return RankingEntry{}, err
	}
	if week < 1 || week > len(s.Weeks) {
		return RankingEntry{}, &InputError{
			Kind:   ErrMalformedInput,
			Series: s.Name,
			Week:   week,
			Reason: fmt.Sprintf("week must be between 1 and %d", len(s.Weeks)),
		}
	}
	cur, err := s.order(week, cfg)
	if err != nil {
		return RankingEntry{}, err
	}
	var prev []Standing
	if week > 1 {
		if prev, err = s.order(week-1, cfg); err != nil {
			return RankingEntry{}, err
		}
	}
	return s.entry(week, cur, prev), nil
}

// Rank produces a ranking entry for every week of the series. Each week is
// scored from scratch.
func (s *Series) Rank(cfg Config) ([]RankingEntry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	entries := make([]RankingEntry, 0, len(s.Weeks))
	var prev []Standing
	for week := 1; week <= len(s.Weeks); week++ {
		cur, err := s.order(week, cfg)
		if err != nil {
			return nil, err
		}
		entries = append(entries, s.entry(week, cur, prev))
		prev = cur
	}
	return entries, nil
}
