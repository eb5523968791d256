package standings

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ScoredResult is one week's finish for a competitor, scored as of a given
// cutoff week.
type ScoredResult struct {
	Week      int
	Code      FinishCode
	RankValue int
	Label     string
	Points    int
	// Counted reports whether the result contributes to the total through
	// the cutoff week. Results that do not count are dropped.
	Counted bool
}

// Cutoff is a competitor's scored season through one week.
type Cutoff struct {
	Week int
	// Results holds one entry per week, in week order.
	Results []ScoredResult
	// Dropped holds the results that do not count, best finish first.
	Dropped []ScoredResult
	Total   int
}

// CountedResults returns the number of results that count toward Total.
func (c Cutoff) CountedResults() int {
	n := 0
	for _, r := range c.Results {
		if r.Counted {
			n++
		}
	}
	return n
}

// Competitor is one column of a series: a name and a finish code per week.
type Competitor struct {
	Name string
	// Column is the 1-based grid column the competitor was read from.
	Column int
	Codes  []FinishCode
}

// Through scores the competitor's season through week.
func (c *Competitor) Through(week int, cfg Config) (Cutoff, error) {
	cut, err := Calculate(c.Codes, week, cfg)
	if err != nil {
		var ie *InputError
		if errors.As(err, &ie) {
			ie.Competitor = c.Name
		}
		return Cutoff{}, err
	}
	return cut, nil
}

// Calculate scores the first numWeeks codes. The worst cfg.DropWeeks results
// by points are dropped; while numWeeks <= cfg.DropWeeks only the single best
// result counts.
func Calculate(codes []FinishCode, numWeeks int, cfg Config) (Cutoff, error) {
	if err := cfg.Validate(); err != nil {
		return Cutoff{}, err
	}
	if numWeeks < 1 || numWeeks > len(codes) {
		return Cutoff{}, &InputError{
			Kind:   ErrMalformedInput,
			Week:   numWeeks,
			Reason: fmt.Sprintf("cutoff week must be between 1 and %d", len(codes)),
		}
	}

	results := make([]ScoredResult, numWeeks)
	for i, code := range codes[:numWeeks] {
		results[i] = ScoredResult{
			Week:      i + 1,
			Code:      code,
			RankValue: code.RankValue(),
			Label:     code.Label(),
			Points:    cfg.Points.Points(code),
		}
	}

	byPoints := make([]int, numWeeks)
	for i := range byPoints {
		byPoints[i] = i
	}
	slices.SortFunc(byPoints, func(a, b int) int {
		ra, rb := results[a], results[b]
		if c := cmp.Compare(rb.Points, ra.Points); c != 0 {
			return c
		}
		if c := cmp.Compare(ra.RankValue, rb.RankValue); c != 0 {
			return c
		}
		return cmp.Compare(ra.Week, rb.Week)
	})

	keep := 1
	if numWeeks > cfg.DropWeeks {
		keep = numWeeks - cfg.DropWeeks
	}

	cut := Cutoff{Week: numWeeks, Results: results}
	for _, idx := range byPoints[:keep] {
		results[idx].Counted = true
		cut.Total += results[idx].Points
	}
	for _, r := range results {
		if !r.Counted {
			cut.Dropped = append(cut.Dropped, r)
		}
	}
	slices.SortStableFunc(cut.Dropped, func(a, b ScoredResult) int {
		return cmp.Compare(a.RankValue, b.RankValue)
	})
	return cut, nil
}
