package standings

import (
	"fmt"
	"slices"
)

// DefaultDropWeeks is the number of worst-scoring weeks excluded from a
// season total when no other value is configured.
const DefaultDropWeeks = 2

var defaultPoints = []int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// PointsTable maps finishing position 1..Len() to points. The zero value
// awards nothing.
type PointsTable struct {
	points []int
}

// NewPointsTable copies points; points[0] is awarded for 1st place.
func NewPointsTable(points ...int) PointsTable {
	return PointsTable{points: slices.Clone(points)}
}

func DefaultPointsTable() PointsTable {
	return NewPointsTable(defaultPoints...)
}

// Points returns the points awarded for a finish. Positions outside the
// table and non-numeric codes score 0.
func (t PointsTable) Points(f FinishCode) int {
	pos, ok := f.Position()
	if !ok || pos < 1 || pos > len(t.points) {
		return 0
	}
	return t.points[pos-1]
}

func (t PointsTable) Len() int {
	return len(t.points)
}

// Values returns a copy of the table.
func (t PointsTable) Values() []int {
	return slices.Clone(t.points)
}

// Config is the scoring configuration passed explicitly into the engine.
type Config struct {
	Points    PointsTable
	DropWeeks int
}

func DefaultConfig() Config {
	return Config{Points: DefaultPointsTable(), DropWeeks: DefaultDropWeeks}
}

func (c Config) Validate() error {
	if c.DropWeeks < 0 {
		return fmt.Errorf("%w: drop weeks must not be negative, got %d", ErrInvalidConfiguration, c.DropWeeks)
	}
	if c.Points.Len() == 0 {
		return fmt.Errorf("%w: points table is empty", ErrInvalidConfiguration)
	}
	for i, p := range c.Points.points {
		if p < 0 {
			return fmt.Errorf("%w: points for %s place must not be negative, got %d", ErrInvalidConfiguration, Ordinal(i+1), p)
		}
	}
	return nil
}
