// Package standings turns weekly finish codes into championship standings.
//
// Calculate scores one competitor through a cutoff week: each finish code is
// mapped to points through a PointsTable, the lowest-scoring DropWeeks results
// are dropped, and the rest are summed. Early in a season, while the number
// of weeks does not exceed DropWeeks, only the best result counts.
//
// A Series holds competitors that share a week axis. Series.Rank scores every
// competitor for every week from scratch and orders them by total points,
// then by their dropped results (best first, compared position by position
// where both lists have entries), then by name.
//
// The package performs no I/O. Input grids are built by package parsers.
package standings
