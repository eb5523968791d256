package report

type Report struct {
	Title     string   `yaml:"title,omitempty" json:"title,omitempty"`
	DropWeeks int      `yaml:"drop weeks" json:"drop_weeks"`
	Points    []int    `yaml:"points" json:"points"`
	Series    []Series `yaml:"series" json:"series"`
}

type Series struct {
	Name  string `yaml:"name" json:"name"`
	Weeks []Week `yaml:"weeks,omitempty" json:"weeks,omitempty"`
	// Error is set when the series could not be ranked. Weeks is empty then.
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

type Week struct {
	Number    int        `yaml:"week" json:"week"`
	Label     string     `yaml:"label" json:"label"`
	Event     string     `yaml:"event,omitempty" json:"event,omitempty"`
	Standings []Standing `yaml:"standings" json:"standings"`
}

type Standing struct {
	Position int      `yaml:"position" json:"position"`
	Driver   string   `yaml:"driver" json:"driver"`
	Points   int      `yaml:"points" json:"points"`
	Gap      int      `yaml:"gap" json:"gap"`
	Change   int      `yaml:"change" json:"change"`
	Finishes []Finish `yaml:"finishes" json:"finishes"`
}

type Finish struct {
	Week    int    `yaml:"week" json:"week"`
	Label   string `yaml:"label" json:"label"`
	Points  int    `yaml:"points" json:"points"`
	Counted bool   `yaml:"counted" json:"counted"`
}

// FindSeries returns the series called name.
func (r *Report) FindSeries(name string) (*Series, bool) {
	for i := range r.Series {
		if r.Series[i].Name == name {
			return &r.Series[i], true
		}
	}
	return nil, false
}

// FindWeek returns week number n of the series.
func (s *Series) FindWeek(n int) (*Week, bool) {
	if n < 1 || n > len(s.Weeks) {
		return nil, false
	}
	return &s.Weeks[n-1], true
}
