package parsers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nydauron/champstandings/standings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	in := "Week,Track,Ana,Ben\n1,Monza,1,DNF\n2, Spa ,3\n"
	table, err := ParseCSV(strings.NewReader(in), "f2")
	require.NoError(t, err)

	assert.Equal(t, "f2", table.Name)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, standings.TextCell("Ana"), table.Rows[0][2])
	assert.Equal(t, standings.IntCell(1), table.Rows[1][0])
	assert.Equal(t, standings.TextCell("DNF"), table.Rows[1][3])
	assert.Equal(t, standings.TextCell("Spa"), table.Rows[2][1])
	assert.Len(t, table.Rows[2], 3)
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""), "empty")
	assert.Error(t, err)
}

func TestParseHTML(t *testing.T) {
	in := `<html><body>
<table id="pro"><caption> Pro Class </caption>
<thead><tr><th>Week</th><th>Track</th><th>Ana</th><th>Ben</th></tr></thead>
<tbody>
<tr><td>1</td><td>Monza</td><td>2</td><td>DNF</td></tr>
<tr><td>2</td><td></td><td><b>1</b></td><td>3</td></tr>
</tbody></table>
<table id="am"><tr><td>Week</td><td></td><td>Cal</td></tr><tr><td>1</td><td></td><td>4</td></tr></table>
<table><tr><td>Week</td></tr></table>
</body></html>`
	tables, err := ParseHTML(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tables, 3)

	pro := tables[0]
	assert.Equal(t, "Pro Class", pro.Name)
	require.Len(t, pro.Rows, 3)
	assert.Equal(t, standings.TextCell("Ben"), pro.Rows[0][3])
	assert.Equal(t, standings.IntCell(2), pro.Rows[1][2])
	assert.True(t, pro.Rows[2][1].IsBlank())
	assert.Equal(t, standings.IntCell(1), pro.Rows[2][2])

	assert.Equal(t, "am", tables[1].Name)
	assert.Equal(t, "Series 3", tables[2].Name)
}

func TestParseYAML_TypesFromTags(t *testing.T) {
	in := `series:
  - name: Pro
    rows:
      - [Week, Track, Ana, Ben, Cal]
      - [1, Monza, 1, "5", 2.5]
      - [2, ~, DNF, true, 3]
---
series:
  - rows:
      - [Week, "", Dee]
`
	tables, err := ParseYAML(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tables, 2)

	pro := tables[0]
	assert.Equal(t, "Pro", pro.Name)
	assert.Equal(t, standings.IntCell(1), pro.Rows[1][2])
	assert.Equal(t, standings.TextCell("5"), pro.Rows[1][3])
	assert.Equal(t, standings.OtherCell(2.5), pro.Rows[1][4])
	assert.True(t, pro.Rows[2][1].IsBlank())
	assert.Equal(t, standings.OtherCell(true), pro.Rows[2][3])

	assert.Equal(t, "Series 2", tables[1].Name)
}

func TestParseYAML_Errors(t *testing.T) {
	_, err := ParseYAML(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseYAML(strings.NewReader("series:\n  - name: X\n    rows:\n      - [[1, 2]]\n"))
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"season.csv":                   FormatCSV,
		"/tmp/Standings.HTML":          FormatHTML,
		"results.htm":                  FormatHTML,
		"league.yml":                   FormatYAML,
		"https://x.test/a/b.yaml?dl=1": FormatYAML,
	}
	for in, want := range tests {
		got, err := DetectFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := DetectFormat("season.xlsx")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/s.csv"))
	assert.False(t, IsURL("/tmp/s.csv"))
	assert.False(t, IsURL("s.csv"))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "club.csv")
	require.NoError(t, os.WriteFile(path, []byte("Week,,Ana\n1,,1\n"), 0o644))

	tables, err := Load(context.Background(), path, "")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "club", tables[0].Name)

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), "")
	assert.ErrorIs(t, err, ErrUnreadable)

	_, err = Load(context.Background(), path+".txt", "")
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestLoad_ParseErrorNamesLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("series: [\n"), 0o644))

	_, err := Load(context.Background(), path, "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnreadable)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/s.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("Week,,Ana\n1,,1\n"))
	}))
	defer srv.Close()

	tables, err := Load(context.Background(), srv.URL+"/s.csv", "")
	require.NoError(t, err)
	assert.Equal(t, "s", tables[0].Name)

	_, err = Load(context.Background(), srv.URL+"/missing.csv", "")
	assert.ErrorIs(t, err, ErrUnreadable)
}
