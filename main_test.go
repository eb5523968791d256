package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nydauron/champstandings/report"
	"github.com/Nydauron/champstandings/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const seasonCSV = `Week,Track,Ana,Ben,Cal
1,Monza,1,2,DNF
2,Spa,3,1,2
3,Imola,2,DNS,1
`

func testApp(out *bytes.Buffer) *cli.App {
	app := newApp()
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.Writer = out
	app.ErrWriter = out
	return app
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ec cli.ExitCoder
	require.ErrorAs(t, err, &ec)
	return ec.ExitCode()
}

func TestGenerate_WritesJSON(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "pro.csv", seasonCSV)
	out := filepath.Join(dir, "standings.json")

	err := testApp(&bytes.Buffer{}).Run([]string{"champstandings", "-i", in, "-o", out, "--drop-weeks", "1", "-f", "json", "--title", "Cup"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))

	assert.Equal(t, "Cup", rep.Title)
	assert.Equal(t, 1, rep.DropWeeks)
	require.Len(t, rep.Series, 1)
	assert.Equal(t, "pro", rep.Series[0].Name)
	require.Len(t, rep.Series[0].Weeks, 3)

	// Through week 3 with one drop: Ana 25+18, Cal 25+18, Ben 25+18.
	// Dropped: Ana 3rd, Cal DNF, Ben DNS -> Ana first, then Ben, Cal by name.
	final := rep.Series[0].Weeks[2].Standings
	assert.Equal(t, "Ana", final[0].Driver)
	assert.Equal(t, 43, final[0].Points)
	assert.Equal(t, "Ben", final[1].Driver)
	assert.Equal(t, "Cal", final[2].Driver)
}

func TestGenerate_ConfigFileAndText(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "pro.csv", seasonCSV)
	cfg := writeFile(t, dir, "config.yaml", "title: Club Cup\ndrop_weeks: 0\noutput_format: text\n")
	out := filepath.Join(dir, "standings.txt")

	err := testApp(&bytes.Buffer{}).Run([]string{"champstandings", "-c", cfg, "-i", in, "-o", out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Club Cup")
	assert.Contains(t, string(data), "Week 3 - Imola")
}

func TestGenerate_MalformedInputExitCode(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "bad.csv", "Week,,Ana,Ben\n1,,1\n")
	out := filepath.Join(dir, "out.yaml")

	err := testApp(&bytes.Buffer{}).Run([]string{"champstandings", "-i", in, "-o", out})
	assert.Equal(t, exitData, exitCode(t, err))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output file for a failed run")
}

func TestGenerate_NegativeDropWeeksExitCode(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "pro.csv", seasonCSV)

	err := testApp(&bytes.Buffer{}).Run([]string{"champstandings", "-i", in, "-o", "-", "--drop-weeks", "-1"})
	assert.Equal(t, exitConfig, exitCode(t, err))
}

func TestGenerate_MissingInputExitCode(t *testing.T) {
	dir := t.TempDir()
	err := testApp(&bytes.Buffer{}).Run([]string{"champstandings", "-i", filepath.Join(dir, "none.csv"), "-o", "-"})
	assert.Equal(t, exitInput, exitCode(t, err))
}

func TestArchiveAndListRuns(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "pro.csv", seasonCSV)
	cfg := writeFile(t, dir, "config.yaml", "title: Archived Cup\nstore:\n  driver: sqlite\n  dsn: \"file:"+filepath.Join(dir, "runs.db")+"\"\n")

	err := testApp(&bytes.Buffer{}).Run([]string{"champstandings", "-c", cfg, "-i", in, "-o", filepath.Join(dir, "out.yaml"), "--archive"})
	require.NoError(t, err)

	var listing bytes.Buffer
	err = testApp(&listing).Run([]string{"champstandings", "runs", "-c", cfg})
	require.NoError(t, err)
	assert.Contains(t, listing.String(), "Archived Cup")
	assert.Contains(t, listing.String(), "RUN")

	id := latestRun(t, filepath.Join(dir, "runs.db"))

	var shown bytes.Buffer
	err = testApp(&shown).Run([]string{"champstandings", "runs", "show", "-c", cfg, "-f", "json", id})
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(shown.Bytes(), &rep))
	assert.Equal(t, "Archived Cup", rep.Title)
	require.Len(t, rep.Series, 1)
	assert.Equal(t, "pro", rep.Series[0].Name)

	var history bytes.Buffer
	err = testApp(&history).Run([]string{"champstandings", "runs", "history", "-c", cfg, id, "pro", "Ana"})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(history.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "WEEK"))
	assert.Equal(t, []string{"1", "1", "25", "0", "+0"}, strings.Fields(lines[1]))

	err = testApp(&bytes.Buffer{}).Run([]string{"champstandings", "runs", "history", "-c", cfg, id, "pro", "Nobody"})
	assert.Equal(t, exitData, exitCode(t, err))

	err = testApp(&bytes.Buffer{}).Run([]string{"champstandings", "runs", "show", "-c", cfg, "no-such-run"})
	assert.Equal(t, exitInput, exitCode(t, err))
}

func TestArchive_UnnamedTablesFromSeveralInputs(t *testing.T) {
	dir := t.TempDir()
	table := `<table><tr><th>Week</th><th></th><th>Ana</th><th>Ben</th></tr><tr><td>1</td><td></td><td>1</td><td>2</td></tr></table>`
	a := writeFile(t, dir, "a.html", table)
	b := writeFile(t, dir, "b.html", table)
	cfg := writeFile(t, dir, "config.yaml", "store:\n  driver: sqlite\n  dsn: \"file:"+filepath.Join(dir, "runs.db")+"\"\n")
	out := filepath.Join(dir, "out.json")

	err := testApp(&bytes.Buffer{}).Run([]string{"champstandings", "-c", cfg, "-i", a, "-i", b, "-o", out, "-f", "json", "--archive"})
	require.NoError(t, err)

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(body, &rep))
	require.Len(t, rep.Series, 2)
	assert.Equal(t, "Series 1", rep.Series[0].Name)
	assert.Equal(t, "Series 1 (2)", rep.Series[1].Name)

	var history bytes.Buffer
	err = testApp(&history).Run([]string{"champstandings", "runs", "history", "-c", cfg, latestRun(t, filepath.Join(dir, "runs.db")), "Series 1 (2)", "Ben"})
	require.NoError(t, err)
	assert.Contains(t, history.String(), "WEEK")
}

func latestRun(t *testing.T, path string) string {
	t.Helper()
	st, err := store.Open(context.Background(), store.DriverSQLite, "file:"+path)
	require.NoError(t, err)
	defer st.Close()
	runs, err := st.ListRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	return runs[0].ID
}
