package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
)

var householdFile = filepath.Join("..", "..", "internal", "config", "testdata", "household.yaml")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "hpgo", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"project", "validate", "hash", "montecarlo", "amortize", "example", "serve", "tui", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "montecarlo")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "hpgo dev"))
	assert.Contains(t, out, "hpgo-engine/")
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", householdFile)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, err = execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestProject_JSON(t *testing.T) {
	out, err := execute(t, "project", householdFile, "--format", "json", "--log-level", "error")
	require.NoError(t, err)

	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Monthly, 60)
	assert.Len(t, result.Annual, 5)
	assert.Len(t, result.InputHash, 64)
}

func TestProject_AnnualCSV(t *testing.T) {
	out, err := execute(t, "project", householdFile, "-f", "annual-csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[1], "2025,12,"))
}

func TestProject_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monthly.csv")
	out, err := execute(t, "project", householdFile, "-f", "csv", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Month,"))
}

func TestProject_UnknownFormat(t *testing.T) {
	_, err := execute(t, "project", householdFile, "-f", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestHash(t *testing.T) {
	first, err := execute(t, "hash", householdFile)
	require.NoError(t, err)
	second, err := execute(t, "hash", householdFile)
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(first), 64)
	assert.Equal(t, first, second)
}

func TestMonteCarlo_CSV(t *testing.T) {
	out, err := execute(t, "montecarlo", householdFile, "-s", "50", "--seed", "3", "-f", "csv", "--workers", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 61)
	assert.Equal(t, "Month,P10,P25,P50,P75,P90", lines[0])
}

func TestAmortize(t *testing.T) {
	out, err := execute(t, "amortize", householdFile, "auto", "-f", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[1], "2024-03,"))
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], ",0.00"))

	_, err = execute(t, "amortize", householdFile, "boat")
	assert.Error(t, err)
}

func TestExample_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"example.yaml", "example.json"} {
		path := filepath.Join(dir, name)
		out, err := execute(t, "example", path, "--years", "3")
		require.NoError(t, err)
		assert.Contains(t, out, path)

		_, err = execute(t, "validate", path)
		assert.NoError(t, err, name)
	}
}

func TestExample_Stdout(t *testing.T) {
	out, err := execute(t, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "household:")
	assert.Contains(t, out, "Mortgage")
}

func TestExampleScenarioIDsAreUnique(t *testing.T) {
	s := exampleScenario(startOfYear(2030), 5)
	seen := map[string]bool{}
	for _, id := range []string{s.Incomes[0].ID, s.Incomes[1].ID, s.Expenses[0].ID, s.Expenses[1].ID,
		s.Accounts[0].ID, s.Contributions[0].ID, s.Loans[0].ID, s.Goals[0].ID, s.Goals[1].ID} {
		assert.False(t, seen[id], id)
		seen[id] = true
	}
	assert.Equal(t, s.Accounts[0].ID, s.Contributions[0].AccountID)
	assert.Equal(t, "2034-12-31", s.Household.EndDate.String())
}

func startOfYear(year int) dateutil.Date { return dateutil.New(year, time.January, 1) }
