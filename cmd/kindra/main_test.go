package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kindra-backend/domain/analytics"
)

const testConnectionID = "5b0c1f3e-8d2a-4c59-9a0e-2f61b7c3d4e5"

const testSnapshot = `{
  "connections": [{"id": "` + testConnectionID + `", "name": "Sam"}],
  "moments": [],
  "cycles": [
    {"id": "0f4d8c2a-1b3e-4f5a-8c6d-7e9f0a1b2c3d", "periodStartDate": "2024-01-01T00:00:00Z", "cycleEndDate": "2024-01-28T00:00:00Z"},
    {"id": "1a2b3c4d-5e6f-4a8b-9c0d-1e2f3a4b5c6d", "periodStartDate": "2024-01-29T00:00:00Z", "cycleEndDate": "2024-02-25T00:00:00Z"},
    {"id": "2b3c4d5e-6f7a-4b9c-8d1e-2f3a4b5c6d7e", "periodStartDate": "2024-02-26T00:00:00Z"}
  ]
}`

func writeSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(testSnapshot), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	snapshotFile, userFlag, nowFlag, connFlag, phaseFlag = "kindra.json", "local", "", "", "ovulation"
	jsonOutput, verbose = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVariabilityCommand(t *testing.T) {
	file := writeSnapshot(t)

	out, err := run(t, "variability", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Cycle length: 28.0 ± 0.0 days (very regular)")
}

func TestPredictCommand(t *testing.T) {
	file := writeSnapshot(t)

	out, err := run(t, "predict", "--file", file, "--now", "2024-03-01", "--phase", "ovulation", "--json")
	require.NoError(t, err)

	var p analytics.TimingPrediction
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "2024-03-11", p.NextOptimalDate.Format("2006-01-02"))
	assert.Equal(t, 10, p.DaysUntilOptimal)

	_, err = run(t, "predict", "--file", file, "--phase", "bogus")
	assert.Error(t, err)
}

func TestInsightsCommands(t *testing.T) {
	file := writeSnapshot(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"aggregate without moments", []string{"insights", "--file", file}, "Analytics Ready"},
		{"connection without moments", []string{"connection", testConnectionID, "--file", file}, "Start Logging Moments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestCommandErrors(t *testing.T) {
	file := writeSnapshot(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"insights", "--file", filepath.Join(t.TempDir(), "absent.json")}},
		{"bad clock", []string{"insights", "--file", file, "--now", "yesterday"}},
		{"bad connection id", []string{"connection", "not-a-uuid", "--file", file}},
		{"unknown connection", []string{"connection", "3c4d5e6f-7a8b-4c0d-9e2f-3a4b5c6d7e8f", "--file", file}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
