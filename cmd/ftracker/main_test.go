package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"

	ftracker "github.com/lucasjlepore/fit-tracker"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDemoCommand(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, []string{
		"Training type: Swimming; Duration: 1.000 h; Distance: 0.994 km; Avg speed: 1.000 km/h; Calories burned: 336.000.",
		"Training type: Running; Duration: 1.000 h; Distance: 9.750 km; Avg speed: 9.750 km/h; Calories burned: 797.805.",
		"Training type: Walking; Duration: 1.000 h; Distance: 5.850 km; Avg speed: 5.850 km/h; Calories burned: 349.252.",
	}, lines)
}

func TestReportCommand(t *testing.T) {
	out, err := execute(t, "report", "RUN", "15000", "1", "75")
	require.NoError(t, err)
	require.Contains(t, out, "Calories burned: 797.805.")

	_, err = execute(t, "report", "FOO", "1", "2", "3")
	require.ErrorIs(t, err, ftracker.ErrUnknownActivity)

	_, err = execute(t, "report", "RUN", "1", "2")
	require.ErrorIs(t, err, ftracker.ErrInvalidParameters)

	_, err = execute(t, "report", "RUN", "a", "1", "2")
	require.ErrorContains(t, err, `parse value "a"`)
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "batch.yaml")
	require.NoError(t, os.WriteFile(input, []byte("packages:\n  - workout_type: RUN\n    data: [15000, 1, 75]\n"), 0o644))
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "run", input, "--out", outDir, "--format", "csv")
	require.NoError(t, err)
	require.Contains(t, out, "reports:           1 (0 rejected)")
	require.FileExists(t, filepath.Join(outDir, "reports.csv"))
	require.FileExists(t, filepath.Join(outDir, "training_summary.txt"))
}

func TestFitCommand(t *testing.T) {
	run := fit.NewSessionMsg()
	run.Sport = fit.SportRunning
	run.TotalTimerTime = uint32(time.Hour.Milliseconds())
	run.TotalCycles = 7500

	ride := fit.NewSessionMsg()
	ride.Sport = fit.SportCycling
	ride.TotalTimerTime = uint32(time.Hour.Milliseconds())
	ride.TotalCycles = 5000

	path := filepath.Join(t.TempDir(), "morning.fit")
	require.NoError(t, os.WriteFile(path, buildFIT(t, run, ride), 0o644))

	out, err := execute(t, "fit", path, "--weight", "75")
	require.NoError(t, err)
	require.Contains(t, out,
		"Training type: Running; Duration: 1.000 h; Distance: 9.750 km; Avg speed: 9.750 km/h; Calories burned: 797.805.")
	require.Contains(t, out, "warning: session 2: unsupported sport")

	_, err = execute(t, "fit", filepath.Join(t.TempDir(), "missing.fit"))
	require.ErrorContains(t, err, "open FIT file")
}

func buildFIT(t *testing.T, sessions ...*fit.SessionMsg) []byte {
	t.Helper()

	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		t.Fatalf("new fit file: %v", err)
	}
	activity, err := file.Activity()
	if err != nil {
		t.Fatalf("activity accessor: %v", err)
	}

	start := time.Date(2026, 2, 26, 7, 0, 0, 0, time.UTC)
	for i, s := range sessions {
		s.StartTime = start.Add(time.Duration(i) * 2 * time.Hour)
		s.Timestamp = s.StartTime.Add(time.Hour)
		activity.Sessions = append(activity.Sessions, s)
	}

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		t.Fatalf("encode fit: %v", err)
	}
	return buf.Bytes()
}
