package fitimport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"

	ftracker "github.com/lucasjlepore/fit-tracker"
)

func TestDecodeConvertsSessions(t *testing.T) {
	data := buildTestFIT(t,
		runSession(7500, time.Hour),
		walkSession(4500, 30*time.Minute),
		swimSession(720, time.Hour, 25, 40),
	)

	out, err := ReadBytes(data, Profile{WeightKG: 75, HeightCM: 180})
	require.NoError(t, err)
	require.Empty(t, out.Warnings)
	require.Len(t, out.Packages, 3)

	assert.Equal(t, ftracker.CodeRunning, out.Packages[0].WorkoutType)
	assert.Equal(t, []float64{15000, 1, 75}, out.Packages[0].Data)

	assert.Equal(t, ftracker.CodeWalking, out.Packages[1].WorkoutType)
	assert.Equal(t, []float64{9000, 0.5, 75, 180}, out.Packages[1].Data)

	swim := out.Packages[2]
	assert.Equal(t, ftracker.CodeSwimming, swim.WorkoutType)
	require.Len(t, swim.Data, 5)
	assert.InDelta(t, 720, swim.Data[0], 1e-9)
	assert.InDelta(t, 1, swim.Data[1], 1e-9)
	assert.InDelta(t, 25, swim.Data[3], 1e-9)
	assert.InDelta(t, 40, swim.Data[4], 1e-9)

	training, err := out.Packages[0].Training()
	require.NoError(t, err)
	assert.InDelta(t, 797.805, training.SpentCalories(), 1e-3)
}

func TestDecodeWarnsOnUnsupportedSessions(t *testing.T) {
	ride := fit.NewSessionMsg()
	ride.Sport = fit.SportCycling
	ride.TotalTimerTime = 3600 * 1000
	ride.TotalCycles = 5000

	noCycles := fit.NewSessionMsg()
	noCycles.Sport = fit.SportRunning
	noCycles.TotalTimerTime = 3600 * 1000

	data := buildTestFIT(t, ride, noCycles, runSession(1000, time.Hour))

	out, err := ReadBytes(data, Profile{WeightKG: 70, HeightCM: 175})
	require.NoError(t, err)
	require.Len(t, out.Packages, 1)
	require.Len(t, out.Warnings, 2)
	assert.Contains(t, out.Warnings[0], "session 1: unsupported sport")
	assert.Contains(t, out.Warnings[1], "session 2: no cycle count")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.fit")
	require.NoError(t, os.WriteFile(path, buildTestFIT(t, runSession(100, time.Hour)), 0o644))

	out, err := ReadFile(path, Profile{WeightKG: 70})
	require.NoError(t, err)
	require.Len(t, out.Packages, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.fit"), Profile{})
	require.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := ReadBytes([]byte("not a fit file"), Profile{})
	require.Error(t, err)
}

func runSession(strides uint32, d time.Duration) *fit.SessionMsg {
	s := fit.NewSessionMsg()
	s.Sport = fit.SportRunning
	s.TotalTimerTime = uint32(d.Milliseconds())
	s.TotalCycles = strides
	return s
}

func walkSession(strides uint32, d time.Duration) *fit.SessionMsg {
	s := runSession(strides, d)
	s.Sport = fit.SportWalking
	return s
}

func swimSession(strokes uint32, d time.Duration, poolLengthM float64, lengths uint16) *fit.SessionMsg {
	s := fit.NewSessionMsg()
	s.Sport = fit.SportSwimming
	s.TotalTimerTime = uint32(d.Milliseconds())
	s.TotalCycles = strokes
	s.PoolLength = uint16(poolLengthM * 100)
	s.NumActiveLengths = lengths
	return s
}

func buildTestFIT(t *testing.T, sessions ...*fit.SessionMsg) []byte {
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

	start := time.Date(2026, 2, 26, 23, 0, 0, 0, time.UTC)
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
