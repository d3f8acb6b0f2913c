// Package fitimport turns sessions of a FIT activity file into tracker packages.
package fitimport

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tormoder/fit"

	ftracker "github.com/lucasjlepore/fit-tracker"
)

// stepsPerStride converts FIT running and walking cycles (strides) into steps.
const stepsPerStride = 2

// Profile carries the athlete data a FIT session does not record.
type Profile struct {
	WeightKG float64
	HeightCM float64
}

// Import is the result of reading one FIT file.
type Import struct {
	Packages []ftracker.Package
	Warnings []string
}

// ReadFile decodes the FIT activity file at path.
func ReadFile(path string, profile Profile) (*Import, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()
	return Decode(f, profile)
}

// ReadBytes decodes an in-memory FIT activity file.
func ReadBytes(data []byte, profile Profile) (*Import, error) {
	return Decode(bytes.NewReader(data), profile)
}

// Decode reads a FIT activity stream and converts every supported session into
// a package. Sessions that cannot be converted are reported as warnings.
func Decode(r io.Reader, profile Profile) (*Import, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}
	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("activity file has no session message")
	}

	out := &Import{}
	for idx, session := range activity.Sessions {
		if session == nil {
			continue
		}
		pkg, warning := sessionPackage(session, profile)
		if warning != "" {
			out.Warnings = append(out.Warnings, fmt.Sprintf("session %d: %s", idx+1, warning))
			continue
		}
		out.Packages = append(out.Packages, pkg)
	}
	return out, nil
}

func sessionPackage(session *fit.SessionMsg, profile Profile) (ftracker.Package, string) {
	cycles, ok := validCycles(session.TotalCycles)
	if !ok {
		return ftracker.Package{}, "no cycle count recorded"
	}
	hours := safePositive(session.GetTotalTimerTimeScaled()) / ftracker.SecInH
	if hours == 0 {
		return ftracker.Package{}, "no timer time recorded"
	}

	switch session.Sport {
	case fit.SportRunning:
		return ftracker.Package{
			WorkoutType: ftracker.CodeRunning,
			Data:        []float64{cycles * stepsPerStride, hours, profile.WeightKG},
		}, ""
	case fit.SportWalking:
		return ftracker.Package{
			WorkoutType: ftracker.CodeWalking,
			Data:        []float64{cycles * stepsPerStride, hours, profile.WeightKG, profile.HeightCM},
		}, ""
	case fit.SportSwimming:
		poolLength := safePositive(session.GetPoolLengthScaled())
		if poolLength == 0 {
			return ftracker.Package{}, "swimming session without pool length"
		}
		lengths := 0.0
		if session.NumActiveLengths != math.MaxUint16 {
			lengths = float64(session.NumActiveLengths)
		}
		return ftracker.Package{
			WorkoutType: ftracker.CodeSwimming,
			Data:        []float64{cycles, hours, profile.WeightKG, poolLength, lengths},
		}, ""
	default:
		return ftracker.Package{}, fmt.Sprintf("unsupported sport %v", session.Sport)
	}
}

func validCycles(v uint32) (float64, bool) {
	if v == math.MaxUint32 {
		return 0, false
	}
	return float64(v), true
}

func safePositive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}
