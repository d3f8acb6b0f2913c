package ftracker

import (
	"fmt"
	"math"
)

// Workout codes sent by the tracker.
const (
	CodeSwimming = "SWM"
	CodeRunning  = "RUN"
	CodeWalking  = "WLK"
)

// Package is one reading received from the tracker: a workout code and the
// positional sensor data for that workout.
type Package struct {
	WorkoutType string    `json:"workout_type" yaml:"workout_type"`
	Data        []float64 `json:"data" yaml:"data"`
}

// Activity describes a supported workout code and the data it expects.
type Activity struct {
	WorkoutType  string   `json:"workout_type"`
	TrainingType string   `json:"training_type"`
	Parameters   []string `json:"parameters"`
}

// Activities lists the supported workout codes in dispatch order.
func Activities() []Activity {
	return []Activity{
		{
			WorkoutType:  CodeSwimming,
			TrainingType: "Swimming",
			Parameters:   []string{"action", "duration_h", "weight_kg", "length_pool_m", "count_pool"},
		},
		{
			WorkoutType:  CodeRunning,
			TrainingType: "Running",
			Parameters:   []string{"action", "duration_h", "weight_kg"},
		},
		{
			WorkoutType:  CodeWalking,
			TrainingType: "Walking",
			Parameters:   []string{"action", "duration_h", "weight_kg", "height_cm"},
		},
	}
}

// ReadPackage builds the training for a workout code from the sensor data.
// The data is unpacked positionally and must match the training exactly:
//
//	RUN: action, duration, weight
//	WLK: action, duration, weight, height
//	SWM: action, duration, weight, length_pool, count_pool
func ReadPackage(workoutType string, data []float64) (Training, error) {
	switch workoutType {
	case CodeSwimming:
		if err := checkArity(workoutType, data, 5); err != nil {
			return nil, err
		}
		action, err := count("action", data[0])
		if err != nil {
			return nil, err
		}
		countPool, err := count("count_pool", data[4])
		if err != nil {
			return nil, err
		}
		swimming, err := NewSwimming(action, data[1], data[2], data[3], countPool)
		if err != nil {
			return nil, err
		}
		return swimming, nil
	case CodeRunning:
		if err := checkArity(workoutType, data, 3); err != nil {
			return nil, err
		}
		action, err := count("action", data[0])
		if err != nil {
			return nil, err
		}
		running, err := NewRunning(action, data[1], data[2])
		if err != nil {
			return nil, err
		}
		return running, nil
	case CodeWalking:
		if err := checkArity(workoutType, data, 4); err != nil {
			return nil, err
		}
		action, err := count("action", data[0])
		if err != nil {
			return nil, err
		}
		walking, err := NewWalking(action, data[1], data[2], data[3])
		if err != nil {
			return nil, err
		}
		return walking, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivity, workoutType)
	}
}

// Training builds the training described by the package.
func (p Package) Training() (Training, error) {
	return ReadPackage(p.WorkoutType, p.Data)
}

func checkArity(workoutType string, data []float64, want int) error {
	if len(data) != want {
		return fmt.Errorf("%w: %s expects %d values, got %d", ErrInvalidParameters, workoutType, want, len(data))
	}
	return nil
}

// count converts a reading that must be a non-negative whole number.
func count(name string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidParameters, name, v)
	}
	if v < 0 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s out of range, got %v", ErrInvalidParameters, name, v)
	}
	return int(v), nil
}
