// Package ftracker turns raw fitness tracker readings into training summaries:
// distance, average speed and spent calories for running, walking and swimming.
package ftracker

import (
	"fmt"
	"math"
)

// Training is the contract every training type fulfils. SpentCalories has no
// shared implementation; each type supplies its own formula.
type Training interface {
	TrainingType() string
	Duration() float64
	Distance() float64
	MeanSpeed() float64
	SpentCalories() float64
}

// training holds the readings common to all training types.
type training struct {
	action   int
	duration float64
	weight   float64
	lenStep  float64
}

func newTraining(action int, duration, weight, lenStep float64) (training, error) {
	if action < 0 {
		return training{}, fmt.Errorf("%w: action count %d is negative", ErrInvalidParameters, action)
	}
	if err := requirePositive("duration", duration); err != nil {
		return training{}, err
	}
	if err := requirePositive("weight", weight); err != nil {
		return training{}, err
	}
	return training{action: action, duration: duration, weight: weight, lenStep: lenStep}, nil
}

// Action returns the number of steps or strokes.
func (t training) Action() int { return t.action }

// Duration returns the training duration in hours.
func (t training) Duration() float64 { return t.duration }

// Weight returns the athlete weight in kilograms.
func (t training) Weight() float64 { return t.weight }

// Distance returns the covered distance in kilometers.
func (t training) Distance() float64 {
	return float64(t.action) * t.lenStep / MInKm
}

// MeanSpeed returns the average speed in km/h.
func (t training) MeanSpeed() float64 {
	return t.Distance() / t.duration
}

// ShowTrainingInfo builds the summary message for a finished training.
func ShowTrainingInfo(t Training) InfoMessage {
	return InfoMessage{
		TrainingType: t.TrainingType(),
		Duration:     t.Duration(),
		Distance:     t.Distance(),
		Speed:        t.MeanSpeed(),
		Calories:     t.SpentCalories(),
	}
}

// checkResults rejects readings whose derived values overflow.
func checkResults(t Training) error {
	results := []struct {
		name  string
		value float64
	}{
		{"distance", t.Distance()},
		{"mean speed", t.MeanSpeed()},
		{"spent calories", t.SpentCalories()},
	}
	for _, r := range results {
		if math.IsNaN(r.value) || math.IsInf(r.value, 0) {
			return fmt.Errorf("%w: %s is not finite for these readings", ErrInvalidParameters, r.name)
		}
	}
	return nil
}

func requirePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParameters, name, v)
	}
	return nil
}
