package ftracker

import "fmt"

// Swimming calorie coefficients.
const (
	SwimmingCaloriesMeanSpeedShift   = 1.1
	SwimmingCaloriesWeightMultiplier = 2
)

// Swimming is a pool swim measured in strokes.
//
// Distance follows the stroke count while MeanSpeed follows the pool geometry.
// The two are not reconciled.
type Swimming struct {
	training
	lengthPool float64
	countPool  int
}

// NewSwimming validates the readings and returns a Swimming training.
// lengthPool is in meters, countPool is the number of pool lengths swum.
func NewSwimming(action int, duration, weight, lengthPool float64, countPool int) (*Swimming, error) {
	base, err := newTraining(action, duration, weight, SwimmingLenStep)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("pool length", lengthPool); err != nil {
		return nil, err
	}
	if countPool < 0 {
		return nil, fmt.Errorf("%w: pool count %d is negative", ErrInvalidParameters, countPool)
	}
	s := &Swimming{training: base, lengthPool: lengthPool, countPool: countPool}
	if err := checkResults(s); err != nil {
		return nil, err
	}
	return s, nil
}

// LengthPool returns the pool length in meters.
func (s *Swimming) LengthPool() float64 { return s.lengthPool }

// CountPool returns the number of pool lengths.
func (s *Swimming) CountPool() int { return s.countPool }

// TrainingType returns the display name.
func (s *Swimming) TrainingType() string { return "Swimming" }

// MeanSpeed returns the average speed in km/h computed from the pool lengths swum.
func (s *Swimming) MeanSpeed() float64 {
	return s.lengthPool * float64(s.countPool) / MInKm / s.duration
}

// SpentCalories returns the calories burned in kcal.
func (s *Swimming) SpentCalories() float64 {
	return (s.MeanSpeed() + SwimmingCaloriesMeanSpeedShift) *
		SwimmingCaloriesWeightMultiplier * s.weight * s.duration
}
