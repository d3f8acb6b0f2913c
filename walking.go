package ftracker

import "math"

// Walking calorie coefficients.
const (
	WalkingCaloriesWeightMultiplier = 0.035
	WalkingSpeedHeightMultiplier    = 0.029
)

// Walking is a sports walk measured in steps. Height feeds the calorie formula.
type Walking struct {
	training
	height float64
}

// NewWalking validates the readings and returns a Walking training. Height is in centimeters.
func NewWalking(action int, duration, weight, height float64) (*Walking, error) {
	base, err := newTraining(action, duration, weight, LenStep)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("height", height); err != nil {
		return nil, err
	}
	w := &Walking{training: base, height: height}
	if err := checkResults(w); err != nil {
		return nil, err
	}
	return w, nil
}

// Height returns the athlete height in centimeters.
func (w *Walking) Height() float64 { return w.height }

// TrainingType returns the display name.
func (w *Walking) TrainingType() string { return "Walking" }

// SpentCalories returns the calories burned in kcal.
func (w *Walking) SpentCalories() float64 {
	speedMs := w.MeanSpeed() * KmhInMsec
	heightM := w.height / CmInM
	return (WalkingCaloriesWeightMultiplier*w.weight +
		(math.Pow(speedMs, 2)/heightM)*WalkingSpeedHeightMultiplier*w.weight) *
		w.duration * MinInH
}
