package ftracker

// Running calorie coefficients.
const (
	RunningCaloriesMeanSpeedMultiplier = 18
	RunningCaloriesMeanSpeedShift      = 1.79
)

// Running is a run measured in steps.
type Running struct {
	training
}

// NewRunning validates the readings and returns a Running training.
func NewRunning(action int, duration, weight float64) (*Running, error) {
	base, err := newTraining(action, duration, weight, LenStep)
	if err != nil {
		return nil, err
	}
	r := &Running{training: base}
	if err := checkResults(r); err != nil {
		return nil, err
	}
	return r, nil
}

// TrainingType returns the display name.
func (r *Running) TrainingType() string { return "Running" }

// SpentCalories returns the calories burned in kcal.
func (r *Running) SpentCalories() float64 {
	return (RunningCaloriesMeanSpeedMultiplier*r.MeanSpeed() + RunningCaloriesMeanSpeedShift) *
		r.weight / MInKm * r.duration * MinInH
}
