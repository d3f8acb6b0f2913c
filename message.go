package ftracker

import (
	"fmt"
	"strings"
)

// InfoMessage is the summary of one training. It is built once by
// ShowTrainingInfo and never changed afterwards.
type InfoMessage struct {
	TrainingType string  `json:"training_type"`
	Duration     float64 `json:"duration_h"`
	Distance     float64 `json:"distance_km"`
	Speed        float64 `json:"speed_kmh"`
	Calories     float64 `json:"calories_kcal"`
}

// Message renders the summary line.
func (m InfoMessage) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Training type: %s; ", m.TrainingType)
	fmt.Fprintf(&b, "Duration: %.3f h; ", m.Duration)
	fmt.Fprintf(&b, "Distance: %.3f km; ", m.Distance)
	fmt.Fprintf(&b, "Avg speed: %.3f km/h; ", m.Speed)
	fmt.Fprintf(&b, "Calories burned: %.3f.", m.Calories)
	return b.String()
}

func (m InfoMessage) String() string {
	return m.Message()
}
