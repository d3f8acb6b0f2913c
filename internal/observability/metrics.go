// Package observability holds the prometheus collectors for training reports.
package observability

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	ftracker "github.com/lucasjlepore/fit-tracker"
)

// Rejection reasons used as label values.
const (
	ReasonUnknownActivity   = "unknown_activity"
	ReasonInvalidParameters = "invalid_parameters"
	ReasonOther             = "other"
)

var (
	reportsBuilt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "reports",
		Name:      "built_total",
		Help:      "Number of training reports built, by training type.",
	}, []string{"training_type"})
	packagesRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "packages",
		Name:      "rejected_total",
		Help:      "Number of tracker packages rejected, by reason.",
	}, []string{"reason"})
	caloriesBurned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "reports",
		Name:      "calories_kcal_total",
		Help:      "Sum of calories reported, by training type.",
	}, []string{"training_type"})
)

func init() {
	prometheus.MustRegister(reportsBuilt, packagesRejected, caloriesBurned)
}

// RecordReport counts a built report.
func RecordReport(info ftracker.InfoMessage) {
	reportsBuilt.WithLabelValues(info.TrainingType).Inc()
	if info.Calories > 0 {
		caloriesBurned.WithLabelValues(info.TrainingType).Add(info.Calories)
	}
}

// RecordRejected counts a package that could not be turned into a report.
func RecordRejected(err error) {
	if err == nil {
		return
	}
	packagesRejected.WithLabelValues(Reason(err)).Inc()
}

// Reason maps an error returned by ftracker.ReadPackage to a label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, ftracker.ErrUnknownActivity):
		return ReasonUnknownActivity
	case errors.Is(err, ftracker.ErrInvalidParameters):
		return ReasonInvalidParameters
	default:
		return ReasonOther
	}
}
