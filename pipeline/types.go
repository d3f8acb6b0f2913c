package pipeline

import (
	"log"
	"time"

	ftracker "github.com/lucasjlepore/fit-tracker"
	"github.com/lucasjlepore/fit-tracker/fitimport"
)

// Options configures the report pipeline.
type Options struct {
	InputPath string // .yaml|.yml|.json batch or .fit activity
	OutDir    string
	Format    string // parquet|csv
	Overwrite bool
	Profile   fitimport.Profile
	Logger    *log.Logger
}

// BytesOptions configures an in-memory pipeline run.
type BytesOptions struct {
	SourceFileName string
	Data           []byte
	Format         string // parquet|csv
	Profile        fitimport.Profile
	Logger         *log.Logger
}

// Result returns generated output paths and the computed reports.
type Result struct {
	OutputDir   string    `json:"output_dir"`
	SummaryPath string    `json:"summary_path"`
	ReportsPath string    `json:"reports_path"`
	TablePath   string    `json:"table_path"`
	Reports     []Report  `json:"reports"`
	Failures    []Failure `json:"failures,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
}

// BytesResult holds the generated artifacts keyed by file name.
type BytesResult struct {
	Files    map[string][]byte
	Reports  []Report
	Failures []Failure
	Warnings []string
}

// Batch is the YAML/JSON input document.
type Batch struct {
	Packages []ftracker.Package `json:"packages" yaml:"packages"`
}

// Report is one computed training summary.
type Report struct {
	ID          string `json:"id"`
	Index       int    `json:"index"`
	WorkoutType string `json:"workout_type"`
	ftracker.InfoMessage
	Message string `json:"message"`
}

// Failure records a package that could not be turned into a report.
type Failure struct {
	Index       int    `json:"index"`
	WorkoutType string `json:"workout_type"`
	Reason      string `json:"reason"`
	Error       string `json:"error"`
}

// ReportsFile is the reports.json document.
type ReportsFile struct {
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`
	Reports     []Report  `json:"reports"`
	Failures    []Failure `json:"failures,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
}
