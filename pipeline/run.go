package pipeline

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	ftracker "github.com/lucasjlepore/fit-tracker"
	"github.com/lucasjlepore/fit-tracker/fitimport"
	"github.com/lucasjlepore/fit-tracker/internal/observability"
)

const (
	summaryFileName = "training_summary.txt"
	reportsFileName = "reports.json"
	tableBaseName   = "reports"
)

var tableHeader = []string{
	"id", "index", "workout_type", "training_type", "duration_h", "distance_km", "speed_kmh", "calories_kcal",
}

// Run reads a batch of tracker packages, builds one report per package and
// writes the summary, reports.json and a reports table into OutDir.
// Packages that fail validation are recorded as failures; only I/O and
// input decoding errors abort the run.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.InputPath) == "" {
		return nil, fmt.Errorf("input path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	packages, warnings, err := loadPackages(opts.InputPath, data, opts.Profile)
	if err != nil {
		return nil, err
	}
	reports, failures := buildReports(packages, loggerOrDiscard(opts.Logger))

	if err := ensureOutputDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}

	summaryPath := filepath.Join(opts.OutDir, summaryFileName)
	if err := os.WriteFile(summaryPath, renderSummary(reports), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", summaryFileName, err)
	}

	reportsPath := filepath.Join(opts.OutDir, reportsFileName)
	if err := writeJSON(reportsPath, newReportsFile(opts.InputPath, reports, failures, warnings)); err != nil {
		return nil, fmt.Errorf("write %s: %w", reportsFileName, err)
	}

	tablePath := filepath.Join(opts.OutDir, tableBaseName+"."+format)
	switch format {
	case "csv":
		err = writeReportsCSVFile(tablePath, reports)
	case "parquet":
		err = writeReportsParquet(tablePath, reports)
	}
	if err != nil {
		return nil, fmt.Errorf("write reports %s: %w", format, err)
	}

	return &Result{
		OutputDir:   opts.OutDir,
		SummaryPath: summaryPath,
		ReportsPath: reportsPath,
		TablePath:   tablePath,
		Reports:     reports,
		Failures:    failures,
		Warnings:    warnings,
	}, nil
}

// RunBytes is Run without the filesystem: artifacts are returned in memory.
func RunBytes(opts BytesOptions) (*BytesResult, error) {
	if len(opts.Data) == 0 {
		return nil, fmt.Errorf("input data is required")
	}
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	packages, warnings, err := loadPackages(opts.SourceFileName, opts.Data, opts.Profile)
	if err != nil {
		return nil, err
	}
	reports, failures := buildReports(packages, loggerOrDiscard(opts.Logger))

	var reportsJSON bytes.Buffer
	if err := encodeJSON(&reportsJSON, newReportsFile(opts.SourceFileName, reports, failures, warnings)); err != nil {
		return nil, fmt.Errorf("encode %s: %w", reportsFileName, err)
	}

	var table []byte
	switch format {
	case "csv":
		var buf bytes.Buffer
		err = writeReportsCSV(&buf, reports)
		table = buf.Bytes()
	case "parquet":
		table, err = marshalReportsParquet(reports)
	}
	if err != nil {
		return nil, fmt.Errorf("encode reports %s: %w", format, err)
	}

	files := make(map[string][]byte, 3)
	files[summaryFileName] = renderSummary(reports)
	files[reportsFileName] = reportsJSON.Bytes()
	files[tableBaseName+"."+format] = table

	return &BytesResult{
		Files:    files,
		Reports:  reports,
		Failures: failures,
		Warnings: warnings,
	}, nil
}

// LoadBatch decodes a YAML or JSON batch document.
func LoadBatch(data []byte) (Batch, error) {
	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return Batch{}, fmt.Errorf("unmarshal batch: %w", err)
	}
	return batch, nil
}

func loadPackages(name string, data []byte, profile fitimport.Profile) ([]ftracker.Package, []string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".fit":
		imported, err := fitimport.ReadBytes(data, profile)
		if err != nil {
			return nil, nil, err
		}
		return imported.Packages, imported.Warnings, nil
	case ".yaml", ".yml", ".json":
		batch, err := LoadBatch(data)
		if err != nil {
			return nil, nil, err
		}
		return batch.Packages, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported input %q (expected .yaml|.yml|.json|.fit)", filepath.Base(name))
	}
}

func buildReports(packages []ftracker.Package, logger *log.Logger) ([]Report, []Failure) {
	reports := make([]Report, 0, len(packages))
	var failures []Failure
	for idx, pkg := range packages {
		training, err := pkg.Training()
		if err != nil {
			observability.RecordRejected(err)
			logger.Printf("package %d (%s) rejected: %v", idx, pkg.WorkoutType, err)
			failures = append(failures, Failure{
				Index:       idx,
				WorkoutType: pkg.WorkoutType,
				Reason:      observability.Reason(err),
				Error:       err.Error(),
			})
			continue
		}
		info := ftracker.ShowTrainingInfo(training)
		observability.RecordReport(info)
		reports = append(reports, Report{
			ID:          uuid.NewString(),
			Index:       idx,
			WorkoutType: pkg.WorkoutType,
			InfoMessage: info,
			Message:     info.Message(),
		})
	}
	return reports, failures
}

func renderSummary(reports []Report) []byte {
	var b bytes.Buffer
	for _, r := range reports {
		b.WriteString(r.Message)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

func newReportsFile(source string, reports []Report, failures []Failure, warnings []string) ReportsFile {
	return ReportsFile{
		GeneratedAt: time.Now().UTC(),
		Source:      filepath.Base(source),
		Reports:     reports,
		Failures:    failures,
		Warnings:    warnings,
	}
}

func normalizeFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "parquet"
	}
	if format != "parquet" && format != "csv" {
		return "", fmt.Errorf("unsupported format %q (expected parquet|csv)", format)
	}
	return format, nil
}

func loggerOrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return logger
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite=true to allow)", path)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return encodeJSON(f, v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeReportsCSVFile(path string, reports []Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeReportsCSV(f, reports)
}

func writeReportsCSV(out io.Writer, reports []Report) error {
	w := csv.NewWriter(out)
	if err := w.Write(tableHeader); err != nil {
		return err
	}
	for _, r := range reports {
		row := []string{
			r.ID,
			strconv.Itoa(r.Index),
			r.WorkoutType,
			r.TrainingType,
			formatFloat(r.Duration),
			formatFloat(r.Distance),
			formatFloat(r.Speed),
			formatFloat(r.Calories),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
