//go:build js && wasm

package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"syscall/js"
	"time"

	ftracker "github.com/lucasjlepore/fit-tracker"
	"github.com/lucasjlepore/fit-tracker/fitimport"
	"github.com/lucasjlepore/fit-tracker/pipeline"
)

func main() {
	js.Global().Set("trainingReport", js.FuncOf(trainingReport))
	js.Global().Set("runBatch", js.FuncOf(runBatch))
	select {}
}

func trainingReport(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return map[string]any{
			"ok":    false,
			"error": "expected arguments: workoutType(string), data(array of numbers)",
		}
	}
	dataArg := args[1]
	if dataArg.Type() != js.TypeObject {
		return map[string]any{
			"ok":    false,
			"error": "data must be an array of numbers",
		}
	}
	data := make([]float64, dataArg.Length())
	for i := range data {
		v := dataArg.Index(i)
		if v.Type() != js.TypeNumber {
			return map[string]any{
				"ok":    false,
				"error": fmt.Sprintf("data[%d] is not a number", i),
			}
		}
		data[i] = v.Float()
	}

	training, err := ftracker.ReadPackage(args[0].String(), data)
	if err != nil {
		return map[string]any{
			"ok":    false,
			"error": err.Error(),
		}
	}
	info := ftracker.ShowTrainingInfo(training)
	return map[string]any{
		"ok":            true,
		"training_type": info.TrainingType,
		"duration_h":    info.Duration,
		"distance_km":   info.Distance,
		"speed_kmh":     info.Speed,
		"calories_kcal": info.Calories,
		"message":       info.Message(),
	}
}

func runBatch(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return map[string]any{
			"ok":    false,
			"error": "expected arguments: fileBytes(Uint8Array), options(object)",
		}
	}
	fileArg := args[0]
	optsArg := args[1]
	if fileArg.IsUndefined() || fileArg.IsNull() || fileArg.Get("length").Int() == 0 {
		return map[string]any{
			"ok":    false,
			"error": "batch file bytes are required",
		}
	}

	fileBytes := make([]byte, fileArg.Get("length").Int())
	if n := js.CopyBytesToGo(fileBytes, fileArg); n == 0 {
		return map[string]any{
			"ok":    false,
			"error": "failed to read batch bytes from JS input",
		}
	}

	opts := pipeline.BytesOptions{
		SourceFileName: getString(optsArg, "source_file_name", "batch.yaml"),
		Data:           fileBytes,
		Format:         getString(optsArg, "format", "csv"),
		Profile: fitimport.Profile{
			WeightKG: getFloat(optsArg, "weight_kg"),
			HeightCM: getFloat(optsArg, "height_cm"),
		},
	}
	result, err := pipeline.RunBytes(opts)
	if err != nil {
		return map[string]any{
			"ok":    false,
			"error": err.Error(),
		}
	}

	zipBytes, err := zipArtifacts(result.Files)
	if err != nil {
		return map[string]any{
			"ok":    false,
			"error": fmt.Sprintf("create zip: %v", err),
		}
	}
	payload := js.Global().Get("Uint8Array").New(len(zipBytes))
	js.CopyBytesToJS(payload, zipBytes)

	fileNames := make([]string, 0, len(result.Files))
	for name := range result.Files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	failures := make([]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, fmt.Sprintf("#%d %s: %s", f.Index, f.WorkoutType, f.Error))
	}

	return map[string]any{
		"ok":       true,
		"zip":      payload,
		"reports":  len(result.Reports),
		"failures": stringsToAny(failures),
		"warnings": stringsToAny(result.Warnings),
		"files":    stringsToAny(fileNames),
	}
}

func zipArtifacts(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fixedTime := time.Unix(0, 0).UTC()

	for _, name := range names {
		h := &zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		}
		h.SetModTime(fixedTime)
		w, err := zw.CreateHeader(h)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func getString(v js.Value, key, fallback string) string {
	if v.IsUndefined() || v.IsNull() {
		return fallback
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() {
		return fallback
	}
	s := out.String()
	if s == "" || s == "undefined" || s == "null" {
		return fallback
	}
	return s
}

func getFloat(v js.Value, key string) float64 {
	if v.IsUndefined() || v.IsNull() {
		return 0
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() || out.Type() != js.TypeNumber {
		return 0
	}
	return out.Float()
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
