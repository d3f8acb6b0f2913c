package api

import (
	"bytes"
	"log"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ftracker "github.com/lucasjlepore/fit-tracker"
)

type errorBody struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

func newTestClient(t *testing.T, logs *bytes.Buffer) *resty.Client {
	t.Helper()

	router := mux.NewRouter()
	NewHandler(WithLogger(log.New(logs, "", 0))).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return resty.New().SetBaseURL(srv.URL)
}

func TestCreateReport(t *testing.T) {
	client := newTestClient(t, &bytes.Buffer{})

	var out ReportResponse
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(ReportRequest{WorkoutType: "RUN", Data: []float64{15000, 1, 75}}).
		SetResult(&out).
		Post("/v1/reports")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	assert.Equal(t, "Running", out.TrainingType)
	assert.InDelta(t, 9.75, out.Distance, 1e-9)
	assert.InDelta(t, 9.75, out.Speed, 1e-9)
	assert.InDelta(t, 797.805, out.Calories, 1e-3)
	assert.Equal(t, "Training type: Running; Duration: 1.000 h; Distance: 9.750 km; Avg speed: 9.750 km/h; Calories burned: 797.805.", out.Message)
	assert.Contains(t, string(resp.Body()), `"calories_kcal"`)
}

func TestCreateReportRejectsBadPackages(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantType string
	}{
		{"unknown activity", `{"workout_type":"FOO","data":[1,2,3]}`, "unknown_activity"},
		{"arity mismatch", `{"workout_type":"RUN","data":[1,2]}`, "invalid_parameters"},
		{"zero duration", `{"workout_type":"SWM","data":[720,0,80,25,40]}`, "invalid_parameters"},
		{"calories overflow", `{"workout_type":"RUN","data":[15000,1,1e308]}`, "invalid_parameters"},
		{"malformed body", `{"workout_type":`, "invalid_request"},
		{"unknown field", `{"workout_type":"RUN","data":[1,1,1],"extra":true}`, "invalid_request"},
	}
	logs := &bytes.Buffer{}
	client := newTestClient(t, logs)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out errorBody
			resp, err := client.R().
				SetHeader("Content-Type", "application/json").
				SetBody(tt.body).
				SetError(&out).
				Post("/v1/reports")
			require.NoError(t, err)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode())
			require.Equal(t, tt.wantType, out.Type)
			require.NotEmpty(t, out.Detail)
		})
	}
	require.Contains(t, logs.String(), `rejected package "FOO"`)
}

func TestListActivities(t *testing.T) {
	client := newTestClient(t, &bytes.Buffer{})

	var out []ftracker.Activity
	resp, err := client.R().SetResult(&out).Get("/v1/activities")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Equal(t, ftracker.Activities(), out)
}

func TestRoutesRejectWrongMethod(t *testing.T) {
	client := newTestClient(t, &bytes.Buffer{})

	resp, err := client.R().Get("/v1/reports")
	require.NoError(t, err)
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode())

	resp, err = client.R().Get("/healthz")
	require.NoError(t, err)
	require.Equal(t, "ok", resp.String())
}

func TestWriteJSONUnencodablePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"calories_kcal": math.Inf(1)})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotEqual(t, "application/json", rec.Header().Get("Content-Type"))
}
