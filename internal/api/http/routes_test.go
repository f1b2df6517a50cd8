package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-reporter/internal/store"
	"github.com/i474232898/weather-reporter/internal/weather"
)

const sampleLog = "\t\tTemp\tWind\t\n" +
	"Date\tTime\tOut\tDir\tRain\n" +
	"01/01/24\t10:00\t10\tN\t0.5\n" +
	"01/01/24\t11:00\t12\tNE\t2\n" +
	"01/01/24\t12:00\t8\tE\t0\n" +
	"02/01/24\t10:00\t9\tE\t1\n"

func newApp(t *testing.T) (*fiber.App, *store.MemoryStore) {
	t.Helper()
	app := fiber.New()
	memStore := store.NewMemoryStore(10)
	RegisterRoutes(app, memStore, Settings{
		StationName:    "SHEAR",
		PrimaryField:   "temp_out",
		SecondaryField: "rain",
	})
	return app, memStore
}

func upload(t *testing.T, app *fiber.App, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets?name=roof", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/tab-separated-values")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp, decode(t, resp)
}

func get(t *testing.T, app *fiber.App, url string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	require.NoError(t, err)
	return resp, decode(t, resp)
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(body, &out))
	} else {
		out["text"] = string(body)
	}
	return out
}

func TestUploadAndDescribe(t *testing.T) {
	app, _ := newApp(t)

	resp, body := upload(t, app, sampleLog)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "roof", body["name"])
	assert.Equal(t, float64(4), body["records"])

	fields := body["fields"].([]any)
	require.Len(t, fields, 3)
	first := fields[0].(map[string]any)
	assert.Equal(t, "temp_out", first["key"])
	assert.Equal(t, "Temperature", first["label"])
	assert.Equal(t, false, fields[1].(map[string]any)["numeric"])
	assert.Equal(t, "Wind Direction", fields[1].(map[string]any)["label"])
	assert.Equal(t, []any{"temp_out", "rain"}, body["plottable"])

	resp, body = get(t, app, "/api/v1/datasets/"+id)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, body["id"])

	resp, body = get(t, app, "/api/v1/datasets")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["datasets"], 1)
}

func TestUploadMalformed(t *testing.T) {
	app, memStore := newApp(t)

	resp, _ := upload(t, app, "\t\tTemp\nDate\tTime\tOut\nsomeday\t10:00\t1\n")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, memStore.List(), "a failed upload leaves the store untouched")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets", strings.NewReader(sampleLog))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "name is required")
}

func TestUploadUnmappedField(t *testing.T) {
	app, memStore := newApp(t)

	resp, body := upload(t, app, "\t\tTemp\t\nDate\tTime\tOut\tSnow\n01/01/24\t10:00\t1.5\t3\n")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["text"], `unknown field "snow"`)
	assert.Empty(t, memStore.List())
}

func TestUploadNameOutlivesRequest(t *testing.T) {
	app, memStore := newApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets?name=alpha", strings.NewReader(sampleLog))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	junk := strings.Repeat("x", 64)
	for i := 0; i < 20; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/datasets/none/chart?frequency="+junk, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	all := memStore.List()
	require.Len(t, all, 1)
	assert.Equal(t, "alpha", all[0].Name)

	_, body := get(t, app, "/api/v1/datasets")
	listed := body["datasets"].([]any)
	require.Len(t, listed, 1)
	assert.Equal(t, "alpha", listed[0].(map[string]any)["name"])
}

func TestPeriods(t *testing.T) {
	app, _ := newApp(t)
	_, body := upload(t, app, sampleLog)
	id := body["id"].(string)

	resp, body := get(t, app, "/api/v1/datasets/"+id+"/periods?frequency=hourly&duration=day")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	periods := body["periods"].([]any)
	require.Len(t, periods, 2)
	assert.Equal(t, "01/01/2024", periods[0].(map[string]any)["label"])
	assert.Equal(t, "02/01/2024", periods[1].(map[string]any)["label"])
}

func TestChart(t *testing.T) {
	app, _ := newApp(t)
	_, body := upload(t, app, sampleLog)
	id := body["id"].(string)

	resp, body := get(t, app, "/api/v1/datasets/"+id+"/chart?frequency=hourly&duration=day&period=0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SHEAR Hourly Weather Report for the Day of 01/01/2024", body["title"])

	chart := body["chart"].(map[string]any)
	assert.Equal(t, []any{float64(10), float64(12), float64(8)}, chart["line"])
	assert.Equal(t, map[string]any{"min": float64(8), "max": float64(16), "inverted": false}, chart["primaryAxis"])
	assert.Equal(t, map[string]any{"min": float64(0), "max": float64(4), "inverted": true}, chart["secondaryAxis"])
}

func TestChartErrors(t *testing.T) {
	app, _ := newApp(t)
	_, body := upload(t, app, sampleLog)
	id := body["id"].(string)

	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"bad frequency", "/chart?frequency=1H", http.StatusBadRequest},
		{"bad duration", "/chart?duration=fortnight", http.StatusBadRequest},
		{"negative period", "/chart?period=-1", http.StatusBadRequest},
		{"non-numeric period", "/chart?period=first", http.StatusBadRequest},
		{"period out of range", "/chart?period=7", http.StatusBadRequest},
		{"unknown field", "/chart?primary=snow", http.StatusBadRequest},
		{"text field", "/chart?secondary=wind_dir", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/datasets/"+id+tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/datasets/missing/chart", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReport(t *testing.T) {
	app, _ := newApp(t)
	_, body := upload(t, app, sampleLog)
	id := body["id"].(string)

	resp, body := get(t, app, "/api/v1/datasets/"+id+"/report?period=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text := body["text"].(string)
	assert.Contains(t, text, "SHEAR Hourly Weather Report for the Day of 02/01/2024")
	assert.Contains(t, text, "02/01/2024 10:00")
}

func TestDelete(t *testing.T) {
	app, memStore := newApp(t)
	memStore.Save(store.Dataset{ID: "x", Name: "x", Table: &weather.Table{}})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/datasets/x", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/datasets/x", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmptyDataset(t *testing.T) {
	app, memStore := newApp(t)
	memStore.Save(store.Dataset{ID: "empty", Name: "empty", Table: &weather.Table{}})

	resp, body := get(t, app, "/api/v1/datasets/empty/periods")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["periods"])

	resp, _ = get(t, app, "/api/v1/datasets/empty/chart")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, app, "/api/v1/datasets/empty/report")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
