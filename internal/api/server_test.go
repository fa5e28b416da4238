package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomonte/app"
	"gomonte/domain/estimate"
	"gomonte/internal/testkit"
)

func newTestServer(t *testing.T) (*Server, *testkit.MemoryRunRepository) {
	t.Helper()
	repo := testkit.NewMemoryRunRepository()
	defaults := estimate.Params{
		RTol:      0.05,
		MaxTrials: 1_000_000,
		BatchSize: 100,
		Workers:   2,
		Sampler:   "uniform",
	}
	return NewServer(app.NewEstimatorService(repo), repo, defaults), repo
}

func postJSON(t *testing.T, server *Server, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestServer_CreateRun(t *testing.T) {
	server, repo := newTestServer(t)

	rec := postJSON(t, server, "/api/runs", `{"seed": 42}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var record estimate.RunRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&record))
	assert.Equal(t, "uniform", record.Sampler)
	assert.Equal(t, int64(42), record.Seed)
	assert.Greater(t, record.Trials, int64(0))
	assert.Zero(t, record.Trials%100)
	assert.InDelta(t, 0.5, record.Mean, 6*record.StdErr)

	assert.Equal(t, 1, repo.Len())
}

func TestServer_CreateRun_OverridesDefaults(t *testing.T) {
	server, _ := newTestServer(t)

	rec := postJSON(t, server, "/api/runs",
		`{"rtol": 0.1, "batch_size": 50, "workers": 1, "sampler": "exponential", "seed": 7}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var record estimate.RunRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&record))
	assert.Equal(t, "exponential", record.Sampler)
	assert.Equal(t, 0.1, record.RTol)
	assert.Equal(t, 50, record.BatchSize)
	assert.Equal(t, 1, record.Workers)
}

func TestServer_CreateRun_InvalidConfig(t *testing.T) {
	server, repo := newTestServer(t)

	rec := postJSON(t, server, "/api/runs", `{"rtol": -1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "CONFIG_INVALID", resp.Code)
	assert.Zero(t, repo.Len())
}

func TestServer_CreateRun_BadJSON(t *testing.T) {
	server, _ := newTestServer(t)
	rec := postJSON(t, server, "/api/runs", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CreateRun_UnknownSampler(t *testing.T) {
	server, _ := newTestServer(t)
	rec := postJSON(t, server, "/api/runs", `{"sampler": "cauchy"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GetRun(t *testing.T) {
	server, repo := newTestServer(t)

	records := testkit.FixtureHistory(1)
	require.NoError(t, repo.Save(context.Background(), &records[0]))

	rec := get(t, server, "/api/runs/"+records[0].ID.String())
	require.Equal(t, http.StatusOK, rec.Code)

	var got estimate.RunRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, records[0].ID, got.ID)
}

func TestServer_GetRun_NotFound(t *testing.T) {
	server, _ := newTestServer(t)
	rec := get(t, server, "/api/runs/no-such-run")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListRuns(t *testing.T) {
	server, repo := newTestServer(t)
	for _, record := range testkit.FixtureHistory(3) {
		r := record
		require.NoError(t, repo.Save(context.Background(), &r))
	}

	rec := get(t, server, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []estimate.RunRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, 3)
	// Newest first
	assert.True(t, got[0].CreatedAt.After(got[2].CreatedAt))
}

func TestServer_Report(t *testing.T) {
	server, repo := newTestServer(t)
	for _, record := range testkit.FixtureHistory(2) {
		r := record
		require.NoError(t, repo.Save(context.Background(), &r))
	}

	rec := get(t, server, "/api/report")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.True(t, strings.Contains(rec.Body.String(), "Estimation run history"))
}
