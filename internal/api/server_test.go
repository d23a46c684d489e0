package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pracazumbi/presenca-api/internal/api"
	"github.com/pracazumbi/presenca-api/internal/api/handler/v1/response"
	"github.com/pracazumbi/presenca-api/internal/config"
	"github.com/pracazumbi/presenca-api/internal/domain"
	"github.com/pracazumbi/presenca-api/internal/repository"
)

const spreadsheet = `id_aluna;nome;idade;sexo;data;presente;tipo_exercicio
1;L£cia;67;F;02/09/2024;1;alongamento
1;L£cia;67;F;03/09/2024;1;caminhada
2;J£lia;71;F;02/09/2024;0;alongamento
2;J£lia;71;F;03/09/2024;0;caminhada
`

func newTestConfig(csvPath string) *config.AppConfig {
	return &config.AppConfig{
		API: &config.APIConfig{
			Environment: "test",
			BaseURL:     "localhost:8080",
			Port:        "8080",
		},
		Gin: &config.GinConfig{Mode: "test"},
		Source: &config.SourceConfig{
			Kind:          config.SourceCSV,
			CSVPath:       csvPath,
			Separator:     ";",
			Encoding:      "utf-8",
			SkipMalformed: true,
		},
		Dashboard: &config.DashboardConfig{
			DefaultLimit:           10,
			MaxLimit:               20,
			RankingSize:            10,
			EncouragementThreshold: 40,
			Signature:              "Professora",
		},
	}
}

func newCSVServer(t *testing.T) *api.Server {
	t.Helper()

	return newCSVServerWith(t, spreadsheet)
}

func newCSVServerWith(t *testing.T, body string) *api.Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "presenca.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	conf := newTestConfig(path)
	repo := repository.NewCSVRepository(path, api.IngestOptions(conf.Source))

	return api.NewServer(conf, repo, nil)
}

func get(t *testing.T, s *api.Server, path string, out any) int {
	t.Helper()

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestServer_Metrics(t *testing.T) {
	s := newCSVServer(t)

	var body response.MetricsResponse
	require.Equal(t, http.StatusOK, get(t, s, "/api/v1/metrics", &body))

	require.Len(t, body.Participants, 2)
	assert.Equal(t, "Júlia", body.Participants[0].Name)
	assert.Equal(t, 100.0, body.Participants[0].RiskScore)
	assert.Equal(t, "Lúcia", body.Participants[1].Name)
	assert.Equal(t, 30, body.Participants[1].Points)

	require.Equal(t, http.StatusOK, get(t, s, "/api/v1/metrics?tier=low", &body))
	assert.Equal(t, 1, body.Count)
}

func TestServer_SkipsMalformedRows(t *testing.T) {
	s := newCSVServerWith(t, spreadsheet+"3;Rosa;60;F;31/09/2024;1;dança\n")

	var body response.MetricsResponse
	require.Equal(t, http.StatusOK, get(t, s, "/api/v1/metrics", &body))
	require.Len(t, body.Participants, 2)
	assert.Equal(t, "Júlia", body.Participants[0].Name)
	assert.Equal(t, "Lúcia", body.Participants[1].Name)

	var overview domain.Overview
	require.Equal(t, http.StatusOK, get(t, s, "/api/v1/overview", &overview))
	assert.Equal(t, 2, overview.TotalParticipants)

	assert.Equal(t, http.StatusOK, get(t, s, "/api/v1/ranking", nil))
	assert.Equal(t, http.StatusOK, get(t, s, "/api/v1/participants/1/metrics", nil))
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/v1/participants/3/metrics", nil))
}

func TestServer_Routes(t *testing.T) {
	s := newCSVServer(t)

	var overview domain.Overview
	require.Equal(t, http.StatusOK, get(t, s, "/api/v1/overview", &overview))
	assert.Equal(t, "Lúcia", overview.Leader)
	assert.Equal(t, 50.0, overview.AttendanceRate)

	var enc domain.Encouragement
	require.Equal(t, http.StatusOK, get(t, s, "/api/v1/participants/2/encouragement", &enc))
	assert.True(t, enc.Needed)
	assert.Contains(t, enc.Message, "Júlia")

	assert.Equal(t, http.StatusOK, get(t, s, "/api/v1/ranking", nil))
	assert.Equal(t, http.StatusOK, get(t, s, "/api/v1/stats/daily", nil))
	assert.Equal(t, http.StatusOK, get(t, s, "/api/v1/stats/exercises", nil))
	assert.Equal(t, http.StatusOK, get(t, s, "/api/v1/participants/1/evolution", nil))
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/v1/participants/9/metrics", nil))
	assert.Equal(t, http.StatusOK, get(t, s, "/", nil))
}

func TestServer_ImportsDisabledForCSV(t *testing.T) {
	s := newCSVServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "presenca.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(spreadsheet))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestServer_SettingsReload(t *testing.T) {
	s := newCSVServer(t)

	conf := *s.Config.Dashboard
	conf.Signature = "Prof. Cida"
	s.Dashboard.UpdateSettings(api.DashboardSettings(&conf))

	var enc domain.Encouragement
	require.Equal(t, http.StatusOK, get(t, s, "/api/v1/participants/2/encouragement", &enc))
	assert.Contains(t, enc.Message, "- Prof. Cida")
}
