package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pracazumbi/presenca-api/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

const minimal = `
api:
  environment: test
gin:
  mode: test
source:
  kind: csv
  csv_path: ./presencas.csv
`

func TestLoad_Defaults(t *testing.T) {
	conf, err := config.Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, config.SourceCSV, conf.Source.Kind)
	assert.Equal(t, ';', conf.Source.SeparatorRune())
	assert.Equal(t, 10, conf.Dashboard.DefaultLimit)
	assert.Equal(t, 20, conf.Dashboard.MaxLimit)
	assert.Equal(t, 10, conf.Dashboard.RankingSize)
	assert.Equal(t, 40.0, conf.Dashboard.EncouragementThreshold)
	assert.Equal(t, "Professora", conf.Dashboard.Signature)
	assert.True(t, conf.Source.SkipMalformed)
}

func TestLoad_Encodings(t *testing.T) {
	for _, enc := range []string{"utf-8", "cp850", "ibm850", "latin1", "ISO-8859-1"} {
		t.Run(enc, func(t *testing.T) {
			conf, err := config.Load(writeConfig(t, minimal+"  encoding: "+enc+"\n"))
			require.NoError(t, err)
			assert.Equal(t, enc, conf.Source.Encoding)
		})
	}

	_, err := config.Load(writeConfig(t, minimal+"  encoding: ebcdic\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iso-8859-1")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SOURCE_KIND", "postgres")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("DASHBOARD_DEFAULT_LIMIT", "5")

	conf, err := config.Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, config.SourcePostgres, conf.Source.Kind)
	require.NotNil(t, conf.Postgres)
	assert.Equal(t, "db.internal", conf.Postgres.Host)
	assert.Equal(t, 5, conf.Dashboard.DefaultLimit)
	assert.Contains(t, conf.Postgres.DSN(), "host=db.internal port=5432")
	assert.Contains(t, conf.Postgres.DSN(), "sslmode=disable")
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown source": `
source:
  kind: excel
`,
		"csv without path": `
source:
  kind: csv
`,
		"long separator": `
source:
  kind: csv
  csv_path: ./x.csv
  separator: ";;"
`,
		"max below default": `
source:
  kind: csv
  csv_path: ./x.csv
dashboard:
  default_limit: 10
  max_limit: 5
`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))

	assert.Error(t, err)
}

// replaceConfig swaps the file in one rename so the watcher never reads a
// half written file.
func replaceConfig(t *testing.T, path, body string) {
	t.Helper()

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(body), 0o600))
	require.NoError(t, os.Rename(tmp, path))
}

type reloads struct {
	mu      sync.Mutex
	configs []*config.AppConfig
}

func (r *reloads) add(conf *config.AppConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs = append(r.configs, conf)
}

func (r *reloads) signatures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.configs))
	for _, c := range r.configs {
		out = append(out, c.Dashboard.Signature)
	}
	return out
}

func (r *reloads) ginModes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.configs))
	for _, c := range r.configs {
		out = append(out, c.Gin.Mode)
	}
	return out
}

func (r *reloads) sawSignature(signature string) func() bool {
	return func() bool {
		for _, s := range r.signatures() {
			if s == signature {
				return true
			}
		}
		return false
	}
}

func TestWatch_ReloadsDashboard(t *testing.T) {
	path := writeConfig(t, minimal)
	_, err := config.Load(path)
	require.NoError(t, err)

	got := &reloads{}
	config.Watch(got.add)

	replaceConfig(t, path, minimal+"dashboard:\n  signature: Prof. Cida\n  encouragement_threshold: 55\n")

	require.Eventually(t, got.sawSignature("Prof. Cida"), 5*time.Second, 20*time.Millisecond)

	got.mu.Lock()
	last := got.configs[len(got.configs)-1]
	got.mu.Unlock()
	assert.Equal(t, 55.0, last.Dashboard.EncouragementThreshold)
}

func TestWatch_IgnoresInvalidEdits(t *testing.T) {
	path := writeConfig(t, minimal)
	_, err := config.Load(path)
	require.NoError(t, err)

	got := &reloads{}
	config.Watch(got.add)

	invalid := strings.Replace(minimal, "mode: test", "mode: bogus", 1) + "dashboard:\n  signature: Never\n"
	replaceConfig(t, path, invalid)

	// A later valid edit proves the watcher handled the invalid one first.
	replaceConfig(t, path, minimal+"dashboard:\n  signature: Prof. Cida\n")
	require.Eventually(t, got.sawSignature("Prof. Cida"), 5*time.Second, 20*time.Millisecond)

	assert.NotContains(t, got.signatures(), "Never")
	assert.NotContains(t, got.ginModes(), "bogus")
}
