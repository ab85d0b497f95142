package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanuelprah/Tidytuesday/internal/config"
	ierrors "github.com/emmanuelprah/Tidytuesday/internal/errors"
)

const sampleCSV = `start_date,end_date,proposal_id,programme_name,sub_programme,supplement,research_body,research_body_ror_id,funder_name,crossref_funder_registry_id,proposal_title,current_total_commitment
2020-01-01,2024-12-31,20/FFP-P/8701,Frontiers,,,Trinity College Dublin,https://ror.org/02tyrky19,SFI,501100001602,A title,624999
2021-06-01,2025-05-31,21/PATH-S/9741,Pathway,,,University College Cork,https://ror.org/03265fv13,SFI,501100001602,Another title,425000
`

func testDatasetConfig(baseURL string) config.DatasetConfig {
	return config.DatasetConfig{
		Date:         "2026-02-24",
		Table:        "sfi_grants",
		BaseURL:      baseURL,
		FetchTimeout: 5 * time.Second,
	}
}

func TestLoaderLoad(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	paths := config.NewPaths(config.PathsConfig{CacheDir: t.TempDir(), OutputDir: t.TempDir()})
	loader := NewLoader(testDatasetConfig(server.URL), paths, nil)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/2026/2026-02-24/sfi_grants.csv", requestedPath)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "Trinity College Dublin", table.Cell(0, table.ColumnIndex("research_body")))

	// The download is cached next to the date/table key
	cached, err := os.ReadFile(paths.DatasetCacheFile("2026-02-24", "sfi_grants"))
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(cached))
}

func TestLoaderCacheHitSkipsNetwork(t *testing.T) {
	paths := config.NewPaths(config.PathsConfig{CacheDir: t.TempDir(), OutputDir: t.TempDir()})
	cachePath := paths.DatasetCacheFile("2026-02-24", "sfi_grants")
	require.NoError(t, os.WriteFile(cachePath, []byte(sampleCSV), 0644))

	// Unreachable base URL: the cache must satisfy the load
	loader := NewLoader(testDatasetConfig("http://127.0.0.1:1"), paths, nil)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestLoaderNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	paths := config.NewPaths(config.PathsConfig{CacheDir: t.TempDir(), OutputDir: t.TempDir()})
	loader := NewLoader(testDatasetConfig(server.URL), paths, nil)

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.True(t, ierrors.IsDataUnavailable(err))
	assert.Contains(t, err.Error(), "2026-02-24")
}

func TestLoaderUnreachable(t *testing.T) {
	paths := config.NewPaths(config.PathsConfig{CacheDir: t.TempDir(), OutputDir: t.TempDir()})
	loader := NewLoader(testDatasetConfig("http://127.0.0.1:1"), paths, nil)

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.True(t, ierrors.IsDataUnavailable(err))
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		rows    int
	}{
		{
			name:  "header and rows",
			input: "a,b\n1,2\n3,4\n",
			rows:  2,
		},
		{
			name:  "header only",
			input: "a,b\n",
			rows:  0,
		},
		{
			name:  "utf-8 bom stripped",
			input: "\xEF\xBB\xBFa,b\n1,2\n",
			rows:  1,
		},
		{
			name:  "ragged rows tolerated",
			input: "a,b,c\n1,2\n",
			rows:  1,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "malformed quoting",
			input:   "a,b\n\"unterminated,2\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := parseCSV([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierrors.IsDataUnavailable(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, table.Len())
		})
	}
}
