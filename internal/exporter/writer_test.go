package exporter

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/emmanuelprah/Tidytuesday/internal/config"
	ierrors "github.com/emmanuelprah/Tidytuesday/internal/errors"
	"github.com/emmanuelprah/Tidytuesday/internal/grants"
)

func testWriter(t *testing.T) (*Writer, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(config.PathsConfig{
		CacheDir:  filepath.Join(t.TempDir(), "cache"),
		OutputDir: filepath.Join(t.TempDir(), "outputs"),
	})
	return NewWriter(paths, nil), paths
}

func testTotals() []grants.InstitutionTotal {
	return []grants.InstitutionTotal{
		{ResearchBody: "Trinity College Dublin", TotalFunding: 500_000_000},
		{ResearchBody: "University College Cork", TotalFunding: 300_000_000.5},
	}
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 48, 24))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	return img
}

func TestWriteChartPNG(t *testing.T) {
	writer, paths := testWriter(t)

	path, err := writer.WriteChartPNG(testImage(), "2026-02-24")
	require.NoError(t, err)
	assert.Equal(t, paths.ChartFile("2026-02-24"), path)
	assert.True(t, strings.HasSuffix(path, "20260224.png"))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	decoded, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 48, decoded.Bounds().Dx())
	assert.Equal(t, 24, decoded.Bounds().Dy())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, color.RGBAModel.Convert(decoded.At(0, 0)))
}

func TestWriteChartPNGUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the output directory should be
	blocker := filepath.Join(dir, "outputs")
	require.NoError(t, os.WriteFile(blocker, []byte("in the way"), 0644))

	paths := config.NewPaths(config.PathsConfig{CacheDir: dir, OutputDir: blocker})
	writer := NewWriter(paths, nil)

	_, err := writer.WriteChartPNG(testImage(), "2026-02-24")
	require.Error(t, err)
	assert.True(t, ierrors.IsWriteError(err))
}

func TestWriteTopInstitutionsCSV(t *testing.T) {
	writer, _ := testWriter(t)

	path, err := writer.WriteTopInstitutionsCSV(testTotals(), "2026-02-24")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// UTF-8 BOM for Excel compatibility
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))
	assert.Contains(t, string(data), "ResearchBody,TotalFunding")
	assert.Contains(t, string(data), "Trinity College Dublin,500000000")
	assert.Contains(t, string(data), "University College Cork,300000000.5")
}

func TestWriteTopInstitutionsXLSX(t *testing.T) {
	writer, _ := testWriter(t)

	path, err := writer.WriteTopInstitutionsXLSX(testTotals(), "2026-02-24")
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Top Institutions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ResearchBody", "TotalFunding"}, rows[0])
	assert.Equal(t, "Trinity College Dublin", rows[1][0])
}

func TestWriteTopInstitutionsCSVUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "outputs")
	require.NoError(t, os.WriteFile(blocker, []byte("in the way"), 0644))

	paths := config.NewPaths(config.PathsConfig{CacheDir: dir, OutputDir: blocker})
	writer := NewWriter(paths, nil)

	_, err := writer.WriteTopInstitutionsCSV(testTotals(), "2026-02-24")
	require.Error(t, err)
	assert.True(t, ierrors.IsWriteError(err))
}

func TestFormatFunding(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{500_000_000, "500000000"},
		{624999.5, "624999.5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatFunding(tt.input))
	}
}
