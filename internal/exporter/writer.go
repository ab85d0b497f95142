// Package exporter writes the run's outputs: the rendered chart PNG and the
// aggregated institution totals as CSV and Excel reports.
package exporter

import (
	"encoding/csv"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/emmanuelprah/Tidytuesday/internal/config"
	"github.com/emmanuelprah/Tidytuesday/internal/errors"
	"github.com/emmanuelprah/Tidytuesday/internal/grants"
)

// reportHeaders is the column header row shared by the CSV and Excel reports
var reportHeaders = []string{"ResearchBody", "TotalFunding"}

// Writer exports run outputs to the configured output directory
type Writer struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewWriter creates a new output writer
func NewWriter(paths *config.Paths, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{paths: paths, logger: logger}
}

// WriteChartPNG encodes the rendered chart to the output path for the given
// dataset date. It fails with a WriteError when the destination cannot be
// created or written.
func (w *Writer) WriteChartPNG(img image.Image, date string) (string, error) {
	path := w.paths.ChartFile(date)

	w.logger.Info("Writing chart image",
		slog.String("path", path),
		slog.Int("width_px", img.Bounds().Dx()),
		slog.Int("height_px", img.Bounds().Dy()))

	file, err := w.createOutputFile(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", errors.NewWriteError("encode chart PNG", err).WithContext("path", path)
	}

	return path, nil
}

// WriteTopInstitutionsCSV writes the aggregate totals as a CSV report with a
// UTF-8 BOM so Excel opens it cleanly
func (w *Writer) WriteTopInstitutionsCSV(totals []grants.InstitutionTotal, date string) (string, error) {
	path := w.paths.TopInstitutionsCSV(date)

	w.logger.Info("Writing institution totals CSV",
		slog.String("path", path),
		slog.Int("record_count", len(totals)))

	file, err := w.createOutputFile(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", errors.NewWriteError("write BOM", err).WithContext("path", path)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(reportHeaders); err != nil {
		return "", errors.NewWriteError("write CSV headers", err).WithContext("path", path)
	}
	for i, total := range totals {
		record := []string{total.ResearchBody, formatFunding(total.TotalFunding)}
		if err := writer.Write(record); err != nil {
			return "", errors.NewWriteError(fmt.Sprintf("write CSV record %d", i), err).WithContext("path", path)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", errors.NewWriteError("flush CSV", err).WithContext("path", path)
	}

	return path, nil
}

// WriteTopInstitutionsXLSX writes the aggregate totals as an Excel workbook
func (w *Writer) WriteTopInstitutionsXLSX(totals []grants.InstitutionTotal, date string) (string, error) {
	path := w.paths.TopInstitutionsXLSX(date)

	w.logger.Info("Writing institution totals workbook",
		slog.String("path", path),
		slog.Int("record_count", len(totals)))

	if err := w.ensureOutputDir(path); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Top Institutions"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for row, total := range totals {
		nameCell, _ := excelize.CoordinatesToCellName(1, row+2)
		fundingCell, _ := excelize.CoordinatesToCellName(2, row+2)
		f.SetCellValue(sheet, nameCell, total.ResearchBody)
		f.SetCellValue(sheet, fundingCell, total.TotalFunding)
	}

	if err := f.SaveAs(path); err != nil {
		return "", errors.NewWriteError("save workbook", err).WithContext("path", path)
	}

	return path, nil
}

// createOutputFile ensures the destination directory exists and creates the
// file, mapping failures to WriteError
func (w *Writer) createOutputFile(path string) (*os.File, error) {
	if err := w.ensureOutputDir(path); err != nil {
		return nil, err
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, errors.NewWriteError("create output file", err).WithContext("path", path)
	}
	return file, nil
}

func (w *Writer) ensureOutputDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewWriteError("create output directory", err).WithContext("path", path)
	}
	return nil
}

// formatFunding formats a funding total without trailing zeros
func formatFunding(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
