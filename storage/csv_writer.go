package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"trip-planner/models"
	"trip-planner/utils"
)

var listingHeader = []string{
	"title", "subtitle", "price", "area", "location",
	"rating", "reviews", "check_in", "check_out", "nights", "url",
}

// CSVWriter exports listings to a CSV file
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// SaveListings writes listings to the configured path, creating its directory
func (w *CSVWriter) SaveListings(listings []*models.Listing) error {
	if dir := filepath.Dir(w.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := writeAndClose(file, listings); err != nil {
		return err
	}
	w.logger.Info("listings written", "path", w.filePath, "rows", len(listings))
	return nil
}

// writeAndClose writes the CSV and returns the close error too
func writeAndClose(out io.WriteCloser, listings []*models.Listing) error {
	if err := WriteListingsCSV(out, listings); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}
	return nil
}

// WriteListingsCSV writes a header row followed by one row per listing
func WriteListingsCSV(out io.Writer, listings []*models.Listing) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(listingHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, l := range listings {
		row := []string{
			l.Title,
			l.Subtitle,
			l.Price,
			l.Area,
			l.Location,
			l.Rating,
			l.Reviews,
			l.CheckIn,
			l.CheckOut,
			strconv.Itoa(l.Nights),
			l.URL,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %q: %w", l.Title, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
