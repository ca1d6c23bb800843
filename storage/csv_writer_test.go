package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner/models"
	"trip-planner/utils"
)

func testListings() []*models.Listing {
	return []*models.Listing{
		{Title: "Marina loft", Subtitle: "Sea view, 2 beds", Price: "$1,500 for 5 nights", Area: "Dubai Marina",
			Location: "Dubai", Rating: "4.91", Reviews: "120", CheckIn: "2025-06-01", CheckOut: "2025-06-06",
			Nights: 5, URL: "https://www.airbnb.com/rooms/1"},
		{Title: "Creek room", Subtitle: models.Unknown, Price: models.Unknown, Area: models.Unknown,
			Location: "Dubai", Rating: models.Unknown, Reviews: models.Unknown, CheckIn: "2025-06-01",
			CheckOut: "2025-06-06", Nights: 5, URL: models.Unknown},
	}
}

func TestWriteListingsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteListingsCSV(&buf, testListings()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, listingHeader, rows[0])
	assert.Equal(t, "Sea view, 2 beds", rows[1][1])
	assert.Equal(t, "$1,500 for 5 nights", rows[1][2])
	assert.Equal(t, "5", rows[1][9])
	assert.Equal(t, models.Unknown, rows[2][2])
}

func TestCSVWriter_SaveListings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "listings.csv")
	w := NewCSVWriter(path, utils.NopLogger())

	var sink ListingSink = w
	require.NoError(t, sink.SaveListings(testListings()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Marina loft")
}

func TestCSVWriter_EmptyListings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, NewCSVWriter(path, utils.NopLogger()).SaveListings(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteAndClose_ReportsCloseError(t *testing.T) {
	out := &failingCloser{closeErr: errors.New("disk quota exceeded")}

	err := writeAndClose(out, testListings())
	assert.ErrorContains(t, err, "disk quota exceeded")
	assert.True(t, out.closed)
	assert.Contains(t, out.String(), "Marina loft")
}

func TestWriteAndClose_Success(t *testing.T) {
	out := &failingCloser{}
	require.NoError(t, writeAndClose(out, testListings()))
	assert.True(t, out.closed)
}
