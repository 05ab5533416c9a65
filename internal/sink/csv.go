package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"orderetl/internal/model"
	"orderetl/internal/schema"
)

// CSVSink writes the batch to a backup CSV file in schema column order.
type CSVSink struct {
	path string
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

func (c *CSVSink) Name() string { return "csv" }

func (c *CSVSink) Write(rows []model.Processed) error {
	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(schema.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(schema.Row(r)); err != nil {
			return fmt.Errorf("write row %s: %w", r.OrderID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Verify re-reads the backup file, checks the header and returns the
// data row count.
func (c *CSVSink) Verify() (int, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return 0, fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(schema.Columns) {
		return 0, fmt.Errorf("backup has %d columns, want %d", len(header), len(schema.Columns))
	}
	for i, col := range schema.Columns {
		if header[i] != col {
			return 0, fmt.Errorf("backup column %d is %q, want %q", i, header[i], col)
		}
	}
	n := 0
	for {
		_, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read row: %w", err)
		}
		n++
	}
	return n, nil
}
