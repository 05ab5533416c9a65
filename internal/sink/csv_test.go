package sink

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"orderetl/internal/schema"
)

func TestCSVSink_WriteAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.csv")
	c := NewCSVSink(path)
	batch := sampleBatch(t)
	if err := c.Write(batch); err != nil {
		t.Fatalf("write: %v", err)
	}
	n, err := c.Verify()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if n != len(batch) {
		t.Fatalf("verified rows: got=%d want=%d", n, len(batch))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(recs) != len(batch)+1 {
		t.Fatalf("records: got=%d want=%d", len(recs), len(batch)+1)
	}
	for i, col := range schema.Columns {
		if recs[0][i] != col {
			t.Fatalf("header %d: got=%s want=%s", i, recs[0][i], col)
		}
	}
	if recs[1][0] != "o1" || recs[1][7] != "19.98" {
		t.Fatalf("unexpected first data row: %v", recs[1])
	}
}

func TestCSVSink_VerifyMissingFile(t *testing.T) {
	c := NewCSVSink(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := c.Verify(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCSVSink_EmptyBatchWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.csv")
	c := NewCSVSink(path)
	if err := c.Write(nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	n, err := c.Verify()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if n != 0 {
		t.Fatalf("empty batch should verify 0 rows, got %d", n)
	}
}
