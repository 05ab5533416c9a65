package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

func TestParquetSink_WriteAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.parquet")
	p := NewParquetSink(path)
	batch := sampleBatch(t)
	if err := p.Write(batch); err != nil {
		t.Fatalf("write: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("parquet file is empty")
	}

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}
	defer fr.Close()
	pr, err := reader.NewParquetReader(fr, new(parquetOrder), 4)
	if err != nil {
		t.Fatalf("parquet reader: %v", err)
	}
	defer pr.ReadStop()
	if got := int(pr.GetNumRows()); got != len(batch) {
		t.Fatalf("rows: got=%d want=%d", got, len(batch))
	}
	out := make([]parquetOrder, len(batch))
	if err := pr.Read(&out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out[0].OrderID != "o1" || out[0].TotalValue != 19.98 || out[0].OrderMonth != "2023-01" {
		t.Fatalf("unexpected first record: %+v", out[0])
	}
}
