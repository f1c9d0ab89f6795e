package trace

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/supraxlab/tage/internal/tage"
)

func TestReader_ParsesPlainCSV(t *testing.T) {
	input := "0x1000,0x1010,true,cond\n0x2000,0,false,ret\n"
	r := NewReader(strings.NewReader(input))

	rec, err := r.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if rec.PC != 0x1000 || rec.Target != 0x1010 || !rec.Taken || rec.Kind != tage.BranchKindConditional {
		t.Errorf("record = %+v, unexpected", rec)
	}

	rec, err = r.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if rec.Kind != tage.BranchKindReturn {
		t.Errorf("kind = %v, want BranchKindReturn", rec.Kind)
	}

	if _, err := r.Read(); err != io.EOF {
		t.Errorf("final Read() error = %v, want io.EOF", err)
	}
}

func TestReader_ReadAllCollectsEveryRecord(t *testing.T) {
	input := "1,2,1,cond\n3,4,0,call\n5,6,1,indirect\n"
	r := NewReader(strings.NewReader(input))

	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
}

func TestReader_RejectsUnknownKind(t *testing.T) {
	r := NewReader(strings.NewReader("1,2,true,mystery\n"))
	if _, err := r.Read(); err == nil {
		t.Errorf("Read() succeeded on an unknown branch kind, want error")
	}
}

func TestGzipReader_DecompressesTransparently(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte("0x10,0x20,true,cond\n")); err != nil {
		t.Fatalf("writing gzip fixture: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}

	r, err := NewGzipReader(&buf)
	if err != nil {
		t.Fatalf("NewGzipReader() error = %v", err)
	}
	defer r.Close()

	rec, err := r.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if rec.PC != 0x10 {
		t.Errorf("PC = %#x, want 0x10", rec.PC)
	}
}
