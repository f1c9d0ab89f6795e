// ═══════════════════════════════════════════════════════════════════════════
// Trace Reader
// ═══════════════════════════════════════════════════════════════════════════
//
// WHAT: reads a branch trace — one record per dynamic branch — as CSV,
//       optionally gzip-compressed, in the calling convention the core
//       predictor's Update documents: (PC, target, taken, kind).
// HOW:  encoding/csv over an optional klauspost/compress/gzip stream;
//       errors are wrapped with pkg/errors so a malformed line reports
//       which record and field failed.
//
// ═══════════════════════════════════════════════════════════════════════════

package trace

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/supraxlab/tage/internal/hostsim"
	"github.com/supraxlab/tage/internal/tage"
)

// Record is an alias of hostsim.BranchRecord, so parsed records can be
// passed straight to Simulator.Replay.
type Record = hostsim.BranchRecord

// kindNames maps the trace's textual branch-kind column to tage.BranchKind.
var kindNames = map[string]tage.BranchKind{
	"cond":     tage.BranchKindConditional,
	"call":     tage.BranchKindCall,
	"ret":      tage.BranchKindReturn,
	"indirect": tage.BranchKindIndirect,
}

// Reader streams Records from a CSV trace, columns: pc,target,taken,kind.
// taken is "1"/"0" or "true"/"false"; kind is one of kindNames' keys.
type Reader struct {
	csv *csv.Reader
	gz  *gzip.Reader
	row int
}

// NewReader wraps r as a plain CSV trace.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.ReuseRecord = true
	return &Reader{csv: cr}
}

// NewGzipReader wraps r, transparently decompressing a gzip-CSV trace.
func NewGzipReader(r io.Reader) (*Reader, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "trace: opening gzip stream")
	}
	rd := NewReader(gz)
	rd.gz = gz
	return rd, nil
}

// Close releases the underlying gzip stream, if any.
func (r *Reader) Close() error {
	if r.gz == nil {
		return nil
	}
	return r.gz.Close()
}

// ReadAll consumes the remainder of the trace into a slice.
func (r *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Read parses the next trace line into a Record.
func (r *Reader) Read() (Record, error) {
	r.row++
	fields, err := r.csv.Read()
	if err == io.EOF {
		return Record{}, io.EOF
	}
	if err != nil {
		return Record{}, errors.Wrapf(err, "trace: reading row %d", r.row)
	}

	pc, err := strconv.ParseUint(fields[0], 0, 64)
	if err != nil {
		return Record{}, errors.Wrapf(err, "trace: row %d: parsing pc %q", r.row, fields[0])
	}
	target, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return Record{}, errors.Wrapf(err, "trace: row %d: parsing target %q", r.row, fields[1])
	}
	taken, err := strconv.ParseBool(fields[2])
	if err != nil {
		return Record{}, errors.Wrapf(err, "trace: row %d: parsing taken %q", r.row, fields[2])
	}
	kind, known := kindNames[fields[3]]
	if !known {
		return Record{}, errors.Errorf("trace: row %d: unknown branch kind %q", r.row, fields[3])
	}

	return Record{PC: pc, Target: target, Taken: taken, Kind: kind}, nil
}
