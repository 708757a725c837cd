// Package report writes batch solve results as Parquet files.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/pdrpinto/bestfirst/internal/driver"
)

// Schema is stored in the file metadata under the "schema" key.
const Schema = "solve_report_v1"

// Row is one solved (or failed) puzzle file.
//
// Error is set when the file could not be read or parsed; the search fields
// are zero in that case.
type Row struct {
	Path        string   `parquet:"path"`
	Domain      string   `parquet:"domain,dict"`
	Found       bool     `parquet:"found"`
	Length      int32    `parquet:"length"`
	Actions     []string `parquet:"actions"`
	Expanded    int64    `parquet:"expanded"`
	Generated   int64    `parquet:"generated"`
	Duplicates  int64    `parquet:"duplicates"`
	Visited     int64    `parquet:"visited"`
	MaxFrontier int64    `parquet:"max_frontier"`
	ParseNanos  int64    `parquet:"parse_nanos"`
	SolveNanos  int64    `parquet:"solve_nanos"`
	Cached      bool     `parquet:"cached"`
	Error       string   `parquet:"error,optional"`
}

// NewRow builds a row from a solution and its timings.
func NewRow(path, domain string, solution driver.Solution, parse, solve time.Duration, cached bool) Row {
	return Row{
		Path:        path,
		Domain:      domain,
		Found:       solution.Found,
		Length:      int32(len(solution.Actions)),
		Actions:     solution.Actions,
		Expanded:    int64(solution.Stats.Expanded),
		Generated:   int64(solution.Stats.Generated),
		Duplicates:  int64(solution.Stats.Duplicates),
		Visited:     int64(solution.Stats.Visited),
		MaxFrontier: int64(solution.Stats.MaxFrontier),
		ParseNanos:  parse.Nanoseconds(),
		SolveNanos:  solve.Nanoseconds(),
		Cached:      cached,
	}
}

// Write stores rows at outPath through a temporary file and a rename.
func Write(outPath string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", Schema),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// Read loads every row of a report written by Write.
func Read(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	if schema, _ := pf.Lookup("schema"); schema != Schema {
		return nil, fmt.Errorf("%s: unexpected schema %q", path, schema)
	}

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	rows := make([]Row, reader.NumRows())
	read := 0
	for read < len(rows) {
		n, err := reader.Read(rows[read:])
		read += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
	}
	return rows[:read], nil
}
