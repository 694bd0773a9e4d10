package epidemic

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// DataLogger is the pluggable per-tick recorder bolted onto (not into)
// the core façade (SPEC_FULL.md §6 EXPANSION): a host may, after each
// Tick, hand the current Counts() snapshot plus today's R/serial-
// interval averages to a logger. Grounded in the teacher's DataLogger
// interface (logger.go), narrowed from six record kinds to the one
// this spec actually produces.
type DataLogger interface {
	// Init prepares the backing store (creates a file, a table) before
	// the first Write call.
	Init() error
	// Write records one tick's counters.
	Write(row CountsRow) error
	// Close releases any held resource (file handle, DB connection).
	Close() error
}

// CountsRow is one tick's worth of loggable data: the run id, the
// tick, per-state census/inflow, and the two streaming averages.
type CountsRow struct {
	RunID             string
	Time              int
	Counts            map[string]Snapshot
	DailyR            float64
	DailySerialInterv float64
}

// CSVLogger is a DataLogger that writes one comma-delimited file, one
// row per state per tick, modeled on csv_logger.go's
// newFile/header-then-append shape.
type CSVLogger struct {
	path string
	f    *os.File
}

// NewCSVLogger creates a CSVLogger writing to path.
func NewCSVLogger(path string) *CSVLogger {
	return &CSVLogger{path: path}
}

// Init creates the file and writes its header row.
func (l *CSVLogger) Init() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	l.f = f
	_, err = f.WriteString("run_id,time,state,abs,day,daily_r,daily_serial_interval\n")
	return err
}

// Write appends one row per state for this tick.
func (l *CSVLogger) Write(row CountsRow) error {
	var b bytes.Buffer
	for k := 0; k < numKinds; k++ {
		name := Kind(k).String()
		snap := row.Counts[name]
		fmt.Fprintf(&b, "%s,%d,%s,%d,%d,%f,%f\n",
			row.RunID, row.Time, name, snap.Abs, snap.Day, row.DailyR, row.DailySerialInterv)
	}
	_, err := l.f.Write(b.Bytes())
	return err
}

// Close flushes and closes the file.
func (l *CSVLogger) Close() error {
	if l.f == nil {
		return nil
	}
	if err := l.f.Sync(); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}

// tableName sanitizes a run id into a valid SQLite identifier suffix,
// following sqlite_logger.go's per-instance table naming
// (`fmt.Sprintf("%s%03d", tableName, l.instanceID)`), generalized from
// a zero-padded integer instance number to an opaque run id.
func tableName(runID string) string {
	return "counts_" + strings.ReplaceAll(runID, "-", "_")
}
