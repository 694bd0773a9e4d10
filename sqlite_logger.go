package epidemic

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteLogger is a DataLogger that writes one table per run, modeled
// on sqlite_logger.go's OpenSQLiteDB + prepared-statement insert loop.
// Unlike the teacher's per-record-kind tables, this spec only ever
// logs one kind of row (counts), so one table suffices.
type SQLiteLogger struct {
	path  string
	runID string
	db    *sql.DB
	stmt  *sql.Stmt
}

// NewSQLiteLogger creates a SQLiteLogger writing to the database at
// path, recording into a table named after runID.
func NewSQLiteLogger(path, runID string) *SQLiteLogger {
	return &SQLiteLogger{path: path, runID: runID}
}

// Init opens (creating if necessary) the database and creates this
// run's table, following the teacher's create-table-per-instance
// pattern (sqlite_logger.go's newTable).
func (l *SQLiteLogger) Init() error {
	db, err := openSQLiteDBOptimized(l.path)
	if err != nil {
		return err
	}
	l.db = db

	table := tableName(l.runID)
	schema := fmt.Sprintf(
		"create table if not exists %s (id integer not null primary key, time int, state text, abs int, day int, daily_r real, daily_serial_interval real)",
		table,
	)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("%q: %s", err, schema)
	}

	insert := fmt.Sprintf(
		"insert into %s(time, state, abs, day, daily_r, daily_serial_interval) values (?, ?, ?, ?, ?, ?)",
		table,
	)
	stmt, err := db.Prepare(insert)
	if err != nil {
		db.Close()
		return err
	}
	l.stmt = stmt
	return nil
}

// Write inserts one row per state for this tick inside a single
// transaction, following the teacher's batched-insert shape.
func (l *SQLiteLogger) Write(row CountsRow) error {
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	stmt := tx.Stmt(l.stmt)
	for k := 0; k < numKinds; k++ {
		name := Kind(k).String()
		snap := row.Counts[name]
		if _, err := stmt.Exec(row.Time, name, snap.Abs, snap.Day, row.DailyR, row.DailySerialInterv); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Close releases the prepared statement and database handle.
func (l *SQLiteLogger) Close() error {
	if l.stmt != nil {
		l.stmt.Close()
	}
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// openSQLiteDBOptimized opens path with the pragmas the teacher sets
// for write-heavy simulation logging (sqlite_logger.go's
// OpenSQLiteDBOptimized): WAL journaling and relaxed synchronous mode,
// acceptable here since counter rows are reproducible from a reseeded
// rerun if the process crashes mid-write.
func openSQLiteDBOptimized(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
