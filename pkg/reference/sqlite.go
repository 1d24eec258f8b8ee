package reference

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const createVar2Ref = `CREATE TABLE IF NOT EXISTS var2ref (
	variant TEXT PRIMARY KEY,
	ref     TEXT NOT NULL
)`

var errNoVar2RefTable = errors.New("no var2ref table in database")

// SQLiteLookup looks variants up by name in the var2ref table of a SQLite
// database, one point query per variant
type SQLiteLookup struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// OpenSQLite opens an existing var2ref database
func OpenSQLite(path string) (*SQLiteLookup, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	var n int
	err = db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'var2ref'`).Scan(&n)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if n == 0 {
		db.Close()
		return nil, fmt.Errorf("%s: %w", path, errNoVar2RefTable)
	}
	stmt, err := db.Prepare(`SELECT ref FROM var2ref WHERE variant = ?`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare var2ref query: %w", err)
	}
	return &SQLiteLookup{db: db, stmt: stmt}, nil
}

// RefAllele looks the variant up by name
func (l *SQLiteLookup) RefAllele(q Query) (byte, error) {
	var ref string
	err := l.stmt.QueryRow(q.Name).Scan(&ref)
	if errors.Is(err, sql.ErrNoRows) {
		return Unknown, nil
	}
	if err != nil {
		return Unknown, fmt.Errorf("var2ref query %s: %w", q.Name, err)
	}
	return normalise(ref), nil
}

func (l *SQLiteLookup) Close() error {
	l.stmt.Close()
	return l.db.Close()
}

// ImportTable writes a var2ref table into a SQLite database, creating the
// database and table if needed. Existing variants are overwritten.
func ImportTable(path string, t *TableLookup) (int, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(createVar2Ref); err != nil {
		return 0, fmt.Errorf("create var2ref table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO var2ref (variant, ref) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	err = t.Each(func(variant string, ref byte) error {
		if _, err := stmt.Exec(variant, string(ref)); err != nil {
			return fmt.Errorf("insert %s: %w", variant, err)
		}
		n++
		return nil
	})
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}
