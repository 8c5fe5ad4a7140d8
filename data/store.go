package data

import (
	"context"
	"database/sql"
	"fmt"
	"math/cmplx"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	tableTargets = "targets"
)

// Target is a training target amplitude for the basis state numbered K.
type Target struct {
	K int
	V complex64
}

// Store holds training targets keyed by state number, backed by a sqlite file.
type Store struct {
	Path string

	db *sql.DB
}

// NewStore creates an empty store at dbPath, dropping any previous contents.
func NewStore(dbPath string) (*Store, error) {
	s := &Store{Path: dbPath}
	var err error
	s.db, err = sql.Open("sqlite3", fmt.Sprintf("file:%s", dbPath))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	if err := prepareDB(s.db); err != nil {
		s.db.Close()
		return nil, errors.Wrap(err, "")
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put sets the target of state k.
// A zero value deletes the row, so absent states read back as zero.
func (s *Store) Put(k int, v complex64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	sqlStr := fmt.Sprintf(`INSERT OR REPLACE INTO %s (k, re, im) VALUES (?, ?, ?)`, tableTargets)
	args := []any{k, real(v), imag(v)}
	if v == 0 {
		sqlStr = fmt.Sprintf(`DELETE FROM %s WHERE k=?`, tableTargets)
		args = []any{k}
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return errors.Wrap(err, fmt.Sprintf("%s %#v", sqlStr, args))
	}
	return nil
}

// At returns the target of state k, or zero if none is set.
func (s *Store) At(k int) (complex64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	sqlStr := fmt.Sprintf(`SELECT re, im FROM %s WHERE k=?`, tableTargets)
	var re, im float32
	err := s.db.QueryRowContext(ctx, sqlStr, k).Scan(&re, &im)
	switch {
	case err == sql.ErrNoRows:
		return 0, nil
	case err != nil:
		return complex64(cmplx.NaN()), errors.Wrap(err, "")
	default:
		return complex(re, im), nil
	}
}

// All returns every target ordered by state number.
func (s *Store) All() ([]Target, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	sqlStr := fmt.Sprintf(`SELECT k, re, im FROM %s ORDER BY k`, tableTargets)
	rows, err := s.db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rows.Close()

	targets := make([]Target, 0)
	for rows.Next() {
		var k int
		var re, im float32
		if err := rows.Scan(&k, &re, &im); err != nil {
			return nil, errors.Wrap(err, "")
		}
		targets = append(targets, Target{K: k, V: complex(re, im)})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}

	return targets, nil
}

// Len returns the number of non-zero targets.
func (s *Store) Len() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	sqlStr := fmt.Sprintf("SELECT count(1) FROM %s", tableTargets)
	var n int
	if err := s.db.QueryRowContext(ctx, sqlStr).Scan(&n); err != nil {
		return -1, errors.Wrap(err, "")
	}
	return n, nil
}

func prepareDB(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tableTargets)
	if _, err := db.ExecContext(ctx, sqlStr); err != nil {
		return errors.Wrap(err, "")
	}
	sqlStr = fmt.Sprintf(`CREATE TABLE %s (k INTEGER PRIMARY KEY, re REAL, im REAL) STRICT`, tableTargets)
	if _, err := db.ExecContext(ctx, sqlStr); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}
