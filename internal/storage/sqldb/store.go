// Package sqldb holds the SQL shared by the SQLite and PostgreSQL stores.
// Queries are written with ? placeholders and rebound for the driver.
package sqldb

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/metrics"
)

// Dialect maps driver errors onto the store error taxonomy.
type Dialect interface {
	Name() string
	// Classify returns err wrapped in ErrConstraintViolation or
	// ErrStoreUnavailable when the driver says so, and err unchanged otherwise.
	Classify(err error) error
}

// Option configures a Store
type Option func(*Store)

// WithRecorder sets where operation metrics are sent
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.recorder = r
		}
	}
}

type Store struct {
	db       *sqlx.DB
	dialect  Dialect
	recorder metrics.Recorder
}

func New(db *sqlx.DB, dialect Dialect, opts ...Option) *Store {
	s := &Store{
		db:       db,
		dialect:  dialect,
		recorder: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB exposes the underlying handle for migrations and maintenance
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Ping() (err error) {
	defer s.observe("ping", time.Now(), &err)
	return s.db.Ping()
}

// observe classifies *errp and records the operation. Use as
// `defer s.observe(op, time.Now(), &err)` with a named error result.
func (s *Store) observe(op string, start time.Time, errp *error) {
	*errp = s.classify(*errp)
	s.recorder.ObserveQuery(op, time.Since(start), *errp)
	if *errp != nil {
		logger.Debug("store operation failed", "op", op, "dialect", s.dialect.Name(), "error", *errp)
	}
}

func (s *Store) classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperrors.ErrConstraintViolation),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrStoreUnavailable):
		return err
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, driver.ErrBadConn):
		return apperrors.Unavailable(err)
	}
	return s.dialect.Classify(err)
}

// withTx runs fn in a transaction that is rolled back unless fn succeeds
func (s *Store) withTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// one maps sql.ErrNoRows on a single-row lookup to a NotFound error
func one(err error, kind string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(kind, id)
	}
	return err
}

// affected turns a zero-row mutation into a NotFound error
func affected(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound(kind, id)
	}
	return nil
}
