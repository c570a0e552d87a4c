package postgres

import (
	"errors"
	"net"

	pq "github.com/lib/pq"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
)

// Dialect classifies lib/pq errors by SQLSTATE.
type Dialect struct{}

func (Dialect) Name() string { return "postgres" }

func (Dialect) Classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		// 23xxx: integrity constraint violation
		case pqErr.Code.Class() == "23":
			return apperrors.Violation(err)
		// 08xxx: connection exception; 57P01-57P03: server shutting down or not accepting connections
		case pqErr.Code.Class() == "08",
			pqErr.Code == "57P01", pqErr.Code == "57P02", pqErr.Code == "57P03":
			return apperrors.Unavailable(err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperrors.Unavailable(err)
	}
	return err
}
