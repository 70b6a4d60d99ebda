package errx

import (
	"context"
	"errors"
	"net/http"

	"github.com/lib/pq"
)

// WrapPostgres maps database/sql and lib/pq errors to the unified Error type.
func WrapPostgres(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return New(err, http.StatusGatewayTimeout, PostgresErrorMessage)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// class 08: connection exception, 53: insufficient resources
		switch pqErr.Code.Class() {
		case "08", "53":
			return New(err, http.StatusServiceUnavailable, PostgresErrorMessage)
		}
	}

	return New(err, http.StatusBadGateway, PostgresErrorMessage)
}
