package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
)

// classifyConn recognises connection failures that look the same for every driver
func classifyConn(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		return ErrUnavailable
	case errors.As(err, &netErr):
		return ErrUnavailable
	case strings.Contains(err.Error(), "sql: database is closed"):
		return ErrUnavailable
	}
	return nil
}
