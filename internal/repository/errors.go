package repository

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/proctorly/exam-engine/internal/apperror"
	"gorm.io/gorm"
)

// wrap classifies a storage error at the persistence boundary. Record misses
// become the caller-supplied NotFound, connectivity and contention failures
// become Transient, everything else Internal. Upstream code never inspects
// driver errors directly.
func wrap(err error, notFound *apperror.Error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if notFound != nil {
			return notFound
		}
		return apperror.NotFound("NOT_FOUND", "record not found")
	}
	if isTransient(err) {
		return apperror.Transient("STORAGE_UNAVAILABLE", "storage temporarily unavailable", err)
	}
	return apperror.Internal("storage error", err)
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03", // lock_not_available
			"57P01": // admin_shutdown
			return true
		}
		// class 08 = connection exception, class 53 = insufficient resources
		if strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "53") {
			return true
		}
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	return false
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
