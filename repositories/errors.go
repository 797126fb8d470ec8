package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/kwesi-koranteng/cityhub-backend/apperrors"
)

const pgUniqueViolation = "23505"

// classify maps storage errors into the apperrors taxonomy. Raw driver error
// text stays wrapped as the cause and never becomes the response message.
func classify(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFoundMsg)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.Unavailable(err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.Conflict("duplicate value for unique field")
	}
	return apperrors.Internal(err)
}
