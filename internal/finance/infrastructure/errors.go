package infrastructure

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkoziol/ReceiptLedger/internal/finance/domain"
)

const uniqueViolationCode = "23505"

// translateError maps PostgreSQL unique violations onto domain.ErrDuplicate
// so services can decide between AlreadyExists and a plain failure.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domain.ErrDuplicate
	}
	return err
}
