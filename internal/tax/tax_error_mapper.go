package tax

import (
	"errors"
	"strings"

	taxerrors "go-payroll/internal/tax/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueDeclarationConstraint = "uq_tax_declaration_employee_year"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taxerrors.ErrDeclarationNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniqueDeclarationConstraint {
			return taxerrors.ErrDeclarationExists
		}
		return err
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") && strings.Contains(msg, uniqueDeclarationConstraint) {
		return taxerrors.ErrDeclarationExists
	}
	return err
}
