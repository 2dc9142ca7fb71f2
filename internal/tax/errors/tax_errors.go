package taxerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"income and declared amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDeclarationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid declaration id",
		http.StatusBadRequest,
	)
	ErrInvalidFinancialYear = apperror.New(
		apperror.CodeInvalidInput,
		"financial_year must look like 2024-25",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status must be DRAFT, SUBMITTED, VERIFIED or REJECTED",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required",
		http.StatusBadRequest,
	)
	ErrDeclarationNotFound = apperror.New(
		apperror.CodeNotFound,
		"tax declaration not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrDeclarationExists = apperror.New(
		apperror.CodeConflict,
		"a declaration already exists for this financial year",
		http.StatusConflict,
	)
	ErrDeclarationLocked = apperror.New(
		apperror.CodeInvalidState,
		"only draft or rejected declarations can be edited",
		http.StatusConflict,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidState,
		"declaration is not in a state that allows this action",
		http.StatusConflict,
	)
)
