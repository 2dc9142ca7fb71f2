package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidPayrollID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period, expected month 1-12 and a four digit year",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll status filter",
		http.StatusBadRequest,
	)
	ErrInvalidMoneyValue = apperror.New(
		apperror.CodeInvalidInput,
		"salary component values cannot be negative",
		http.StatusBadRequest,
	)
	ErrNegativeComputedNet = apperror.New(
		apperror.CodeInvalidInput,
		"computed net salary is negative",
		http.StatusBadRequest,
	)
	ErrInvalidAdjustmentType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid adjustment type",
		http.StatusBadRequest,
	)
	ErrInvalidAdjustmentAmount = apperror.New(
		apperror.CodeInvalidInput,
		"adjustment amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrPayrollAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"payroll already exists for this employee and period",
		http.StatusConflict,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidState,
		"operation not allowed in current payroll status",
		http.StatusConflict,
	)
	ErrConcurrentAdjustment = apperror.New(
		apperror.CodeConflict,
		"payroll was adjusted by another request, reload and retry",
		http.StatusConflict,
	)
	ErrNegativeNetSalary = apperror.New(
		apperror.CodeNegativeNetSalary,
		"adjustment would make net salary negative",
		http.StatusUnprocessableEntity,
	)
	ErrNoActiveEmployees = apperror.New(
		apperror.CodeNothingToProcess,
		"no active employees to process",
		http.StatusUnprocessableEntity,
	)
	ErrPeriodAlreadyProcessed = apperror.New(
		apperror.CodeNothingToProcess,
		"all active employees already have payroll for this period",
		http.StatusUnprocessableEntity,
	)
	ErrNoApprovedPayrolls = apperror.New(
		apperror.CodeNothingToProcess,
		"no approved payrolls for this period",
		http.StatusUnprocessableEntity,
	)
	ErrPayslipGeneration = apperror.New(
		apperror.CodeArtifactGenerationFailed,
		"failed to generate payslip",
		http.StatusBadGateway,
	)
	ErrPayslipStorage = apperror.New(
		apperror.CodeArtifactStorageFailed,
		"failed to store payslip",
		http.StatusBadGateway,
	)
	ErrPayslipNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"payslip is not generated yet",
		http.StatusNotFound,
	)
	ErrNotificationAlreadySent = apperror.New(
		apperror.CodeInvalidState,
		"payment notification was already sent",
		http.StatusConflict,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
)
