package tax

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/money"
	taxerrors "go-payroll/internal/tax/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=tax_service.go -destination=mock/tax_service_mock.go -package=mock
type Service interface {
	Preview(ctx context.Context, req EstimateRequest) (TaxEstimate, error)
	Create(ctx context.Context, employeeID string, req DeclarationRequest) (DeclarationResponse, error)
	Update(ctx context.Context, employeeID, id string, req DeclarationRequest) (DeclarationResponse, error)
	Submit(ctx context.Context, employeeID, id string) (DeclarationResponse, error)
	Verify(ctx context.Context, actorID, id string) (DeclarationResponse, error)
	Reject(ctx context.Context, actorID, id, reason string) (DeclarationResponse, error)
	GetByID(ctx context.Context, id string) (DeclarationResponse, error)
	GetAll(ctx context.Context, filter GetDeclarationsFilterRequest) ([]DeclarationResponse, int64, error)
	OfficialEstimate(ctx context.Context, id string) (OfficialEstimateResponse, error)
}

type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

type service struct {
	repo      Repository
	employees EmployeeFinder
	policy    Policy
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, employees EmployeeFinder, policy Policy, logger ...*zap.Logger) Service {
	l := zap.L().Named("tax.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tax.service")
	}
	return &service{repo: repo, employees: employees, policy: policy, now: time.Now, logger: l}
}

func (s *service) Preview(_ context.Context, req EstimateRequest) (TaxEstimate, error) {
	return Estimate(EstimateInput{AnnualGross: req.AnnualIncome, Declarations: req.Declarations}, s.policy)
}

func (s *service) Create(ctx context.Context, employeeID string, req DeclarationRequest) (DeclarationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return DeclarationResponse{}, taxerrors.ErrInvalidEmployeeID
	}
	if err := ValidateFinancialYear(req.FinancialYear); err != nil {
		return DeclarationResponse{}, err
	}
	total, err := s.totalDeductions(req.Declarations)
	if err != nil {
		return DeclarationResponse{}, err
	}

	d := &TaxDeclaration{
		ID:              uuid.New(),
		EmployeeID:      empID,
		FinancialYear:   req.FinancialYear,
		Declarations:    req.Declarations,
		TotalDeductions: total,
		Status:          StatusDraft,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		mapped := mapRepositoryError(err)
		if !errors.Is(mapped, taxerrors.ErrDeclarationExists) {
			log.Error("create tax declaration failed", zap.Error(err))
		}
		return DeclarationResponse{}, mapped
	}

	log.Info("tax declaration created",
		zap.String("declaration_id", d.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("financial_year", d.FinancialYear),
	)
	return mapToResponse(*d), nil
}

// Update replaces the declared amounts. A rejected declaration goes back to
// DRAFT so it can be resubmitted.
func (s *service) Update(ctx context.Context, employeeID, id string, req DeclarationRequest) (DeclarationResponse, error) {
	d, err := s.loadOwned(ctx, employeeID, id)
	if err != nil {
		return DeclarationResponse{}, err
	}
	if req.FinancialYear != d.FinancialYear {
		return DeclarationResponse{}, taxerrors.ErrInvalidFinancialYear
	}
	if !d.Editable() {
		return DeclarationResponse{}, taxerrors.ErrDeclarationLocked
	}
	total, err := s.totalDeductions(req.Declarations)
	if err != nil {
		return DeclarationResponse{}, err
	}

	d.Declarations = req.Declarations
	d.TotalDeductions = total
	if err := s.repo.UpdateEditable(ctx, d); err != nil {
		return DeclarationResponse{}, err
	}
	d.Status = StatusDraft
	d.RejectionReason = nil

	s.logger.Info("tax declaration updated", zap.String("declaration_id", id))
	return mapToResponse(*d), nil
}

func (s *service) Submit(ctx context.Context, employeeID, id string) (DeclarationResponse, error) {
	d, err := s.loadOwned(ctx, employeeID, id)
	if err != nil {
		return DeclarationResponse{}, err
	}
	if d.Status != StatusDraft {
		return DeclarationResponse{}, taxerrors.ErrInvalidState
	}

	at := s.now().UTC()
	if err := s.repo.Transition(ctx, d.ID, StatusDraft, map[string]any{
		"status":       StatusSubmitted,
		"submitted_at": at,
	}); err != nil {
		return DeclarationResponse{}, err
	}
	d.Status = StatusSubmitted
	d.SubmittedAt = &at

	s.logger.Info("tax declaration submitted", zap.String("declaration_id", id))
	return mapToResponse(*d), nil
}

func (s *service) Verify(ctx context.Context, actorID, id string) (DeclarationResponse, error) {
	return s.review(ctx, actorID, id, StatusVerified, "")
}

func (s *service) Reject(ctx context.Context, actorID, id, reason string) (DeclarationResponse, error) {
	if reason == "" {
		return DeclarationResponse{}, taxerrors.ErrRejectionReasonRequired
	}
	return s.review(ctx, actorID, id, StatusRejected, reason)
}

func (s *service) review(ctx context.Context, actorID, id, to, reason string) (DeclarationResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return DeclarationResponse{}, taxerrors.ErrInvalidActorID
	}
	d, err := s.load(ctx, id)
	if err != nil {
		return DeclarationResponse{}, err
	}
	if d.Status != StatusSubmitted {
		return DeclarationResponse{}, taxerrors.ErrInvalidState
	}

	at := s.now().UTC()
	values := map[string]any{
		"status":      to,
		"reviewed_by": actor,
		"reviewed_at": at,
	}
	if reason != "" {
		values["rejection_reason"] = reason
		d.RejectionReason = &reason
	}
	if err := s.repo.Transition(ctx, d.ID, StatusSubmitted, values); err != nil {
		return DeclarationResponse{}, err
	}
	d.Status = to
	d.ReviewedBy = &actor
	d.ReviewedAt = &at

	s.logger.Info("tax declaration reviewed",
		zap.String("declaration_id", id),
		zap.String("actor_id", actorID),
		zap.String("status", to),
	)
	return mapToResponse(*d), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DeclarationResponse, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return DeclarationResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, filter GetDeclarationsFilterRequest) ([]DeclarationResponse, int64, error) {
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, 0, taxerrors.ErrInvalidEmployeeID
		}
	}
	if filter.FinancialYear != "" {
		if err := ValidateFinancialYear(filter.FinancialYear); err != nil {
			return nil, 0, err
		}
	}
	if filter.Status != "" && !isValidStatus(filter.Status) {
		return nil, 0, taxerrors.ErrInvalidStatusFilter
	}

	rows, total, err := s.repo.FindAll(ctx, DeclarationQueryFilter{
		EmployeeID:    filter.EmployeeID,
		FinancialYear: filter.FinancialYear,
		Status:        filter.Status,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	res := make([]DeclarationResponse, len(rows))
	for i, d := range rows {
		res[i] = mapToResponse(d)
	}
	return res, total, nil
}

// OfficialEstimate runs the estimator against a stored declaration, using
// the employee's current compensation annualised over twelve months. When
// an HRA claim is present, the received HRA and basic come from payroll
// records rather than the employee's own figures.
func (s *service) OfficialEstimate(ctx context.Context, id string) (OfficialEstimateResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	d, err := s.load(ctx, id)
	if err != nil {
		return OfficialEstimateResponse{}, err
	}
	emp, err := s.employees.FindByID(ctx, d.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OfficialEstimateResponse{}, taxerrors.ErrEmployeeNotFound
		}
		log.Error("official estimate employee lookup failed", zap.Error(err))
		return OfficialEstimateResponse{}, err
	}

	comp := emp.Compensation
	monthlyGross := money.Sum(comp.BasicSalary, comp.HRA, comp.DA, comp.SpecialAllowance, comp.OtherAllowances)

	decl := d.Declarations
	if decl.HRA != nil {
		hra := *decl.HRA
		hra.Basic = comp.BasicSalary.Mul(twelve)
		hra.HRAReceived = comp.HRA.Mul(twelve)
		decl.HRA = &hra
	}

	est, err := Estimate(EstimateInput{AnnualGross: monthlyGross.Mul(twelve), Declarations: decl}, s.policy)
	if err != nil {
		return OfficialEstimateResponse{}, err
	}

	return OfficialEstimateResponse{
		DeclarationID: d.ID.String(),
		EmployeeID:    d.EmployeeID.String(),
		FinancialYear: d.FinancialYear,
		Status:        d.Status,
		Estimate:      est,
	}, nil
}

func (s *service) totalDeductions(d Declarations) (decimal.Decimal, error) {
	est, err := Estimate(EstimateInput{Declarations: d}, s.policy)
	if err != nil {
		return money.Zero, err
	}
	return est.Deductions.Total, nil
}

func (s *service) load(ctx context.Context, id string) (*TaxDeclaration, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, taxerrors.ErrInvalidDeclarationID
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return d, nil
}

// loadOwned hides declarations belonging to someone else behind not found.
func (s *service) loadOwned(ctx context.Context, employeeID, id string) (*TaxDeclaration, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, taxerrors.ErrInvalidEmployeeID
	}
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.EmployeeID.String() != employeeID {
		return nil, taxerrors.ErrDeclarationNotFound
	}
	return d, nil
}

// ValidateFinancialYear accepts "2024-25" style years whose suffix is the
// year after the start.
func ValidateFinancialYear(fy string) error {
	if len(fy) != 7 || fy[4] != '-' {
		return taxerrors.ErrInvalidFinancialYear
	}
	start, err := strconv.Atoi(fy[:4])
	if err != nil || start < 2000 {
		return taxerrors.ErrInvalidFinancialYear
	}
	if fy[5:] != fmt.Sprintf("%02d", (start+1)%100) {
		return taxerrors.ErrInvalidFinancialYear
	}
	return nil
}

func isValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusVerified, StatusRejected:
		return true
	}
	return false
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func mapToResponse(d TaxDeclaration) DeclarationResponse {
	resp := DeclarationResponse{
		ID:              d.ID.String(),
		EmployeeID:      d.EmployeeID.String(),
		FinancialYear:   d.FinancialYear,
		Declarations:    d.Declarations,
		TotalDeductions: d.TotalDeductions,
		Status:          d.Status,
		SubmittedAt:     formatTime(d.SubmittedAt),
		ReviewedAt:      formatTime(d.ReviewedAt),
		RejectionReason: d.RejectionReason,
	}
	if d.ReviewedBy != nil {
		v := d.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	return resp
}
