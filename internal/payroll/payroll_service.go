package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/employee"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/notification"
	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/shared/lock"
	"go-payroll/internal/shared/metrics"
	"go-payroll/internal/shared/period"
	"go-payroll/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	ProcessPeriod(ctx context.Context, actorID string, month, year int) (BatchResult, error)
	GetAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollResponse, int64, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	AddAdjustment(ctx context.Context, actorID, id string, req AddAdjustmentRequest) (PayrollResponse, error)
	Approve(ctx context.Context, actorID, id string) (PayrollResponse, error)
	Revoke(ctx context.Context, actorID, id string) (PayrollResponse, error)
	Pay(ctx context.Context, actorID, id string) (PayrollResponse, error)
	PayBatch(ctx context.Context, actorID string, month, year int) (BatchPaymentResult, error)
	ResendNotification(ctx context.Context, id string) (PayrollResponse, error)
	GetPayslipURL(ctx context.Context, id string) (string, error)
	ExportRegister(ctx context.Context, month, year int) ([]byte, error)
}

// EmployeeReader is the slice of the employee repository the batch needs.
type EmployeeReader interface {
	FindActive(ctx context.Context) ([]employee.Employee, error)
}

type LOPResolver interface {
	ResolveLOP(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error)
}

type Deps struct {
	DB        *sql.DB
	Repo      Repository
	Employees EmployeeReader
	LOP       LOPResolver
	Counter   counter.Repository
	Renderer  PayslipRenderer
	Store     storage.ArtifactStore
	Sink      notification.Sink
	Locker    lock.Locker
	Metrics   *metrics.Registry
	Config    config.PayrollConfig
	Now       func() time.Time
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeReader
	lop       LOPResolver
	counter   counter.Repository
	renderer  PayslipRenderer
	store     storage.ArtifactStore
	sink      notification.Sink
	locker    lock.Locker
	metrics   *metrics.Registry
	cfg       config.PayrollConfig
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}

	s := &service{
		db:        deps.DB,
		repo:      deps.Repo,
		employees: deps.Employees,
		lop:       deps.LOP,
		counter:   deps.Counter,
		renderer:  deps.Renderer,
		store:     deps.Store,
		sink:      deps.Sink,
		locker:    deps.Locker,
		metrics:   deps.Metrics,
		cfg:       deps.Config,
		now:       deps.Now,
		logger:    l,
	}
	if s.sink == nil {
		s.sink = notification.NewNoopSink()
	}
	if s.locker == nil {
		s.locker = lock.NewNoopLocker()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.cfg.Currency == "" {
		s.cfg.Currency = "INR"
	}
	return s
}

func (s *service) GetAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollResponse, int64, error) {
	if filter.Status != "" && !isValidStatus(filter.Status) {
		return nil, 0, payrollerrors.ErrInvalidStatusFilter
	}
	if filter.Period != "" {
		if _, err := period.Parse(filter.Period); err != nil {
			return nil, 0, payrollerrors.ErrInvalidPeriodFormat
		}
	}
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, 0, payrollerrors.ErrInvalidEmployeeID
		}
	}

	payrolls, total, err := s.repo.FindAll(ctx, PayrollQueryFilter{
		Period:     filter.Period,
		Status:     filter.Status,
		EmployeeID: filter.EmployeeID,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	})
	if err != nil {
		s.logger.Error("list payrolls failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(payrolls), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	p, err := s.load(ctx, s.repo, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) AddAdjustment(ctx context.Context, actorID, id string, req AddAdjustmentRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	actor, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("add adjustment begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := s.load(ctx, qtx, id)
	if err != nil {
		return PayrollResponse{}, err
	}

	adj, err := p.AddAdjustment(req.Type, req.Amount, req.Description, actor, s.now().UTC())
	if err != nil {
		log.Warn("add adjustment rejected",
			zap.String("payroll_id", id),
			zap.String("type", req.Type),
			zap.String("amount", req.Amount.String()),
			zap.Error(err),
		)
		return PayrollResponse{}, err
	}

	if err := qtx.SaveAdjustment(ctx, p, adj); err != nil {
		log.Error("add adjustment persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("add adjustment commit failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	log.Info("adjustment added",
		zap.String("payroll_id", id),
		zap.String("type", adj.Type),
		zap.String("net_salary", p.NetSalary.String()),
	)

	return mapToResponse(*p), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (PayrollResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	p, err := s.load(ctx, s.repo, id)
	if err != nil {
		return PayrollResponse{}, err
	}

	at := s.now().UTC()
	if err := p.Approve(actor, at); err != nil {
		return PayrollResponse{}, err
	}

	if err := s.repo.Transition(ctx, p.ID, StatusPending, map[string]any{
		"status":      StatusApproved,
		"approved_by": actor,
		"approved_at": at,
	}); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("payroll approved", zap.String("payroll_id", id), zap.String("actor_id", actorID))
	return mapToResponse(*p), nil
}

func (s *service) Revoke(ctx context.Context, actorID, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	p, err := s.load(ctx, s.repo, id)
	if err != nil {
		return PayrollResponse{}, err
	}

	if err := p.Revoke(); err != nil {
		return PayrollResponse{}, err
	}

	if err := s.repo.Transition(ctx, p.ID, StatusApproved, map[string]any{
		"status":      StatusPending,
		"approved_by": nil,
		"approved_at": nil,
	}); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("payroll approval revoked", zap.String("payroll_id", id), zap.String("actor_id", actorID))
	return mapToResponse(*p), nil
}

func (s *service) GetPayslipURL(ctx context.Context, id string) (string, error) {
	p, err := s.load(ctx, s.repo, id)
	if err != nil {
		return "", err
	}
	if p.PayslipURL == nil || *p.PayslipURL == "" {
		return "", payrollerrors.ErrPayslipNotGenerated
	}
	return *p.PayslipURL, nil
}

func (s *service) ExportRegister(ctx context.Context, month, year int) ([]byte, error) {
	per, err := period.New(month, year)
	if err != nil {
		return nil, payrollerrors.ErrInvalidPeriod
	}

	payrolls, err := s.repo.FindByPeriod(ctx, per.String(), "")
	if err != nil {
		s.logger.Error("export register load failed", zap.String("period", per.String()), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return BuildRegister(per.String(), payrolls)
}

func (s *service) load(ctx context.Context, repo Repository, id string) (*Payroll, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidPayrollID
	}
	p, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return p, nil
}

func isValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusPaid, StatusFailed, StatusCancelled:
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

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:         p.ID.String(),
		EmployeeID: p.EmployeeID.String(),
		Period:     p.Period,
		Year:       p.Year,
		Month:      p.Month,
		Earnings: EarningsResponse{
			Basic:            p.Earnings.Basic,
			HRA:              p.Earnings.HRA,
			DA:               p.Earnings.DA,
			SpecialAllowance: p.Earnings.SpecialAllowance,
			OtherAllowances:  p.Earnings.OtherAllowances,
			Gross:            p.Earnings.Gross,
		},
		Deductions: DeductionsResponse{
			ProvidentFund:   p.Deductions.ProvidentFund,
			ProfessionalTax: p.Deductions.ProfessionalTax,
			ESI:             p.Deductions.ESI,
			LOP:             p.Deductions.LOP,
			Total:           p.Deductions.Total,
		},
		LOPDays:          p.LOPDays,
		Adjustments:      make([]AdjustmentResponse, len(p.Adjustments)),
		TotalAdjustment:  p.TotalAdjustment,
		NetSalary:        p.NetSalary,
		Status:           p.Status,
		TransactionID:    p.TransactionID,
		PayslipURL:       p.PayslipURL,
		NotificationSent: p.NotificationSent,
		CreatedBy:        p.CreatedBy.String(),
		ApprovedAt:       formatTime(p.ApprovedAt),
		PaidAt:           formatTime(p.PaidAt),
	}

	if p.Employee != nil {
		resp.EmployeeName = p.Employee.FullName
		resp.EmployeeCode = p.Employee.EmployeeCode
	}
	if p.ApprovedBy != nil {
		v := p.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	for i, a := range p.Adjustments {
		resp.Adjustments[i] = AdjustmentResponse{
			ID:          a.ID.String(),
			Type:        a.Type,
			Amount:      a.Amount,
			Description: a.Description,
			CreatedBy:   a.CreatedBy.String(),
			CreatedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	res := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		res[i] = mapToResponse(p)
	}
	return res
}
