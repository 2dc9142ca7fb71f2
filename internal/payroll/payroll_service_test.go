package payroll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/notification"
	notificationmock "go-payroll/internal/notification/mock"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/counter"
	countermock "go-payroll/internal/shared/counter/mock"
	"go-payroll/internal/shared/period"
	storagemock "go-payroll/internal/storage/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func pendingRecord(t *testing.T) *payroll.Payroll {
	t.Helper()
	b, err := payroll.Calculate(standardCompensation(), payroll.Adjustments{}, thirtyDay)
	require.NoError(t, err)
	p := payroll.NewPayroll(uuid.New(), period.Period{Year: 2025, Month: time.January}, b, d("0"), uuid.New())
	p.Employee = &payroll.PayrollEmployee{
		ID:           p.EmployeeID,
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		EmployeeCode: "EMP-000001",
	}
	return p
}

func approvedRecord(t *testing.T) *payroll.Payroll {
	t.Helper()
	p := pendingRecord(t)
	require.NoError(t, p.Approve(uuid.New(), fixedNow))
	return p
}

func TestService_AddAdjustment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := pendingRecord(t)
	var saved payroll.Adjustment
	repo := &fakePayrollRepository{
		findByIDFn: func(_ context.Context, id string) (*payroll.Payroll, error) {
			assert.Equal(t, rec.ID.String(), id)
			return rec, nil
		},
		saveAdjustmentFn: func(_ context.Context, p *payroll.Payroll, adj payroll.Adjustment) error {
			saved = adj
			assertMoney(t, "-2000.00", p.TotalAdjustment)
			return nil
		},
	}

	svc := payroll.NewService(payroll.Deps{
		DB:   db,
		Repo: repo,
		Now:  func() time.Time { return fixedNow },
	}, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := svc.AddAdjustment(context.Background(), uuid.NewString(), rec.ID.String(), payroll.AddAdjustmentRequest{
		Type:        payroll.AdjustmentPenalty,
		Amount:      d("2000"),
		Description: "late submission",
	})
	require.NoError(t, err)

	assertMoney(t, "76162.50", res.NetSalary)
	assertMoney(t, "-2000.00", res.TotalAdjustment)
	require.Len(t, res.Adjustments, 1)
	assert.Equal(t, payroll.AdjustmentPenalty, saved.Type)
	assertMoney(t, "2000.00", saved.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_AddAdjustment_NegativeNetRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := pendingRecord(t)
	repo := &fakePayrollRepository{
		findByIDFn: func(context.Context, string) (*payroll.Payroll, error) { return rec, nil },
		saveAdjustmentFn: func(context.Context, *payroll.Payroll, payroll.Adjustment) error {
			t.Fatal("adjustment must not be persisted")
			return nil
		},
	}

	svc := payroll.NewService(payroll.Deps{DB: db, Repo: repo}, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.AddAdjustment(context.Background(), uuid.NewString(), rec.ID.String(), payroll.AddAdjustmentRequest{
		Type:   payroll.AdjustmentRecovery,
		Amount: d("100000"),
	})
	assert.ErrorIs(t, err, payrollerrors.ErrNegativeNetSalary)
	assert.Equal(t, apperror.CodeNegativeNetSalary, apperror.CodeOf(err))
	assertMoney(t, "78162.50", rec.NetSalary)
	assert.Empty(t, rec.Adjustments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_AddAdjustment_ConcurrentWriterRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := pendingRecord(t)
	repo := &fakePayrollRepository{
		findByIDFn: func(context.Context, string) (*payroll.Payroll, error) { return rec, nil },
		saveAdjustmentFn: func(context.Context, *payroll.Payroll, payroll.Adjustment) error {
			return payrollerrors.ErrConcurrentAdjustment
		},
	}

	svc := payroll.NewService(payroll.Deps{DB: db, Repo: repo, Now: func() time.Time { return fixedNow }}, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.AddAdjustment(context.Background(), uuid.NewString(), rec.ID.String(), payroll.AddAdjustmentRequest{
		Type:   payroll.AdjustmentPenalty,
		Amount: d("50000"),
	})
	assert.ErrorIs(t, err, payrollerrors.ErrConcurrentAdjustment)
	assert.Equal(t, apperror.CodeConflict, apperror.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two penalties that each fit alone: once the first is committed, the second
// sees the updated total and is rejected instead of overwriting it.
func TestService_AddAdjustment_SerializedPenalties(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stored := pendingRecord(t)
	var rows []payroll.Adjustment
	repo := &fakePayrollRepository{
		findByIDFn: func(context.Context, string) (*payroll.Payroll, error) {
			cp := *stored
			cp.Adjustments = append([]payroll.Adjustment(nil), stored.Adjustments...)
			return &cp, nil
		},
		saveAdjustmentFn: func(_ context.Context, p *payroll.Payroll, adj payroll.Adjustment) error {
			rows = append(rows, adj)
			stored.TotalAdjustment = p.TotalAdjustment
			stored.NetSalary = p.NetSalary
			stored.Adjustments = p.Adjustments
			return nil
		},
	}
	svc := payroll.NewService(payroll.Deps{DB: db, Repo: repo, Now: func() time.Time { return fixedNow }}, zap.NewNop())

	penalty := payroll.AddAdjustmentRequest{Type: payroll.AdjustmentPenalty, Amount: d("50000")}

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.AddAdjustment(context.Background(), uuid.NewString(), stored.ID.String(), penalty)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.AddAdjustment(context.Background(), uuid.NewString(), stored.ID.String(), penalty)
	assert.ErrorIs(t, err, payrollerrors.ErrNegativeNetSalary)

	require.Len(t, rows, 1)
	assertMoney(t, "-50000.00", stored.TotalAdjustment)
	assertMoney(t, "28162.50", stored.NetSalary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_AddAdjustment_InvalidIDs(t *testing.T) {
	svc := payroll.NewService(payroll.Deps{Repo: &fakePayrollRepository{}}, zap.NewNop())

	_, err := svc.AddAdjustment(context.Background(), "nope", uuid.NewString(), payroll.AddAdjustmentRequest{})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidActorID)

	_, err = svc.AddAdjustment(context.Background(), uuid.NewString(), "nope", payroll.AddAdjustmentRequest{})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPayrollID)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &fakePayrollRepository{
		findByIDFn: func(context.Context, string) (*payroll.Payroll, error) { return nil, gorm.ErrRecordNotFound },
	}
	svc := payroll.NewService(payroll.Deps{Repo: repo}, zap.NewNop())

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
}

func TestService_GetAll_ValidatesFilter(t *testing.T) {
	called := false
	repo := &fakePayrollRepository{
		findAllFn: func(_ context.Context, f payroll.PayrollQueryFilter) ([]payroll.Payroll, int64, error) {
			called = true
			assert.Equal(t, "2025-01", f.Period)
			assert.Equal(t, payroll.StatusApproved, f.Status)
			return []payroll.Payroll{*approvedRecord(t)}, 1, nil
		},
	}
	svc := payroll.NewService(payroll.Deps{Repo: repo}, zap.NewNop())

	_, _, err := svc.GetAll(context.Background(), payroll.GetPayrollsFilterRequest{Status: "DONE"})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusFilter)

	_, _, err = svc.GetAll(context.Background(), payroll.GetPayrollsFilterRequest{Period: "2025/01"})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriodFormat)
	assert.False(t, called)

	items, total, err := svc.GetAll(context.Background(), payroll.GetPayrollsFilterRequest{
		Period: "2025-01",
		Status: payroll.StatusApproved,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Asha Rao", items[0].EmployeeName)
}

func TestService_ApproveAndRevoke(t *testing.T) {
	rec := pendingRecord(t)
	var transitions []string
	repo := &fakePayrollRepository{
		findByIDFn: func(context.Context, string) (*payroll.Payroll, error) { return rec, nil },
		transitionFn: func(_ context.Context, id uuid.UUID, from string, values map[string]any) error {
			assert.Equal(t, rec.ID, id)
			transitions = append(transitions, from+"->"+values["status"].(string))
			return nil
		},
	}
	svc := payroll.NewService(payroll.Deps{Repo: repo, Now: func() time.Time { return fixedNow }}, zap.NewNop())

	res, err := svc.Approve(context.Background(), uuid.NewString(), rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, res.Status)
	require.NotNil(t, res.ApprovedAt)

	_, err = svc.Approve(context.Background(), uuid.NewString(), rec.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidState)

	res, err = svc.Revoke(context.Background(), uuid.NewString(), rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPending, res.Status)
	assert.Nil(t, res.ApprovedBy)

	assert.Equal(t, []string{"PENDING->APPROVED", "APPROVED->PENDING"}, transitions)
}

func TestService_Approve_LostRace(t *testing.T) {
	rec := pendingRecord(t)
	repo := &fakePayrollRepository{
		findByIDFn: func(context.Context, string) (*payroll.Payroll, error) { return rec, nil },
		transitionFn: func(context.Context, uuid.UUID, string, map[string]any) error {
			return payrollerrors.ErrInvalidState
		},
	}
	svc := payroll.NewService(payroll.Deps{Repo: repo}, zap.NewNop())

	_, err := svc.Approve(context.Background(), uuid.NewString(), rec.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidState)
}

type payFixture struct {
	rec     *payroll.Payroll
	counter *countermock.MockRepository
	store   *storagemock.MockArtifactStore
	sink    *notificationmock.MockSink
	repo    *fakePayrollRepository
	svc     payroll.Service
}

func newPayFixture(t *testing.T, rec *payroll.Payroll) *payFixture {
	ctrl := gomock.NewController(t)
	f := &payFixture{
		rec:     rec,
		counter: countermock.NewMockRepository(ctrl),
		store:   storagemock.NewMockArtifactStore(ctrl),
		sink:    notificationmock.NewMockSink(ctrl),
	}
	f.repo = &fakePayrollRepository{
		findByIDFn: func(context.Context, string) (*payroll.Payroll, error) { return rec, nil },
	}
	f.svc = payroll.NewService(payroll.Deps{
		Repo:     f.repo,
		Counter:  f.counter,
		Renderer: &fakeRenderer{},
		Store:    f.store,
		Sink:     f.sink,
		Now:      func() time.Time { return fixedNow },
	}, zap.NewNop())
	return f
}

func TestService_Pay(t *testing.T) {
	f := newPayFixture(t, approvedRecord(t))
	object := "2025-01/" + f.rec.ID.String() + "-TXN-202501-000001.pdf"
	url := "https://files.example.com/" + object

	sentFlag := false
	f.repo.transitionFn = func(_ context.Context, _ uuid.UUID, from string, values map[string]any) error {
		assert.Equal(t, payroll.StatusApproved, from)
		assert.Equal(t, payroll.StatusPaid, values["status"])
		assert.Equal(t, "TXN-202501-000001", values["transaction_id"])
		return nil
	}
	f.repo.setNotificationSentFn = func(context.Context, uuid.UUID, bool) error {
		sentFlag = true
		return nil
	}

	f.counter.EXPECT().GetNextValue(gomock.Any(), "202501", counter.TypeTransaction).Return(int64(1), nil)
	f.store.EXPECT().Save(gomock.Any(), object, gomock.Any(), "application/pdf").Return(url, nil)
	f.sink.EXPECT().PayrollPaid(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n notification.PaidNotice) error {
			assert.Equal(t, "asha@example.com", n.Email)
			assert.Equal(t, "78162.50", n.NetSalary)
			assert.Equal(t, "TXN-202501-000001", n.TransactionID)
			assert.Equal(t, url, n.PayslipURL)
			return nil
		})

	res, err := f.svc.Pay(context.Background(), uuid.NewString(), f.rec.ID.String())
	require.NoError(t, err)

	assert.Equal(t, payroll.StatusPaid, res.Status)
	require.NotNil(t, res.TransactionID)
	assert.Equal(t, "TXN-202501-000001", *res.TransactionID)
	require.NotNil(t, res.PayslipURL)
	assert.Equal(t, url, *res.PayslipURL)
	assert.True(t, res.NotificationSent)
	assert.True(t, sentFlag)
}

func TestService_Pay_StorageFailureLeavesApproved(t *testing.T) {
	f := newPayFixture(t, approvedRecord(t))
	f.repo.transitionFn = func(context.Context, uuid.UUID, string, map[string]any) error {
		t.Fatal("status must not change")
		return nil
	}

	f.counter.EXPECT().GetNextValue(gomock.Any(), "202501", counter.TypeTransaction).Return(int64(4), nil)
	f.store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket unavailable"))

	_, err := f.svc.Pay(context.Background(), uuid.NewString(), f.rec.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrPayslipStorage)
	assert.Equal(t, apperror.CodeArtifactStorageFailed, apperror.CodeOf(err))

	assert.Equal(t, payroll.StatusApproved, f.rec.Status)
	assert.Nil(t, f.rec.TransactionID)
	assert.Nil(t, f.rec.PayslipURL)
	assert.Nil(t, f.rec.PaidAt)
}

func TestService_Pay_RenderFailure(t *testing.T) {
	f := newPayFixture(t, approvedRecord(t))
	f.svc = payroll.NewService(payroll.Deps{
		Repo:    f.repo,
		Counter: f.counter,
		Renderer: &fakeRenderer{renderFn: func(*payroll.Payroll) ([]byte, error) {
			return nil, errors.New("font missing")
		}},
		Store: f.store,
		Sink:  f.sink,
	}, zap.NewNop())

	f.counter.EXPECT().GetNextValue(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

	_, err := f.svc.Pay(context.Background(), uuid.NewString(), f.rec.ID.String())
	assert.Equal(t, apperror.CodeArtifactGenerationFailed, apperror.CodeOf(err))
	assert.Equal(t, payroll.StatusApproved, f.rec.Status)
	assert.Nil(t, f.rec.TransactionID)
}

func TestService_Pay_StatusWriteFailureRemovesPayslip(t *testing.T) {
	f := newPayFixture(t, approvedRecord(t))
	object := "2025-01/" + f.rec.ID.String() + "-TXN-202501-000002.pdf"

	f.repo.transitionFn = func(context.Context, uuid.UUID, string, map[string]any) error {
		return errors.New("connection reset")
	}

	f.counter.EXPECT().GetNextValue(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(2), nil)
	f.store.EXPECT().Save(gomock.Any(), object, gomock.Any(), gomock.Any()).Return("https://x/"+object, nil)
	f.store.EXPECT().Delete(gomock.Any(), object).Return(nil)

	_, err := f.svc.Pay(context.Background(), uuid.NewString(), f.rec.ID.String())
	require.Error(t, err)

	assert.Equal(t, payroll.StatusApproved, f.rec.Status)
	assert.Nil(t, f.rec.TransactionID)
	assert.Nil(t, f.rec.PayslipURL)
	assert.Nil(t, f.rec.PaidAt)
}

func TestService_Pay_LostRaceKeepsWinnersPayslip(t *testing.T) {
	ctrl := gomock.NewController(t)
	counterRepo := countermock.NewMockRepository(ctrl)
	sink := notificationmock.NewMockSink(ctrl)
	store := newMemoryStore()

	approved := approvedRecord(t)
	var committedURL string
	transitions := 0
	repo := &fakePayrollRepository{
		findByIDFn: func(context.Context, string) (*payroll.Payroll, error) {
			cp := *approved
			return &cp, nil
		},
		transitionFn: func(_ context.Context, _ uuid.UUID, _ string, values map[string]any) error {
			transitions++
			if transitions > 1 {
				return payrollerrors.ErrInvalidState
			}
			committedURL = values["payslip_url"].(string)
			return nil
		},
	}

	seq := int64(0)
	counterRepo.EXPECT().GetNextValue(gomock.Any(), "202501", counter.TypeTransaction).
		DoAndReturn(func(context.Context, string, string) (int64, error) {
			seq++
			return seq, nil
		}).Times(2)
	sink.EXPECT().PayrollPaid(gomock.Any(), gomock.Any()).Return(nil)

	svc := payroll.NewService(payroll.Deps{
		Repo:     repo,
		Counter:  counterRepo,
		Renderer: &fakeRenderer{},
		Store:    store,
		Sink:     sink,
		Now:      func() time.Time { return fixedNow },
	}, zap.NewNop())

	_, err := svc.Pay(context.Background(), uuid.NewString(), approved.ID.String())
	require.NoError(t, err)
	_, err = svc.Pay(context.Background(), uuid.NewString(), approved.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidState)

	require.NotEmpty(t, committedURL)
	assert.True(t, store.hasURL(committedURL), "committed payslip must survive the losing attempt")
	assert.Equal(t, 1, store.len())
}

func TestService_Pay_NotificationFailureKeepsPayment(t *testing.T) {
	f := newPayFixture(t, approvedRecord(t))
	f.repo.setNotificationSentFn = func(context.Context, uuid.UUID, bool) error {
		t.Fatal("notification flag must stay false")
		return nil
	}

	f.counter.EXPECT().GetNextValue(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
	f.store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://x/slip.pdf", nil)
	f.sink.EXPECT().PayrollPaid(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	res, err := f.svc.Pay(context.Background(), uuid.NewString(), f.rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, res.Status)
	assert.False(t, res.NotificationSent)
}

func TestService_Pay_RequiresApproved(t *testing.T) {
	f := newPayFixture(t, pendingRecord(t))

	_, err := f.svc.Pay(context.Background(), uuid.NewString(), f.rec.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidState)
	assert.Equal(t, payroll.StatusPending, f.rec.Status)
}

func TestService_ResendNotification(t *testing.T) {
	rec := approvedRecord(t)
	require.NoError(t, rec.MarkPaid("TXN-202501-000009", "https://x/slip.pdf", fixedNow))
	f := newPayFixture(t, rec)

	f.sink.EXPECT().PayrollPaid(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
	_, err := f.svc.ResendNotification(context.Background(), rec.ID.String())
	assert.Equal(t, apperror.CodeServiceUnavailable, apperror.CodeOf(err))
	assert.False(t, rec.NotificationSent)

	f.sink.EXPECT().PayrollPaid(gomock.Any(), gomock.Any()).Return(nil)
	res, err := f.svc.ResendNotification(context.Background(), rec.ID.String())
	require.NoError(t, err)
	assert.True(t, res.NotificationSent)

	_, err = f.svc.ResendNotification(context.Background(), rec.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrNotificationAlreadySent)
}

func TestService_PayBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	counterRepo := countermock.NewMockRepository(ctrl)
	store := storagemock.NewMockArtifactStore(ctrl)

	ok := *approvedRecord(t)
	broken := *approvedRecord(t)

	repo := &fakePayrollRepository{
		findByPeriodFn: func(_ context.Context, per, status string) ([]payroll.Payroll, error) {
			assert.Equal(t, "2025-01", per)
			assert.Equal(t, payroll.StatusApproved, status)
			return []payroll.Payroll{ok, broken}, nil
		},
	}

	seq := int64(0)
	counterRepo.EXPECT().GetNextValue(gomock.Any(), "202501", counter.TypeTransaction).
		DoAndReturn(func(context.Context, string, string) (int64, error) {
			seq++
			return seq, nil
		}).Times(2)
	store.EXPECT().Save(gomock.Any(), "2025-01/"+ok.ID.String()+"-TXN-202501-000001.pdf", gomock.Any(), gomock.Any()).Return("https://x/a.pdf", nil)
	store.EXPECT().Save(gomock.Any(), "2025-01/"+broken.ID.String()+"-TXN-202501-000002.pdf", gomock.Any(), gomock.Any()).Return("", errors.New("quota exceeded"))

	svc := payroll.NewService(payroll.Deps{
		Repo:     repo,
		Counter:  counterRepo,
		Renderer: &fakeRenderer{},
		Store:    store,
	}, zap.NewNop())

	res, err := svc.PayBatch(context.Background(), uuid.NewString(), 1, 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Successful)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Details, 2)
	assert.True(t, res.Details[0].Success)
	assert.Equal(t, "TXN-202501-000001", res.Details[0].TransactionID)
	assert.False(t, res.Details[1].Success)
	assert.Equal(t, apperror.CodeArtifactStorageFailed, res.Details[1].Code)
}

func TestService_PayBatch_NothingApproved(t *testing.T) {
	svc := payroll.NewService(payroll.Deps{Repo: &fakePayrollRepository{}}, zap.NewNop())

	_, err := svc.PayBatch(context.Background(), uuid.NewString(), 1, 2025)
	assert.ErrorIs(t, err, payrollerrors.ErrNoApprovedPayrolls)
}

func TestService_GetPayslipURL(t *testing.T) {
	rec := approvedRecord(t)
	svc := payroll.NewService(payroll.Deps{Repo: &fakePayrollRepository{
		findByIDFn: func(context.Context, string) (*payroll.Payroll, error) { return rec, nil },
	}}, zap.NewNop())

	_, err := svc.GetPayslipURL(context.Background(), rec.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotGenerated)

	require.NoError(t, rec.MarkPaid("TXN-1", "https://x/slip.pdf", fixedNow))
	url, err := svc.GetPayslipURL(context.Background(), rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "https://x/slip.pdf", url)
}
