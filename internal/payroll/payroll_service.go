package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/payslip"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/clock"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	dateLayout = "2006-01-02"

	EventTypePayrollCalculated = "payroll.calculated"
	aggregateTypePayrollRun    = "payroll_run"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	CalculateForProject(ctx context.Context, organizationID, actorID string, req CalculateRequest) (CalculateResponse, error)
	GetAll(ctx context.Context, organizationID string, scope ReadScope, filter GetPayrollsFilterRequest) ([]PayrollResponse, error)
	GetByID(ctx context.Context, organizationID string, scope ReadScope, id string) (PayrollResponse, error)
	GetBreakdown(ctx context.Context, organizationID string, scope ReadScope, id string) (PayrollBreakdownResponse, error)
	GeneratePayslip(ctx context.Context, organizationID, id string) (PayrollResponse, error)
	OpenPayslip(ctx context.Context, organizationID string, scope ReadScope, id string) (io.ReadCloser, string, error)
}

// Payslips groups what GeneratePayslip needs. A zero value disables
// payslip generation.
type Payslips struct {
	Renderer payslip.Renderer
	Storage  payslip.Storage
	Settings payslip.Settings
}

type service struct {
	db       *sql.DB
	repo     Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	locker   RunLocker
	payslips Payslips
	clock    clock.Clock
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outbox kafka.OutboxRepository,
	locker RunLocker,
	payslips Payslips,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if locker == nil {
		locker = NewNoopRunLocker()
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counterRepo,
		outbox:   outbox,
		locker:   locker,
		payslips: payslips,
		clock:    clk,
		logger:   l,
	}
}

// IdempotencyKey identifies one employee's record for a project and period.
func IdempotencyKey(projectID uuid.UUID, periodStart, periodEnd time.Time, employeeID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s:%s", projectID, periodStart.Format(dateLayout), periodEnd.Format(dateLayout), employeeID)
}

type runPolicy struct {
	overtimeThreshold  decimal.Decimal
	overtimeMultiplier decimal.Decimal
	taxRate            decimal.Decimal
}

type runAdjustment struct {
	overtimeHours decimal.Decimal
	bonuses       []Bonus
	allowances    []Allowance
	deductions    []Deduction
}

type calculationInput struct {
	organizationID uuid.UUID
	actorID        uuid.UUID
	projectID      uuid.UUID
	periodStart    time.Time
	periodEnd      time.Time
	policy         *runPolicy
	adjustments    map[uuid.UUID]runAdjustment
	// breakdown puts every record of the run on ComputeBreakdown so gross
	// means the same thing across the batch.
	breakdown bool
}

// CalculateForProject creates one pending record per payable employee of the
// organization. The whole run is one transaction: records, expense flags and
// the calculated event commit together or not at all. Employees that already
// have a record for this project and period are skipped.
func (s *service) CalculateForProject(
	ctx context.Context,
	organizationID, actorID string,
	req CalculateRequest,
) (CalculateResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	in, err := parseCalculateRequest(organizationID, actorID, req)
	if err != nil {
		return CalculateResponse{}, err
	}

	lockKey := RunLockKey(in.projectID.String(), in.periodStart, in.periodEnd)
	release, err := s.locker.Acquire(ctx, lockKey)
	if err != nil {
		log.Warn("payroll run lock not acquired", zap.String("lock_key", lockKey), zap.Error(err))
		return CalculateResponse{}, err
	}
	defer release()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CalculateResponse{}, apperror.Store("begin transaction", err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employees, err := qtx.ListPayableEmployees(ctx, organizationID)
	if err != nil {
		return CalculateResponse{}, mapRepositoryError("list employees", err)
	}
	if err := checkAdjustedEmployees(in.adjustments, employees); err != nil {
		return CalculateResponse{}, err
	}

	now := s.clock.Now().UTC()
	created := make([]PayrollRecord, 0, len(employees))
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			log.Warn("payroll run cancelled", zap.String("project_id", in.projectID.String()), zap.Error(err))
			return CalculateResponse{}, payrollerrors.ErrCalculationCancelled.WithCause(err)
		}

		record, err := s.calculateEmployee(ctx, qtx, log, in, emp, now)
		if err != nil {
			log.Error("payroll run aborted",
				zap.String("project_id", in.projectID.String()),
				zap.String("employee_id", emp.ID.String()),
				zap.Error(err),
			)
			return CalculateResponse{}, err
		}
		if record != nil {
			created = append(created, *record)
		}
	}

	if len(created) > 0 && s.outbox != nil {
		if err := s.enqueueCalculated(ctx, tx, in, created, now); err != nil {
			log.Error("create payroll outbox persist failed", zap.String("project_id", in.projectID.String()), zap.Error(err))
			return CalculateResponse{}, apperror.Store("write calculated event", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.String("project_id", in.projectID.String()), zap.Error(err))
		return CalculateResponse{}, apperror.Store("commit payroll run", err)
	}

	log.Info("payroll run completed",
		zap.String("organization_id", organizationID),
		zap.String("project_id", in.projectID.String()),
		zap.String("period_start", in.periodStart.Format(dateLayout)),
		zap.String("period_end", in.periodEnd.Format(dateLayout)),
		zap.Int("employees", len(employees)),
		zap.Int("created", len(created)),
	)

	return mapToCalculateResponse(in, created), nil
}

// calculateEmployee returns (nil, nil) when the employee already has a record
// for this run.
func (s *service) calculateEmployee(
	ctx context.Context,
	qtx Repository,
	log *zap.Logger,
	in calculationInput,
	emp Employee,
	now time.Time,
) (*PayrollRecord, error) {
	orgID := in.organizationID.String()
	employeeID := emp.ID.String()
	projectID := in.projectID.String()
	key := IdempotencyKey(in.projectID, in.periodStart, in.periodEnd, emp.ID)

	exists, err := qtx.ExistsByIdempotencyKey(ctx, orgID, key)
	if err != nil {
		return nil, mapRepositoryError("check idempotency key", err)
	}
	if exists {
		log.Debug("payroll already calculated, skipping", zap.String("idempotency_key", key))
		return nil, nil
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, orgID, employeeID, projectID, in.periodStart, in.periodEnd, key)
	if err != nil {
		return nil, mapRepositoryError("check overlapping period", err)
	}
	if overlap {
		return nil, payrollerrors.ErrPayrollOverlap
	}

	until := in.periodEnd.AddDate(0, 0, 1)
	tasks, err := qtx.FindCompletedTasks(ctx, orgID, projectID, employeeID, in.periodStart, until)
	if err != nil {
		return nil, mapRepositoryError("fetch tasks", err)
	}
	expenses, err := qtx.FindUnprocessedExpenses(ctx, orgID, projectID, employeeID, in.periodStart, until)
	if err != nil {
		return nil, mapRepositoryError("fetch expenses", err)
	}
	rate, err := s.resolveRate(ctx, qtx, log, orgID, employeeID)
	if err != nil {
		return nil, err
	}

	var seconds int64
	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		seconds += t.ElapsedTimeSeconds
		taskIDs = append(taskIDs, t.ID.String())
	}
	expenseAmounts := make([]decimal.Decimal, 0, len(expenses))
	expenseIDs := make([]string, 0, len(expenses))
	for _, e := range expenses {
		expenseAmounts = append(expenseAmounts, e.Amount)
		expenseIDs = append(expenseIDs, e.ID.String())
	}
	hours := money.HoursFromSeconds(seconds)
	expenseTotal := money.Sum(expenseAmounts...)

	record := &PayrollRecord{
		ID:                  uuid.New(),
		OrganizationID:      in.organizationID,
		EmployeeID:          emp.ID,
		ProjectID:           in.projectID,
		PeriodStart:         in.periodStart,
		PeriodEnd:           in.periodEnd,
		HourlyRate:          rate,
		GeneratedBy:         in.actorID,
		GeneratedAt:         now,
		TaskIDsProcessed:    datatypes.JSONSlice[string](taskIDs),
		ExpenseIDsProcessed: datatypes.JSONSlice[string](expenseIDs),
		IdempotencyKey:      key,
		Status:              StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if in.breakdown {
		if err := applyBreakdown(record, in.policy, in.adjustments[emp.ID], hours, rate, expenseTotal); err != nil {
			return nil, err
		}
	} else {
		gross := CalculateGrossPay(hours, rate, expenseTotal)
		record.HoursWorked = gross.HoursWorked
		record.TaskPay = gross.TaskPay
		record.ApprovedExpenses = gross.ApprovedExpenses
		record.GrossPay = gross.GrossPay
		record.NetPay = gross.GrossPay
	}

	seq, err := s.counter.GetNextValue(ctx, orgID, counter.TypePayrollReference)
	if err != nil {
		return nil, apperror.Store("next payroll reference", err)
	}
	record.Reference = fmt.Sprintf("PAY-%06d", seq)

	if err := qtx.Create(ctx, record); err != nil {
		return nil, mapRepositoryError("create payroll", err)
	}

	marked, err := qtx.MarkExpensesProcessed(ctx, orgID, record.ID.String(), expenseIDs)
	if err != nil {
		return nil, mapRepositoryError("mark expenses processed", err)
	}
	if marked != int64(len(expenseIDs)) {
		return nil, payrollerrors.ErrExpenseAlreadyProcessed
	}

	return record, nil
}

func checkAdjustedEmployees(adjustments map[uuid.UUID]runAdjustment, employees []Employee) error {
	payable := make(map[uuid.UUID]struct{}, len(employees))
	for _, e := range employees {
		payable[e.ID] = struct{}{}
	}
	for id := range adjustments {
		if _, ok := payable[id]; !ok {
			return payrollerrors.ErrUnknownAdjustmentEmployee
		}
	}
	return nil
}

func applyBreakdown(record *PayrollRecord, policy *runPolicy, adj runAdjustment, hours, rate, expenses decimal.Decimal) error {
	in := BreakdownInput{
		HoursWorked:      hours,
		HourlyRate:       rate,
		OvertimeHours:    adj.overtimeHours,
		ApprovedExpenses: expenses,
		Bonuses:          adj.bonuses,
		Allowances:       adj.allowances,
		Deductions:       adj.deductions,
	}
	if policy != nil {
		in.OvertimeThreshold = policy.overtimeThreshold
		in.OvertimeMultiplier = policy.overtimeMultiplier
		in.TaxRate = policy.taxRate
	}

	b, err := ComputeBreakdown(in)
	if err != nil {
		return err
	}

	record.HoursWorked = b.HoursWorked
	record.TaskPay = b.TaskPay
	record.OvertimeHours = b.OvertimeHours
	record.OvertimePay = b.OvertimePay
	record.ApprovedExpenses = b.ApprovedExpenses
	record.GrossPay = b.GrossPay
	record.NetPay = b.NetPay
	record.LineItems = toLineItems(record.OrganizationID, record.ID, b.Bonuses, b.Allowances, b.Deductions)
	return nil
}

// resolveRate pays 0 for a missing config or a non-hourly mode. A missing
// config is logged and never fails the run.
func (s *service) resolveRate(ctx context.Context, qtx Repository, log *zap.Logger, organizationID, employeeID string) (decimal.Decimal, error) {
	cfg, err := qtx.FindRateConfig(ctx, organizationID, employeeID)
	if err != nil {
		return decimal.Zero, mapRepositoryError("fetch rate config", err)
	}
	if cfg == nil {
		log.Warn("rate configuration missing, paying zero rate",
			zap.String("employee_id", employeeID),
			zap.Error(apperror.Configuration("missing rate configuration")),
		)
		return decimal.Zero, nil
	}
	if cfg.PaymentMode != PaymentModeHourly {
		log.Debug("non-hourly payment mode, paying zero rate",
			zap.String("employee_id", employeeID),
			zap.String("payment_mode", cfg.PaymentMode),
		)
		return decimal.Zero, nil
	}
	return money.Round2(cfg.HourlyRate), nil
}

func (s *service) enqueueCalculated(ctx context.Context, tx *sql.Tx, in calculationInput, created []PayrollRecord, now time.Time) error {
	ids := make([]string, len(created))
	nets := make([]decimal.Decimal, len(created))
	for i, r := range created {
		ids[i] = r.ID.String()
		nets[i] = r.NetPay
	}

	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		aggregateTypePayrollRun,
		in.projectID.String(),
		EventTypePayrollCalculated,
		events.PayrollCalculatedTopic,
		events.PayrollCalculatedEvent{
			EventType:      EventTypePayrollCalculated,
			OrganizationID: in.organizationID.String(),
			ProjectID:      in.projectID.String(),
			PeriodStart:    in.periodStart.Format(dateLayout),
			PeriodEnd:      in.periodEnd.Format(dateLayout),
			PayrollIDs:     ids,
			TotalNetPay:    money.String(money.Sum(nets...)),
			GeneratedBy:    in.actorID.String(),
			OccurredAt:     now,
		},
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) GetAll(ctx context.Context, organizationID string, scope ReadScope, filter GetPayrollsFilterRequest) ([]PayrollResponse, error) {
	if _, err := uuid.Parse(organizationID); err != nil {
		return nil, payrollerrors.ErrInvalidOrganizationID
	}
	if scope.EmployeeID != "" {
		filter.EmployeeID = scope.EmployeeID
	}
	switch filter.Status {
	case "", StatusPending, StatusApproved, StatusRejected:
	default:
		return nil, payrollerrors.ErrInvalidStatusFilter
	}

	records, err := s.repo.FindAllByOrganization(ctx, organizationID, PayrollQueryFilter(filter))
	if err != nil {
		return nil, mapRepositoryError("list payrolls", err)
	}

	return mapToListResponse(records), nil
}

func (s *service) GetByID(ctx context.Context, organizationID string, scope ReadScope, id string) (PayrollResponse, error) {
	record, err := s.findScoped(ctx, organizationID, scope, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*record), nil
}

func (s *service) GetBreakdown(ctx context.Context, organizationID string, scope ReadScope, id string) (PayrollBreakdownResponse, error) {
	record, err := s.findScoped(ctx, organizationID, scope, id)
	if err != nil {
		return PayrollBreakdownResponse{}, err
	}

	bonuses, allowances, deductions := splitLineItems(record.LineItems)
	items := make([]LineItemResponse, 0, len(record.LineItems))
	for _, li := range record.LineItems {
		items = append(items, LineItemResponse{
			Kind:   string(li.Kind),
			Label:  li.Label,
			Reason: li.Reason,
			Amount: money.String(li.Amount),
		})
	}

	return PayrollBreakdownResponse{
		Payroll:        mapToResponse(*record),
		BonusTotal:     money.String(sumBonuses(bonuses)),
		AllowanceTotal: money.String(sumAllowances(allowances)),
		DeductionTotal: money.String(sumDeductions(deductions)),
		LineItems:      items,
	}, nil
}

// GeneratePayslip renders the record and stores the artifact. It only writes
// the payslip columns, so it is safe to repeat.
func (s *service) GeneratePayslip(ctx context.Context, organizationID, id string) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if s.payslips.Renderer == nil || s.payslips.Storage == nil {
		return PayrollResponse{}, apperror.Configuration("payslip generation is not configured")
	}

	record, err := s.find(ctx, organizationID, id)
	if err != nil {
		return PayrollResponse{}, err
	}

	employeeName := record.EmployeeID.String()
	if record.Employee != nil && record.Employee.FullName != "" {
		employeeName = record.Employee.FullName
	}

	pdf, err := s.payslips.Renderer.Render(toPayslipDocument(*record), s.payslips.Settings, employeeName)
	if err != nil {
		log.Error("render payslip failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "render payslip failed", http.StatusInternalServerError)
	}

	path := fmt.Sprintf("%s/%s/%s.pdf", organizationID, record.PeriodStart.Format("2006-01"), record.Reference)
	stored, err := s.payslips.Storage.Save(ctx, path, pdf)
	if err != nil {
		log.Error("store payslip failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, apperror.Store("save payslip", err)
	}

	now := s.clock.Now().UTC()
	if err := s.repo.UpdatePayslip(ctx, organizationID, id, stored, now); err != nil {
		return PayrollResponse{}, mapRepositoryError("stamp payslip", err)
	}
	record.PayslipPath = &stored
	record.PayslipGeneratedAt = &now

	log.Info("payslip generated", zap.String("payroll_id", id), zap.String("path", stored))
	return mapToResponse(*record), nil
}

// OpenPayslip returns the stored payslip and a download file name.
func (s *service) OpenPayslip(ctx context.Context, organizationID string, scope ReadScope, id string) (io.ReadCloser, string, error) {
	record, err := s.findScoped(ctx, organizationID, scope, id)
	if err != nil {
		return nil, "", err
	}
	if record.PayslipPath == nil || *record.PayslipPath == "" || s.payslips.Storage == nil {
		return nil, "", payrollerrors.ErrPayslipNotGenerated
	}

	rc, err := s.payslips.Storage.Open(ctx, *record.PayslipPath)
	if err != nil {
		return nil, "", payrollerrors.ErrPayslipNotGenerated.WithCause(err)
	}
	return rc, record.Reference + ".pdf", nil
}

func (s *service) find(ctx context.Context, organizationID, id string) (*PayrollRecord, error) {
	if _, err := uuid.Parse(organizationID); err != nil {
		return nil, payrollerrors.ErrInvalidOrganizationID
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrPayrollNotFound
	}

	record, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return nil, mapRepositoryError("find payroll", err)
	}
	if record == nil {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	return record, nil
}

// findScoped hides records outside the scope as not found.
func (s *service) findScoped(ctx context.Context, organizationID string, scope ReadScope, id string) (*PayrollRecord, error) {
	record, err := s.find(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if scope.EmployeeID != "" && record.EmployeeID.String() != scope.EmployeeID {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	return record, nil
}

func parseCalculateRequest(organizationID, actorID string, req CalculateRequest) (calculationInput, error) {
	var in calculationInput
	var err error

	if in.organizationID, err = uuid.Parse(organizationID); err != nil {
		return in, payrollerrors.ErrInvalidOrganizationID
	}
	if in.actorID, err = uuid.Parse(actorID); err != nil {
		return in, payrollerrors.ErrInvalidActorID
	}
	if in.projectID, err = uuid.Parse(req.ProjectID); err != nil {
		return in, payrollerrors.ErrInvalidProjectID
	}
	if in.periodStart, err = parseDate(req.PeriodStart); err != nil {
		return in, err
	}
	if in.periodEnd, err = parseDate(req.PeriodEnd); err != nil {
		return in, err
	}
	if in.periodStart.After(in.periodEnd) {
		return in, payrollerrors.ErrInvalidDateRange
	}

	if req.Policy != nil {
		p := req.Policy
		if p.OvertimeThreshold < 0 || p.OvertimeMultiplier < 0 {
			return in, payrollerrors.ErrInvalidMoneyValue
		}
		if p.TaxRate < 0 || p.TaxRate > 1 {
			return in, payrollerrors.ErrInvalidTaxRate
		}
		in.policy = &runPolicy{
			overtimeThreshold:  decimal.NewFromFloat(p.OvertimeThreshold),
			overtimeMultiplier: decimal.NewFromFloat(p.OvertimeMultiplier),
			taxRate:            decimal.NewFromFloat(p.TaxRate),
		}
	}

	in.adjustments = make(map[uuid.UUID]runAdjustment, len(req.Adjustments))
	for _, a := range req.Adjustments {
		employeeID, err := uuid.Parse(a.EmployeeID)
		if err != nil {
			return in, payrollerrors.ErrInvalidEmployeeID
		}
		if _, dup := in.adjustments[employeeID]; dup {
			return in, payrollerrors.ErrDuplicateAdjustment
		}
		adj := runAdjustment{overtimeHours: money.FromFloat(a.OvertimeHours)}
		for _, b := range a.Bonuses {
			adj.bonuses = append(adj.bonuses, Bonus{Type: b.Type, Reason: b.Reason, Amount: money.FromFloat(b.Amount)})
		}
		for _, al := range a.Allowances {
			adj.allowances = append(adj.allowances, Allowance{Name: al.Name, Amount: money.FromFloat(al.Amount)})
		}
		for _, d := range a.Deductions {
			adj.deductions = append(adj.deductions, Deduction{Type: d.Type, Amount: money.FromFloat(d.Amount)})
		}
		in.adjustments[employeeID] = adj
	}
	in.breakdown = in.policy != nil || len(in.adjustments) > 0

	return in, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func toPayslipDocument(r PayrollRecord) payslip.Document {
	lines := make([]payslip.Line, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		lines = append(lines, payslip.Line{Kind: string(li.Kind), Label: li.Label, Amount: li.Amount})
	}
	return payslip.Document{
		Reference:        r.Reference,
		ProjectID:        r.ProjectID.String(),
		PeriodStart:      r.PeriodStart,
		PeriodEnd:        r.PeriodEnd,
		HoursWorked:      r.HoursWorked,
		HourlyRate:       r.HourlyRate,
		TaskPay:          r.TaskPay,
		OvertimeHours:    r.OvertimeHours,
		OvertimePay:      r.OvertimePay,
		ApprovedExpenses: r.ApprovedExpenses,
		GrossPay:         r.GrossPay,
		NetPay:           r.NetPay,
		Status:           r.Status,
		Lines:            lines,
	}
}

func mapToCalculateResponse(in calculationInput, created []PayrollRecord) CalculateResponse {
	return CalculateResponse{
		ProjectID:   in.projectID.String(),
		PeriodStart: in.periodStart.Format(dateLayout),
		PeriodEnd:   in.periodEnd.Format(dateLayout),
		Created:     len(created),
		Payrolls:    mapToListResponse(created),
	}
}

func mapToResponse(r PayrollRecord) PayrollResponse {
	resp := PayrollResponse{
		ID:                  r.ID.String(),
		Reference:           r.Reference,
		OrganizationID:      r.OrganizationID.String(),
		EmployeeID:          r.EmployeeID.String(),
		ProjectID:           r.ProjectID.String(),
		PeriodStart:         r.PeriodStart.Format(dateLayout),
		PeriodEnd:           r.PeriodEnd.Format(dateLayout),
		HoursWorked:         money.String(r.HoursWorked),
		HourlyRate:          money.String(r.HourlyRate),
		TaskPay:             money.String(r.TaskPay),
		OvertimeHours:       money.String(r.OvertimeHours),
		OvertimePay:         money.String(r.OvertimePay),
		ApprovedExpenses:    money.String(r.ApprovedExpenses),
		GrossPay:            money.String(r.GrossPay),
		NetPay:              money.String(r.NetPay),
		Status:              r.Status,
		GeneratedBy:         r.GeneratedBy.String(),
		GeneratedAt:         r.GeneratedAt.Format(time.RFC3339),
		TaskIDsProcessed:    nonNil(r.TaskIDsProcessed),
		ExpenseIDsProcessed: nonNil(r.ExpenseIDsProcessed),
		ApprovalNotes:       r.ApprovalNotes,
		RejectionReason:     r.RejectionReason,
		PayslipAvailable:    r.PayslipPath != nil && *r.PayslipPath != "",
	}
	if r.Employee != nil {
		resp.EmployeeName = r.Employee.FullName
	}
	if r.ApprovedBy != nil {
		v := r.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if r.ApprovedAt != nil {
		v := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if r.PayslipGeneratedAt != nil {
		v := r.PayslipGeneratedAt.Format(time.RFC3339)
		resp.PayslipGeneratedAt = &v
	}
	return resp
}

func mapToListResponse(records []PayrollRecord) []PayrollResponse {
	resp := make([]PayrollResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, mapToResponse(r))
	}
	return resp
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
