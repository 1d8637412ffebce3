package postgresqltest

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenseflow/expense-backend-go/internal/domain/approval"
	"github.com/expenseflow/expense-backend-go/internal/domain/expense"
	"github.com/expenseflow/expense-backend-go/internal/domain/user"
	"github.com/expenseflow/expense-backend-go/internal/pkg/database"
	"github.com/expenseflow/expense-backend-go/internal/pkg/exchange"
	"github.com/expenseflow/expense-backend-go/internal/repository/postgresql"
	approvalService "github.com/expenseflow/expense-backend-go/internal/service/approval"
	expenseService "github.com/expenseflow/expense-backend-go/internal/service/expense"
)

// stubExchange avoids real rate lookups in integration tests.
type stubExchange struct{}

func (stubExchange) LatestRates(ctx context.Context, base string) (exchange.Rates, error) {
	return exchange.Rates{Base: base, Rates: map[string]float64{}}, nil
}

func (stubExchange) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return amount, nil
}

type testServices struct {
	expenses  expense.ExpenseService
	decisions expense.DecisionService
	rules     approval.ApprovalRuleService
}

func newTestServices(db *database.DB) testServices {
	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	expenseApprovalRepo := postgresql.NewExpenseApprovalRepository(db)
	ruleRepo := postgresql.NewApprovalRuleRepository(db)
	stepRepo := postgresql.NewApprovalStepRepository(db)

	return testServices{
		expenses:  expenseService.NewExpenseService(db, expenseRepo, expenseApprovalRepo, ruleRepo, stepRepo, userRepo, companyRepo, stubExchange{}),
		decisions: approvalService.NewDecisionService(db, expenseRepo, expenseApprovalRepo, ruleRepo, companyRepo, stubExchange{}),
		rules:     approvalService.NewRuleService(db, ruleRepo, stepRepo, userRepo),
	}
}

func submitTestExpense(t *testing.T, ctx context.Context, svc testServices, companyID, employeeID string) expense.ExpenseDetailResponse {
	t.Helper()

	detail, err := svc.expenses.Submit(ctx, companyID, employeeID, expense.CreateExpenseRequest{
		Amount:      decimal.NewFromInt(120),
		Currency:    "USD",
		Category:    "Travel",
		Description: "Client visit",
		ExpenseDate: "2026-08-01",
	})
	require.NoError(t, err)
	return detail
}

func TestSubmit_MaterializesManagerFirstChain(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newTestServices(db)

	companyID := createTestCompany(t, ctx, db)
	manager := createTestUser(t, ctx, db, companyID, "manager@acme.test", user.RoleManager, nil)
	finance := createTestUser(t, ctx, db, companyID, "finance@acme.test", user.RoleManager, nil)
	employee := createTestUser(t, ctx, db, companyID, "employee@acme.test", user.RoleEmployee, &manager.ID)

	_, err := svc.rules.SaveRule(ctx, companyID, approval.SaveRuleRequest{
		IsManagerApprover: true,
		Steps:             []approval.StepInput{{ApproverID: finance.ID}},
	})
	require.NoError(t, err)

	detail := submitTestExpense(t, ctx, svc, companyID, employee.ID)

	assert.Equal(t, expense.StatusPending, detail.Status)
	require.Len(t, detail.Approvals, 2)

	assert.Equal(t, manager.ID, detail.Approvals[0].ApproverID)
	assert.Equal(t, 0, detail.Approvals[0].StepOrder)
	assert.Equal(t, expense.ApprovalPending, detail.Approvals[0].Status)

	// Configured step 1 is shifted past the manager slot.
	assert.Equal(t, finance.ID, detail.Approvals[1].ApproverID)
	assert.Equal(t, 2, detail.Approvals[1].StepOrder)
	assert.Equal(t, expense.ApprovalWaiting, detail.Approvals[1].Status)
}

func TestApprove_AdvancesChainThenFinalizes(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newTestServices(db)

	companyID := createTestCompany(t, ctx, db)
	manager := createTestUser(t, ctx, db, companyID, "manager@acme.test", user.RoleManager, nil)
	finance := createTestUser(t, ctx, db, companyID, "finance@acme.test", user.RoleManager, nil)
	employee := createTestUser(t, ctx, db, companyID, "employee@acme.test", user.RoleEmployee, &manager.ID)

	_, err := svc.rules.SaveRule(ctx, companyID, approval.SaveRuleRequest{
		IsManagerApprover: true,
		Steps:             []approval.StepInput{{ApproverID: finance.ID}},
	})
	require.NoError(t, err)

	detail := submitTestExpense(t, ctx, svc, companyID, employee.ID)

	// Finance acts before its turn: slot is still waiting.
	err = svc.decisions.Approve(ctx, companyID, detail.ID, finance.ID, expense.DecisionRequest{})
	assert.ErrorIs(t, err, expense.ErrApprovalNotActionable)

	// Manager approves: finance becomes pending, expense stays pending.
	require.NoError(t, svc.decisions.Approve(ctx, companyID, detail.ID, manager.ID, expense.DecisionRequest{}))

	pending, err := svc.decisions.ListPendingApprovals(ctx, finance.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, detail.ID, pending[0].ExpenseID)
	assert.Equal(t, "employee@acme.test", pending[0].EmployeeEmail)

	mid, err := svc.expenses.GetExpense(ctx, companyID, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusPending, mid.Status)

	// Finance approves: chain exhausted, sequential rule approves the expense.
	require.NoError(t, svc.decisions.Approve(ctx, companyID, detail.ID, finance.ID, expense.DecisionRequest{}))

	final, err := svc.expenses.GetExpense(ctx, companyID, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusApproved, final.Status)
}

func TestReject_IsTerminal(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newTestServices(db)

	companyID := createTestCompany(t, ctx, db)
	manager := createTestUser(t, ctx, db, companyID, "manager@acme.test", user.RoleManager, nil)
	finance := createTestUser(t, ctx, db, companyID, "finance@acme.test", user.RoleManager, nil)
	employee := createTestUser(t, ctx, db, companyID, "employee@acme.test", user.RoleEmployee, &manager.ID)

	_, err := svc.rules.SaveRule(ctx, companyID, approval.SaveRuleRequest{
		IsManagerApprover: true,
		Steps:             []approval.StepInput{{ApproverID: finance.ID}},
	})
	require.NoError(t, err)

	detail := submitTestExpense(t, ctx, svc, companyID, employee.ID)

	comment := "missing receipt"
	require.NoError(t, svc.decisions.Reject(ctx, companyID, detail.ID, manager.ID, expense.DecisionRequest{Comments: &comment}))

	final, err := svc.expenses.GetExpense(ctx, companyID, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusRejected, final.Status)

	// Nobody can act on a finalized expense.
	err = svc.decisions.Approve(ctx, companyID, detail.ID, finance.ID, expense.DecisionRequest{})
	assert.ErrorIs(t, err, expense.ErrExpenseAlreadyFinalized)
}

func TestApprove_SpecificApproverFinalizes(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newTestServices(db)

	companyID := createTestCompany(t, ctx, db)
	cfo := createTestUser(t, ctx, db, companyID, "cfo@acme.test", user.RoleManager, nil)
	employee := createTestUser(t, ctx, db, companyID, "employee@acme.test", user.RoleEmployee, nil)

	ruleType := "specific_approver"
	_, err := svc.rules.SaveRule(ctx, companyID, approval.SaveRuleRequest{
		RuleType:           &ruleType,
		SpecificApproverID: &cfo.ID,
		Steps:              []approval.StepInput{{ApproverID: cfo.ID}},
	})
	require.NoError(t, err)

	detail := submitTestExpense(t, ctx, svc, companyID, employee.ID)
	require.Len(t, detail.Approvals, 1)

	require.NoError(t, svc.decisions.Approve(ctx, companyID, detail.ID, cfo.ID, expense.DecisionRequest{}))

	final, err := svc.expenses.GetExpense(ctx, companyID, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusApproved, final.Status)
}

func TestApprove_SpecificApproverAbsent_StaysPending(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newTestServices(db)

	companyID := createTestCompany(t, ctx, db)
	cfo := createTestUser(t, ctx, db, companyID, "cfo@acme.test", user.RoleManager, nil)
	other := createTestUser(t, ctx, db, companyID, "other@acme.test", user.RoleManager, nil)
	employee := createTestUser(t, ctx, db, companyID, "employee@acme.test", user.RoleEmployee, nil)

	// The configured chain never reaches the required approver.
	ruleType := "specific_approver"
	_, err := svc.rules.SaveRule(ctx, companyID, approval.SaveRuleRequest{
		RuleType:           &ruleType,
		SpecificApproverID: &cfo.ID,
		Steps:              []approval.StepInput{{ApproverID: other.ID}},
	})
	require.NoError(t, err)

	detail := submitTestExpense(t, ctx, svc, companyID, employee.ID)

	require.NoError(t, svc.decisions.Approve(ctx, companyID, detail.ID, other.ID, expense.DecisionRequest{}))

	final, err := svc.expenses.GetExpense(ctx, companyID, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusPending, final.Status)
}

func TestApprove_SameApproverOnTwoSteps(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newTestServices(db)

	companyID := createTestCompany(t, ctx, db)
	manager := createTestUser(t, ctx, db, companyID, "manager@acme.test", user.RoleManager, nil)
	employee := createTestUser(t, ctx, db, companyID, "employee@acme.test", user.RoleEmployee, &manager.ID)

	// The manager also holds a configured step, so they appear twice in the
	// chain: step 0 and step 2.
	_, err := svc.rules.SaveRule(ctx, companyID, approval.SaveRuleRequest{
		IsManagerApprover: true,
		Steps:             []approval.StepInput{{ApproverID: manager.ID}},
	})
	require.NoError(t, err)

	detail := submitTestExpense(t, ctx, svc, companyID, employee.ID)
	require.Len(t, detail.Approvals, 2)

	require.NoError(t, svc.decisions.Approve(ctx, companyID, detail.ID, manager.ID, expense.DecisionRequest{}))

	// Their approved step-0 record must not shadow the now-pending later slot.
	require.NoError(t, svc.decisions.Approve(ctx, companyID, detail.ID, manager.ID, expense.DecisionRequest{}))

	final, err := svc.expenses.GetExpense(ctx, companyID, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusApproved, final.Status)
}

func TestListPendingApprovals_NewestFirst(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newTestServices(db)

	companyID := createTestCompany(t, ctx, db)
	manager := createTestUser(t, ctx, db, companyID, "manager@acme.test", user.RoleManager, nil)
	employee := createTestUser(t, ctx, db, companyID, "employee@acme.test", user.RoleEmployee, &manager.ID)

	_, err := svc.rules.SaveRule(ctx, companyID, approval.SaveRuleRequest{
		IsManagerApprover: true,
	})
	require.NoError(t, err)

	first := submitTestExpense(t, ctx, svc, companyID, employee.ID)
	second := submitTestExpense(t, ctx, svc, companyID, employee.ID)

	pending, err := svc.decisions.ListPendingApprovals(ctx, manager.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, second.ID, pending[0].ExpenseID)
	assert.Equal(t, first.ID, pending[1].ExpenseID)
}

func TestSubmit_NoRule_CreatesNoChain(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newTestServices(db)

	companyID := createTestCompany(t, ctx, db)
	employee := createTestUser(t, ctx, db, companyID, "employee@acme.test", user.RoleEmployee, nil)

	detail := submitTestExpense(t, ctx, svc, companyID, employee.ID)

	assert.Equal(t, expense.StatusPending, detail.Status)
	assert.Empty(t, detail.Approvals)
}
