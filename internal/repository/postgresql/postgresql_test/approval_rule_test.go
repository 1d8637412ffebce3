package postgresqltest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenseflow/expense-backend-go/internal/domain/approval"
	"github.com/expenseflow/expense-backend-go/internal/domain/user"
)

func TestRuleService_SaveAndGet(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newTestServices(db)

	companyID := createTestCompany(t, ctx, db)
	first := createTestUser(t, ctx, db, companyID, "first@acme.test", user.RoleManager, nil)
	second := createTestUser(t, ctx, db, companyID, "second@acme.test", user.RoleManager, nil)

	pct := 60
	ruleType := "percentage"
	saved, err := svc.rules.SaveRule(ctx, companyID, approval.SaveRuleRequest{
		RuleType:           &ruleType,
		PercentageRequired: &pct,
		IsManagerApprover:  true,
		Steps: []approval.StepInput{
			{ApproverID: first.ID},
			{ApproverID: ""},
			{ApproverID: second.ID},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, saved.RuleType)
	assert.Equal(t, approval.RuleTypePercentage, *saved.RuleType)
	require.NotNil(t, saved.PercentageRequired)
	assert.Equal(t, 60, *saved.PercentageRequired)
	assert.True(t, saved.IsManagerApprover)

	// Blank rows dropped, remaining steps renumbered from 1.
	require.Len(t, saved.Steps, 2)
	assert.Equal(t, first.ID, saved.Steps[0].ApproverID)
	assert.Equal(t, 1, saved.Steps[0].StepOrder)
	assert.Equal(t, second.ID, saved.Steps[1].ApproverID)
	assert.Equal(t, 2, saved.Steps[1].StepOrder)

	fetched, err := svc.rules.GetRule(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.Len(t, fetched.Steps, 2)
}

func TestRuleService_SaveReplacesStepsAndClearsStaleFields(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newTestServices(db)

	companyID := createTestCompany(t, ctx, db)
	first := createTestUser(t, ctx, db, companyID, "first@acme.test", user.RoleManager, nil)
	second := createTestUser(t, ctx, db, companyID, "second@acme.test", user.RoleManager, nil)

	pct := 80
	ruleType := "percentage"
	_, err := svc.rules.SaveRule(ctx, companyID, approval.SaveRuleRequest{
		RuleType:           &ruleType,
		PercentageRequired: &pct,
		Steps:              []approval.StepInput{{ApproverID: first.ID}},
	})
	require.NoError(t, err)

	// Switch to plain sequential: percentage must not survive the edit.
	resaved, err := svc.rules.SaveRule(ctx, companyID, approval.SaveRuleRequest{
		Steps: []approval.StepInput{{ApproverID: second.ID}},
	})
	require.NoError(t, err)

	assert.Nil(t, resaved.RuleType)
	assert.Nil(t, resaved.PercentageRequired)
	require.Len(t, resaved.Steps, 1)
	assert.Equal(t, second.ID, resaved.Steps[0].ApproverID)
}

func TestRuleService_RejectsEmployeeApprover(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newTestServices(db)

	companyID := createTestCompany(t, ctx, db)
	worker := createTestUser(t, ctx, db, companyID, "worker@acme.test", user.RoleEmployee, nil)

	_, err := svc.rules.SaveRule(ctx, companyID, approval.SaveRuleRequest{
		Steps: []approval.StepInput{{ApproverID: worker.ID}},
	})
	assert.ErrorIs(t, err, approval.ErrApproverNotAllowed)
}
