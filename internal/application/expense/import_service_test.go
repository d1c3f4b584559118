package expense

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/ledger"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExpenseService_Import(t *testing.T) {
	expenseRepo := new(MockExpenseRepository)
	accountRepo := new(MockCurrencyAccountRepository)
	auditor := new(MockRecorder)
	svc := NewService(expenseRepo, accountRepo, auditor, zap.NewNop())

	businessID := uuid.New()
	actorID := uuid.New()
	account, err := ledger.NewCurrencyAccount(businessID, "Main", valueobject.USD, true, decimal.NewFromInt(1))
	require.NoError(t, err)

	accountRepo.On("FindByIDForBusiness", mock.Anything, businessID, account.ID).Return(account, nil)
	expenseRepo.On("NextExpenseNumber", mock.Anything, businessID, time.Now().UTC().Year()).Return("EXP-2026-0001", nil)
	expenseRepo.On("Save", mock.Anything, mock.AnythingOfType("*expense.Expense")).Return(nil)
	auditor.On("Record", mock.Anything, businessID, &actorID, audit.ActionExpenseRecorded, "Expense", mock.Anything, mock.Anything).Return(nil)

	file := strings.NewReader(
		"category,amount,description,incurred_at\n" +
			"travel,120.00,Taxi to airport,2026-08-01\n" +
			"software,49.99,Design tool subscription,2026-08-14\n" +
			"groceries,10.00,Not a business category,2026-08-15\n" +
			"supplies,-5.00,Negative amount,2026-08-16\n" +
			"supplies,12.50,Stationery,15/08/2026\n")

	result, err := svc.Import(context.Background(), ImportInput{
		BusinessID:        businessID,
		ActorID:           actorID,
		CurrencyAccountID: account.ID,
		File:              file,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "category", result.Errors[0].Column)
	assert.Equal(t, 4, result.Errors[0].Line)
	assert.Equal(t, "amount", result.Errors[1].Column)
	assert.Equal(t, "incurred_at", result.Errors[2].Column)
	expenseRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestExpenseService_Import_MissingColumns(t *testing.T) {
	svc := NewService(new(MockExpenseRepository), new(MockCurrencyAccountRepository), new(MockRecorder), zap.NewNop())

	_, err := svc.Import(context.Background(), ImportInput{
		BusinessID:        uuid.New(),
		ActorID:           uuid.New(),
		CurrencyAccountID: uuid.New(),
		File:              strings.NewReader("category,amount\ntravel,10\n"),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "IMPORT_INVALID_FILE", domainErr.Code)
	assert.Contains(t, domainErr.Message, "incurred_at")
}

func TestExpenseService_Import_EmptyFile(t *testing.T) {
	svc := NewService(new(MockExpenseRepository), new(MockCurrencyAccountRepository), new(MockRecorder), zap.NewNop())

	_, err := svc.Import(context.Background(), ImportInput{
		BusinessID:        uuid.New(),
		ActorID:           uuid.New(),
		CurrencyAccountID: uuid.New(),
		File:              strings.NewReader(""),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "IMPORT_INVALID_FILE", domainErr.Code)
}

func TestExpenseService_Import_BadRowsDoNotStopFile(t *testing.T) {
	expenseRepo := new(MockExpenseRepository)
	accountRepo := new(MockCurrencyAccountRepository)
	auditor := new(MockRecorder)
	svc := NewService(expenseRepo, accountRepo, auditor, zap.NewNop())

	businessID := uuid.New()
	actorID := uuid.New()
	account, err := ledger.NewCurrencyAccount(businessID, "Main", valueobject.USD, true, decimal.NewFromInt(1))
	require.NoError(t, err)

	accountRepo.On("FindByIDForBusiness", mock.Anything, businessID, account.ID).Return(account, nil)
	expenseRepo.On("NextExpenseNumber", mock.Anything, businessID, mock.Anything).Return("EXP-2026-0002", nil)
	expenseRepo.On("Save", mock.Anything, mock.AnythingOfType("*expense.Expense")).Return(nil)
	auditor.On("Record", mock.Anything, businessID, &actorID, audit.ActionExpenseRecorded, "Expense", mock.Anything, mock.Anything).Return(nil)

	file := strings.NewReader(
		"category,amount,description,incurred_at\n" +
			"travel,abc,Broken row,2026-08-01\n" +
			"supplies,12.50,Stationery,2026-08-02\n")

	result, err := svc.Import(context.Background(), ImportInput{
		BusinessID:        businessID,
		ActorID:           actorID,
		CurrencyAccountID: account.ID,
		File:              file,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)
}
