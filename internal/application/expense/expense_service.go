package expense

import (
	"context"
	"time"

	appaudit "github.com/invoicemonk/backend/internal/application/audit"
	"github.com/invoicemonk/backend/internal/domain/audit"
	"github.com/invoicemonk/backend/internal/domain/expense"
	"github.com/invoicemonk/backend/internal/domain/ledger"
	"github.com/invoicemonk/backend/internal/domain/shared"
	"github.com/invoicemonk/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service handles expense recording and lifecycle
type Service struct {
	expenseRepo expense.Repository
	accountRepo ledger.CurrencyAccountRepository
	auditor     appaudit.Recorder
	logger      *zap.Logger
}

// NewService creates a new expense service
func NewService(
	expenseRepo expense.Repository,
	accountRepo ledger.CurrencyAccountRepository,
	auditor appaudit.Recorder,
	logger *zap.Logger,
) *Service {
	return &Service{
		expenseRepo: expenseRepo,
		accountRepo: accountRepo,
		auditor:     auditor,
		logger:      logger,
	}
}

// RecordInput contains input for recording an expense
type RecordInput struct {
	BusinessID        uuid.UUID
	ActorID           uuid.UUID
	CurrencyAccountID uuid.UUID
	Category          expense.Category
	Amount            decimal.Decimal
	Description       string
	IncurredAt        time.Time
}

// UpdateInput contains input for updating a recorded expense
type UpdateInput struct {
	Category    expense.Category
	Amount      decimal.Decimal
	Description string
	IncurredAt  time.Time
}

// ExpenseDTO represents an expense record
type ExpenseDTO struct {
	ID                uuid.UUID       `json:"id"`
	ExpenseNumber     string          `json:"expense_number"`
	CurrencyAccountID uuid.UUID       `json:"currency_account_id"`
	Currency          string          `json:"currency"`
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	PrimaryEquivalent decimal.Decimal `json:"primary_equivalent"`
	Description       string          `json:"description"`
	IncurredAt        time.Time       `json:"incurred_at"`
	Status            string          `json:"status"`
	CancelledAt       *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason      string          `json:"cancel_reason,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ListResult represents a paginated expense list
type ListResult struct {
	Expenses   []ExpenseDTO `json:"expenses"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

// Record creates a new expense against one of the business's currency
// accounts. The account's exchange rate is captured on the record.
func (s *Service) Record(ctx context.Context, input RecordInput) (*ExpenseDTO, error) {
	account, err := s.accountRepo.FindByIDForBusiness(ctx, input.BusinessID, input.CurrencyAccountID)
	if err != nil {
		return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Currency account not found")
	}
	if !account.CanCreateDocuments() {
		return nil, shared.NewDomainError("ACCOUNT_ARCHIVED", "Archived accounts cannot take new expenses")
	}

	amount, err := valueobject.NewMoney(input.Amount, account.Currency)
	if err != nil {
		return nil, err
	}

	number, err := s.expenseRepo.NextExpenseNumber(ctx, input.BusinessID, time.Now().UTC().Year())
	if err != nil {
		s.logger.Error("Failed to reserve expense number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record expense")
	}

	exp, err := expense.NewExpense(input.BusinessID, number, account.ID, account.Currency,
		account.ExchangeRateToPrimary, input.Category, amount, input.Description, input.IncurredAt)
	if err != nil {
		return nil, err
	}
	exp.SetCreatedBy(input.ActorID)

	if err := s.expenseRepo.Save(ctx, exp); err != nil {
		s.logger.Error("Failed to save expense", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record expense")
	}

	s.logger.Info("Expense recorded",
		zap.String("business_id", input.BusinessID.String()),
		zap.String("expense_number", number),
		zap.String("amount", amount.String()))

	if err := s.auditor.Record(ctx, input.BusinessID, &input.ActorID, audit.ActionExpenseRecorded, "Expense", exp.ID,
		map[string]string{"expense_number": number, "category": input.Category.String()}); err != nil {
		s.logger.Warn("Failed to audit expense", zap.Error(err))
	}

	dto := s.toDTO(exp)
	return &dto, nil
}

// Update edits a recorded expense. Cancelled expenses are immutable.
func (s *Service) Update(ctx context.Context, businessID, expenseID uuid.UUID, input UpdateInput) (*ExpenseDTO, error) {
	exp, err := s.expenseRepo.FindByIDForBusiness(ctx, businessID, expenseID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	amount, err := valueobject.NewMoney(input.Amount, exp.Currency)
	if err != nil {
		return nil, err
	}

	if err := exp.Update(input.Category, amount, input.Description, input.IncurredAt); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, exp); err != nil {
		s.logger.Error("Failed to save expense", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update expense")
	}

	dto := s.toDTO(exp)
	return &dto, nil
}

// Cancel voids an expense record with a reason
func (s *Service) Cancel(ctx context.Context, businessID, actorID, expenseID uuid.UUID, reason string) (*ExpenseDTO, error) {
	exp, err := s.expenseRepo.FindByIDForBusiness(ctx, businessID, expenseID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := exp.Cancel(reason); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, exp); err != nil {
		s.logger.Error("Failed to save expense", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel expense")
	}

	dto := s.toDTO(exp)
	return &dto, nil
}

// Get returns one expense
func (s *Service) Get(ctx context.Context, businessID, expenseID uuid.UUID) (*ExpenseDTO, error) {
	exp, err := s.expenseRepo.FindByIDForBusiness(ctx, businessID, expenseID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	dto := s.toDTO(exp)
	return &dto, nil
}

// List returns a filtered page of expenses
func (s *Service) List(ctx context.Context, businessID uuid.UUID, filter expense.Filter) (*ListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	expenses, total, err := s.expenseRepo.FindAllForBusiness(ctx, businessID, filter)
	if err != nil {
		s.logger.Error("Failed to list expenses", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list expenses")
	}

	dtos := make([]ExpenseDTO, len(expenses))
	for i := range expenses {
		dtos[i] = s.toDTO(&expenses[i])
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &ListResult{
		Expenses:   dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) toDTO(e *expense.Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:                e.ID,
		ExpenseNumber:     e.ExpenseNumber,
		CurrencyAccountID: e.CurrencyAccountID,
		Currency:          e.Currency.String(),
		Category:          e.Category.String(),
		Amount:            e.Amount,
		PrimaryEquivalent: e.Amount.Mul(e.RateToPrimary),
		Description:       e.Description,
		IncurredAt:        e.IncurredAt,
		Status:            string(e.Status),
		CancelledAt:       e.CancelledAt,
		CancelReason:      e.CancelReason,
		CreatedAt:         e.CreatedAt,
	}
}
