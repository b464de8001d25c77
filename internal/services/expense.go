package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/apierr"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/platform/validate"
)

const defaultCurrency = "USD"

type ExpenseInput struct {
	Category    string `json:"category" validate:"required,max=100"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents" validate:"gt=0"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
	SpentOn     string `json:"spent_on" validate:"required"`
	Vendor      string `json:"vendor" validate:"max=200"`
}

type ExpensePatch struct {
	Category    *string `json:"category" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	AmountCents *int64  `json:"amount_cents" validate:"omitempty,gt=0"`
	Currency    *string `json:"currency" validate:"omitempty,len=3"`
	SpentOn     *string `json:"spent_on"`
	Vendor      *string `json:"vendor" validate:"omitempty,max=200"`
}

type ExpenseQuery struct {
	From     string
	To       string
	Category string
}

type ExpenseSummary struct {
	From       string                        `json:"from,omitempty"`
	To         string                        `json:"to,omitempty"`
	TotalCents int64                         `json:"total_cents"`
	Count      int64                         `json:"count"`
	Categories []domain.ExpenseCategoryTotal `json:"categories"`
}

type ExpenseService interface {
	List(ctx context.Context, q ExpenseQuery) ([]*domain.Expense, error)
	Create(ctx context.Context, in ExpenseInput) (*domain.Expense, error)
	Get(ctx context.Context, expenseID uuid.UUID) (*domain.Expense, error)
	Update(ctx context.Context, expenseID uuid.UUID, patch ExpensePatch) (*domain.Expense, error)
	Delete(ctx context.Context, expenseID uuid.UUID) error
	Summary(ctx context.Context, q ExpenseQuery) (*ExpenseSummary, error)
}

type expenseService struct {
	db          *gorm.DB
	log         *logger.Logger
	expenseRepo repos.ExpenseRepo
}

func NewExpenseService(db *gorm.DB, log *logger.Logger, expenseRepo repos.ExpenseRepo) ExpenseService {
	return &expenseService{
		db:          db,
		log:         log.With("service", "ExpenseService"),
		expenseRepo: expenseRepo,
	}
}

func (es *expenseService) filter(q ExpenseQuery) (repos.ExpenseFilter, error) {
	from, err := ParseOptionalDate("from", q.From)
	if err != nil {
		return repos.ExpenseFilter{}, err
	}
	to, err := ParseOptionalDate("to", q.To)
	if err != nil {
		return repos.ExpenseFilter{}, err
	}
	if from != nil && to != nil && from.After(*to) {
		return repos.ExpenseFilter{}, apierr.BadRequest("invalid_range", "from must not be after to")
	}
	return repos.ExpenseFilter{From: from, To: to, Category: strings.TrimSpace(q.Category)}, nil
}

func (es *expenseService) List(ctx context.Context, q ExpenseQuery) ([]*domain.Expense, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	f, err := es.filter(q)
	if err != nil {
		return nil, err
	}
	return es.expenseRepo.List(ctx, nil, churchID, f)
}

func (es *expenseService) Create(ctx context.Context, in ExpenseInput) (*domain.Expense, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	spentOn, err := ParseDate("spent_on", in.SpentOn)
	if err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	e, err := es.expenseRepo.Create(ctx, nil, &domain.Expense{
		ChurchID:    churchID,
		Category:    in.Category,
		Description: in.Description,
		AmountCents: in.AmountCents,
		Currency:    currency,
		SpentOn:     spentOn,
		Vendor:      strings.TrimSpace(in.Vendor),
		RecordedBy:  userFromContext(ctx),
	})
	if err != nil {
		return nil, err
	}
	es.log.Info("expense recorded", "expense_id", e.ID, "category", e.Category, "amount_cents", e.AmountCents)
	return e, nil
}

func (es *expenseService) Get(ctx context.Context, expenseID uuid.UUID) (*domain.Expense, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e, err := es.expenseRepo.Get(ctx, nil, churchID, expenseID)
	if err != nil {
		return nil, notFound(err, "expense_not_found", "get expense")
	}
	return e, nil
}

func (es *expenseService) Update(ctx context.Context, expenseID uuid.UUID, patch ExpensePatch) (*domain.Expense, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if patch.Category != nil {
		updates["category"] = strings.ToLower(strings.TrimSpace(*patch.Category))
	}
	if patch.Currency != nil {
		updates["currency"] = strings.ToUpper(strings.TrimSpace(*patch.Currency))
	}
	if patch.SpentOn != nil {
		d, err := ParseDate("spent_on", *patch.SpentOn)
		if err != nil {
			return nil, err
		}
		updates["spent_on"] = d
	}
	setIfPresent(updates, "description", patch.Description)
	setIfPresent(updates, "amount_cents", patch.AmountCents)
	setIfPresent(updates, "vendor", patch.Vendor)
	if len(updates) > 0 {
		if err := es.expenseRepo.Update(ctx, nil, churchID, expenseID, updates); err != nil {
			return nil, notFound(err, "expense_not_found", "update expense")
		}
	}
	return es.Get(ctx, expenseID)
}

func (es *expenseService) Delete(ctx context.Context, expenseID uuid.UUID) error {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return err
	}
	if err := es.expenseRepo.Delete(ctx, nil, churchID, expenseID); err != nil {
		return notFound(err, "expense_not_found", "delete expense")
	}
	return nil
}

func (es *expenseService) Summary(ctx context.Context, q ExpenseQuery) (*ExpenseSummary, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	q.Category = ""
	f, err := es.filter(q)
	if err != nil {
		return nil, err
	}
	cats, err := es.expenseRepo.SummaryByCategory(ctx, nil, churchID, f)
	if err != nil {
		return nil, err
	}
	out := &ExpenseSummary{From: q.From, To: q.To, Categories: cats}
	if out.Categories == nil {
		out.Categories = []domain.ExpenseCategoryTotal{}
	}
	for _, c := range cats {
		out.TotalCents += c.TotalCents
		out.Count += c.Count
	}
	return out, nil
}
