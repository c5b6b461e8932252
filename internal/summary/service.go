package summary

import (
	"context"
	"time"

	"campusexpense/internal/store"
)

// BudgetStore and friends are the slices of the store layer the
// aggregation needs.
type BudgetStore interface {
	GetAllByUser(ctx context.Context, userID string) ([]store.Budget, error)
	TotalForUser(ctx context.Context, userID string) (int64, error)
}

type CategoryStore interface {
	GetAllByUser(ctx context.Context, userID string) ([]store.Category, error)
}

type ExpenseStore interface {
	TotalForRange(ctx context.Context, userID string, startMillis, endMillis int64) (int64, error)
	CountForRange(ctx context.Context, userID string, startMillis, endMillis int64) (int, error)
	TotalForCategoryAndRange(ctx context.Context, userID, categoryID string, startMillis, endMillis int64) (int64, error)
}

// BreakdownItem is derived on every query and never persisted.
type BreakdownItem struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	BudgetAmount int64  `json:"budget_amount"`
	SpentAmount  int64  `json:"spent_amount"`
	Percentage   int    `json:"percentage"`
}

type MonthSummary struct {
	Month            string `json:"month"`
	TotalSpent       int64  `json:"total_spent"`
	TransactionCount int    `json:"transaction_count"`
	AvgPerDay        int64  `json:"avg_per_day"`
	TotalBudget      int64  `json:"total_budget"`
	Remaining        int64  `json:"remaining"`
}

type Service struct {
	budgets    BudgetStore
	categories CategoryStore
	expenses   ExpenseStore
	loc        *time.Location
}

func NewService(budgets BudgetStore, categories CategoryStore, expenses ExpenseStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		budgets:    budgets,
		categories: categories,
		expenses:   expenses,
		loc:        loc,
	}
}

func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) TotalSpentForMonth(ctx context.Context, userID string, month Month) (int64, error) {
	start, end := month.Range(s.loc)
	return s.expenses.TotalForRange(ctx, userID, start, end)
}

func (s *Service) TransactionCountForMonth(ctx context.Context, userID string, month Month) (int, error) {
	start, end := month.Range(s.loc)
	return s.expenses.CountForRange(ctx, userID, start, end)
}

// CurrentBudget sums every budget row for the user. Weekly and monthly
// budgets are added together as-is.
func (s *Service) CurrentBudget(ctx context.Context, userID string) (int64, error) {
	return s.budgets.TotalForUser(ctx, userID)
}

func (s *Service) MonthSummary(ctx context.Context, userID string, month Month) (MonthSummary, error) {
	totalSpent, err := s.TotalSpentForMonth(ctx, userID, month)
	if err != nil {
		return MonthSummary{}, err
	}
	count, err := s.TransactionCountForMonth(ctx, userID, month)
	if err != nil {
		return MonthSummary{}, err
	}
	totalBudget, err := s.CurrentBudget(ctx, userID)
	if err != nil {
		return MonthSummary{}, err
	}
	days := month.Days()
	avg := int64(0)
	if days > 0 {
		avg = totalSpent / int64(days)
	}
	return MonthSummary{
		Month:            month.String(),
		TotalSpent:       totalSpent,
		TransactionCount: count,
		AvgPerDay:        avg,
		TotalBudget:      totalBudget,
		Remaining:        totalBudget - totalSpent,
	}, nil
}

// Breakdown produces one item per budget, in budget store order. A budget
// whose category no longer exists for the user is skipped entirely.
func (s *Service) Breakdown(ctx context.Context, userID string, month Month) ([]BreakdownItem, error) {
	start, end := month.Range(s.loc)
	budgets, err := s.budgets.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]BreakdownItem, 0, len(budgets))
	if len(budgets) == 0 {
		return items, nil
	}
	categories, err := s.categories.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}
	for _, budget := range budgets {
		name, ok := names[budget.CategoryID]
		if !ok {
			continue
		}
		spent, err := s.expenses.TotalForCategoryAndRange(ctx, userID, budget.CategoryID, start, end)
		if err != nil {
			return nil, err
		}
		items = append(items, BreakdownItem{
			CategoryID:   budget.CategoryID,
			CategoryName: name,
			BudgetAmount: budget.Amount,
			SpentAmount:  spent,
			Percentage:   percentage(spent, budget.Amount),
		})
	}
	return items, nil
}

// percentage truncates toward zero; 150/200 yields 75, a zero budget
// yields 0 regardless of spend.
func percentage(spent, budget int64) int {
	if budget <= 0 {
		return 0
	}
	return int(spent * 100 / budget)
}
