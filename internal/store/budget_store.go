package store

import (
	"context"
	"database/sql"
)

type BudgetStore struct {
	db DB
}

type Budget struct {
	ID         string `db:"id"`
	UserID     string `db:"user_id"`
	CategoryID string `db:"category_id"`
	Amount     int64  `db:"amount"`
	Period     string `db:"period"`
	CreatedAt  any    `db:"created_at"`
}

type BudgetWithCategory struct {
	ID           string  `db:"id"`
	UserID       string  `db:"user_id"`
	CategoryID   string  `db:"category_id"`
	Amount       int64   `db:"amount"`
	Period       string  `db:"period"`
	CreatedAt    any     `db:"created_at"`
	CategoryName *string `db:"category_name"`
}

func NewBudgetStore(db DB) *BudgetStore {
	return &BudgetStore{db: db}
}

func (s *BudgetStore) Create(ctx context.Context, tx Execer, id, userID, categoryID string, amount int64, period string) error {
	query := `
		INSERT INTO budgets (id, user_id, category_id, amount, period)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.ExecContext(ctx, query, id, userID, categoryID, amount, period)
	return err
}

// GetAllByUser returns budgets in insertion order; breakdown items follow
// this order.
func (s *BudgetStore) GetAllByUser(ctx context.Context, userID string) ([]Budget, error) {
	var rows []Budget
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, category_id, amount, period, created_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *BudgetStore) ListWithCategoryNames(ctx context.Context, userID string) ([]BudgetWithCategory, error) {
	var rows []BudgetWithCategory
	err := s.db.SelectContext(ctx, &rows, `
		SELECT b.id, b.user_id, b.category_id, b.amount, b.period, b.created_at,
		       c.name AS category_name
		FROM budgets b
		LEFT JOIN categories c ON c.id = b.category_id AND c.user_id = b.user_id
		WHERE b.user_id = $1
		ORDER BY b.created_at, b.id
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExistsForCategory is the pre-insert check backing the one-budget-per-
// category rule. There is no database constraint for it.
func (s *BudgetStore) ExistsForCategory(ctx context.Context, userID, categoryID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM budgets WHERE user_id = $1 AND category_id = $2)
	`, userID, categoryID)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *BudgetStore) GetByID(ctx context.Context, budgetID, userID string) (Budget, error) {
	var row Budget
	err := s.db.GetContext(ctx, &row, `
		SELECT id, user_id, category_id, amount, period, created_at
		FROM budgets
		WHERE id = $1 AND user_id = $2
	`, budgetID, userID)
	if err != nil {
		return Budget{}, err
	}
	return row, nil
}

func (s *BudgetStore) Update(ctx context.Context, tx Execer, budgetID, userID string, amount int64, period string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE budgets
		SET amount = $1, period = $2
		WHERE id = $3 AND user_id = $4
	`, amount, period, budgetID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *BudgetStore) Delete(ctx context.Context, tx Execer, budgetID, userID string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM budgets
		WHERE id = $1 AND user_id = $2
	`, budgetID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// TotalForUser sums every budget row for the user. Weekly and monthly
// amounts are added together without period normalization.
func (s *BudgetStore) TotalForUser(ctx context.Context, userID string) (int64, error) {
	var total sql.NullInt64
	err := s.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0)
		FROM budgets
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}
