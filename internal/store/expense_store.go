package store

import (
	"context"
	"database/sql"
)

type ExpenseStore struct {
	db DB
}

type Expense struct {
	ID            string `db:"id"`
	UserID        string `db:"user_id"`
	CategoryID    string `db:"category_id"`
	Amount        int64  `db:"amount"`
	SpentAtMillis int64  `db:"spent_at_millis"`
	Note          string `db:"note"`
	CreatedAt     any    `db:"created_at"`
}

func NewExpenseStore(db DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

func (s *ExpenseStore) Create(ctx context.Context, tx Execer, id, userID, categoryID string, amount, spentAtMillis int64, note string) error {
	query := `
		INSERT INTO expenses (id, user_id, category_id, amount, spent_at_millis, note)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query, id, userID, categoryID, amount, spentAtMillis, note)
	return err
}

func (s *ExpenseStore) ListByRange(ctx context.Context, userID string, startMillis, endMillis int64) ([]Expense, error) {
	var rows []Expense
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, category_id, amount, spent_at_millis, note, created_at
		FROM expenses
		WHERE user_id = $1 AND spent_at_millis BETWEEN $2 AND $3
		ORDER BY spent_at_millis DESC, id
	`, userID, startMillis, endMillis)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ExpenseStore) TotalForRange(ctx context.Context, userID string, startMillis, endMillis int64) (int64, error) {
	var total sql.NullInt64
	err := s.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND spent_at_millis BETWEEN $2 AND $3
	`, userID, startMillis, endMillis)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

func (s *ExpenseStore) CountForRange(ctx context.Context, userID string, startMillis, endMillis int64) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM expenses
		WHERE user_id = $1 AND spent_at_millis BETWEEN $2 AND $3
	`, userID, startMillis, endMillis)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *ExpenseStore) TotalForCategoryAndRange(ctx context.Context, userID, categoryID string, startMillis, endMillis int64) (int64, error) {
	var total sql.NullInt64
	err := s.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND category_id = $2 AND spent_at_millis BETWEEN $3 AND $4
	`, userID, categoryID, startMillis, endMillis)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}
