package store

import "context"

type CategoryStore struct {
	db DB
}

type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	UserID    string `db:"user_id"`
	CreatedAt any    `db:"created_at"`
}

func NewCategoryStore(db DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) Create(ctx context.Context, tx Execer, id, userID, name string) error {
	query := `
		INSERT INTO categories (id, name, user_id)
		VALUES ($1, $2, $3)
	`
	_, err := tx.ExecContext(ctx, query, id, name, userID)
	return err
}

func (s *CategoryStore) GetAllByUser(ctx context.Context, userID string) ([]Category, error) {
	var rows []Category
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, user_id, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CategoryStore) GetByID(ctx context.Context, categoryID, userID string) (Category, error) {
	var row Category
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, user_id, created_at
		FROM categories
		WHERE id = $1 AND user_id = $2
	`, categoryID, userID)
	if err != nil {
		return Category{}, err
	}
	return row, nil
}

func (s *CategoryStore) Rename(ctx context.Context, tx Execer, categoryID, userID, name string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE categories
		SET name = $1
		WHERE id = $2 AND user_id = $3
	`, name, categoryID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a category without touching budgets or expenses that
// reference it. Orphaned references are skipped by the breakdown query.
func (s *CategoryStore) Delete(ctx context.Context, tx Execer, categoryID, userID string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM categories
		WHERE id = $1 AND user_id = $2
	`, categoryID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
