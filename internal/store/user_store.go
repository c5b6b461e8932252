package store

import "context"

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

type userRow struct {
	ID           string `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    any    `db:"created_at"`
}

func (s *UserStore) Create(ctx context.Context, tx Execer, id, username, passwordHash string) error {
	query := `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
	`
	_, err := tx.ExecContext(ctx, query, id, username, passwordHash)
	return err
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (map[string]any, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":            row.ID,
		"username":      row.Username,
		"password_hash": row.PasswordHash,
		"created_at":    row.CreatedAt,
	}, nil
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (map[string]any, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `SELECT id, username, created_at FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":         row.ID,
		"username":   row.Username,
		"created_at": row.CreatedAt,
	}, nil
}
