package store

import "context"

// RateStore keeps display-currency rates. Stored amounts stay in the base
// currency; rates only affect how clients render them.
type RateStore struct {
	db DB
}

type displayRateRow struct {
	ID        string `db:"id"`
	Currency  string `db:"currency"`
	Rate      string `db:"rate"`
	CreatedAt any    `db:"created_at"`
}

func NewRateStore(db DB) *RateStore {
	return &RateStore{db: db}
}

func (s *RateStore) GetActive(ctx context.Context, currency string) (map[string]any, error) {
	var row displayRateRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, currency, rate, created_at
		FROM display_rates
		WHERE currency = $1 AND is_active = TRUE
	`, currency)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":         row.ID,
		"currency":   row.Currency,
		"rate":       row.Rate,
		"created_at": row.CreatedAt,
	}, nil
}

func (s *RateStore) SetRate(ctx context.Context, tx Tx, currency, rate, actorID string) (string, error) {
	var id string
	err := tx.GetContext(ctx, &id, `
		INSERT INTO display_rates (id, currency, rate, is_active, created_by)
		VALUES (gen_random_uuid()::text, $1, $2, TRUE, $3)
		RETURNING id
	`, currency, rate, actorID)
	if err != nil {
		return "", err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE display_rates
		SET is_active = FALSE, deleted_at = NOW()
		WHERE currency = $1 AND id <> $2 AND is_active = TRUE
	`, currency, id)
	if err != nil {
		return "", err
	}
	return id, nil
}
