package migrate

// All migrations in version order. Version 5 normalizes category
// ownership: before it, category rows were shared by every user; after
// it, each row belongs to exactly one user and budgets/expenses point at
// the per-user copies.
var All = []Migration{
	{
		Version: 1,
		Name:    "users",
		Statements: []string{
			`CREATE TABLE users (
				id text PRIMARY KEY,
				username text UNIQUE NOT NULL,
				password_hash text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now()
			)`,
		},
	},
	{
		Version: 2,
		Name:    "categories_and_expenses",
		Statements: []string{
			`CREATE TABLE categories (
				id text PRIMARY KEY,
				name text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now()
			)`,
			`CREATE TABLE expenses (
				id text PRIMARY KEY,
				user_id text NOT NULL REFERENCES users (id),
				category_id text NOT NULL,
				amount bigint NOT NULL,
				spent_at_millis bigint NOT NULL,
				note text NOT NULL DEFAULT '',
				created_at timestamptz NOT NULL DEFAULT now()
			)`,
			`CREATE INDEX idx_expenses_user_spent ON expenses (user_id, spent_at_millis)`,
		},
	},
	{
		Version: 3,
		Name:    "budgets",
		Statements: []string{
			`CREATE TABLE budgets (
				id text PRIMARY KEY,
				user_id text NOT NULL REFERENCES users (id),
				category_id text NOT NULL,
				amount bigint NOT NULL,
				period text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now()
			)`,
			`CREATE INDEX idx_budgets_user ON budgets (user_id)`,
		},
	},
	{
		Version: 4,
		Name:    "audit_and_display_rates",
		Statements: []string{
			`CREATE TABLE audit_logs (
				id text PRIMARY KEY,
				actor_user_id text,
				action text NOT NULL,
				entity_type text NOT NULL,
				entity_id text NOT NULL,
				data text NOT NULL DEFAULT '',
				created_at timestamptz NOT NULL DEFAULT now()
			)`,
			`CREATE TABLE display_rates (
				id text PRIMARY KEY,
				currency text NOT NULL,
				rate numeric NOT NULL,
				is_active boolean NOT NULL DEFAULT TRUE,
				created_by text,
				created_at timestamptz NOT NULL DEFAULT now(),
				deleted_at timestamptz
			)`,
			`CREATE INDEX idx_expenses_user_category_spent ON expenses (user_id, category_id, spent_at_millis)`,
		},
	},
	{
		Version: 5,
		Name:    "category_ownership",
		// Fans every shared category out into one row per owning user,
		// deduplicated by (user, name), then rewrites budget and expense
		// references through the (old id, user) -> new id mapping. Rows
		// whose category was already orphaned keep their old reference
		// and stay orphaned.
		Statements: []string{
			`CREATE TABLE category_pairs (old_category_id text, user_id text, name text)`,
			`INSERT INTO category_pairs (old_category_id, user_id, name)
				SELECT c.id, b.user_id, c.name FROM categories c JOIN budgets b ON b.category_id = c.id`,
			`INSERT INTO category_pairs (old_category_id, user_id, name)
				SELECT c.id, e.user_id, c.name FROM categories c JOIN expenses e ON e.category_id = c.id`,
			`CREATE TABLE categories_user (
				id text PRIMARY KEY DEFAULT gen_random_uuid()::text,
				name text NOT NULL,
				user_id text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now()
			)`,
			`INSERT INTO categories_user (name, user_id)
				SELECT DISTINCT name, user_id FROM category_pairs`,
			`CREATE TABLE cat_map (old_category_id text, user_id text, new_category_id text)`,
			`INSERT INTO cat_map (old_category_id, user_id, new_category_id)
				SELECT DISTINCT p.old_category_id, p.user_id, cu.id
				FROM category_pairs p
				JOIN categories_user cu ON cu.name = p.name AND cu.user_id = p.user_id`,
			`UPDATE budgets SET category_id = (
					SELECT new_category_id FROM cat_map
					WHERE cat_map.old_category_id = budgets.category_id AND cat_map.user_id = budgets.user_id
				)
				WHERE EXISTS (
					SELECT 1 FROM cat_map
					WHERE cat_map.old_category_id = budgets.category_id AND cat_map.user_id = budgets.user_id
				)`,
			`UPDATE expenses SET category_id = (
					SELECT new_category_id FROM cat_map
					WHERE cat_map.old_category_id = expenses.category_id AND cat_map.user_id = expenses.user_id
				)
				WHERE EXISTS (
					SELECT 1 FROM cat_map
					WHERE cat_map.old_category_id = expenses.category_id AND cat_map.user_id = expenses.user_id
				)`,
			`DROP TABLE categories`,
			`ALTER TABLE categories_user RENAME TO categories`,
			`DROP TABLE category_pairs`,
			`DROP TABLE cat_map`,
			`CREATE INDEX idx_categories_user ON categories (user_id)`,
		},
	},
}
