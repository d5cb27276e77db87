package database

// Amount columns are stored as TEXT and parsed into decimals; REAL would
// reintroduce binary-float currency math.
const schema = `
CREATE TABLE IF NOT EXISTS positions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    symbol TEXT,
    quantity TEXT NOT NULL,
    cost_basis_per_unit TEXT NOT NULL,
    current_price_per_unit TEXT NOT NULL,
    acquired_on TEXT NOT NULL,
    account_id TEXT REFERENCES accounts(id) ON DELETE SET NULL,
    interest_rate TEXT,
    maturity_date TEXT,
    notes TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_user ON positions(user_id);
CREATE INDEX IF NOT EXISTS idx_positions_user_category ON positions(user_id, category);

CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    bank_name TEXT NOT NULL,
    account_number TEXT NOT NULL,
    balance TEXT NOT NULL DEFAULT '0'
);

CREATE INDEX IF NOT EXISTS idx_accounts_user ON accounts(user_id);

CREATE TABLE IF NOT EXISTS goals (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    category TEXT NOT NULL,
    target_amount TEXT NOT NULL,
    target_date TEXT,
    nickname TEXT,
    created_at TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_goals_user_category ON goals(user_id, category);

CREATE TABLE IF NOT EXISTS net_worth_snapshots (
    user_id TEXT NOT NULL,
    as_of TEXT NOT NULL,
    total_invested TEXT NOT NULL,
    PRIMARY KEY (user_id, as_of)
);
`

// Migrate creates the schema if it does not exist
func (db *DB) Migrate() error {
	_, err := db.conn.Exec(schema)
	return err
}
