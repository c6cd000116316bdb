package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS settings (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    color                TEXT NOT NULL DEFAULT '',
    weekly_limit         TEXT NOT NULL,
    position             INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    seq                  INTEGER PRIMARY KEY AUTOINCREMENT,
    id                   TEXT NOT NULL,
    category_id          TEXT NOT NULL,
    label                TEXT NOT NULL,
    amount               TEXT NOT NULL,
    date                 TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category_id);
`

const keyWeeklyBudget = "weekly_budget"
