package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS messes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    role TEXT NOT NULL,
    join_date TEXT NOT NULL,
    UNIQUE (mess_id, email),
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS deposits (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    member_id TEXT NOT NULL DEFAULT '',
    member_name TEXT NOT NULL DEFAULT '',
    member_email TEXT NOT NULL DEFAULT '',
    amount REAL NOT NULL,
    date TEXT NOT NULL,
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    date TEXT NOT NULL,
    amount REAL NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS shared_expenses (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    date TEXT NOT NULL,
    amount REAL NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS meal_counts (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    date TEXT NOT NULL,
    member_id TEXT NOT NULL,
    member_name TEXT NOT NULL DEFAULT '',
    breakfast INTEGER NOT NULL,
    lunch INTEGER NOT NULL,
    dinner INTEGER NOT NULL,
    total INTEGER NOT NULL,
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS debt_requests (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    from_id TEXT NOT NULL,
    from_name TEXT NOT NULL DEFAULT '',
    from_email TEXT NOT NULL DEFAULT '',
    to_id TEXT NOT NULL,
    to_name TEXT NOT NULL DEFAULT '',
    to_email TEXT NOT NULL DEFAULT '',
    amount REAL NOT NULL,
    date TEXT NOT NULL,
    status TEXT NOT NULL,
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS debts (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    from_id TEXT NOT NULL,
    to_id TEXT NOT NULL,
    amount REAL NOT NULL,
    date TEXT NOT NULL,
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    name TEXT NOT NULL,
    assigned_to TEXT NOT NULL,
    due_date TEXT NOT NULL,
    status TEXT NOT NULL,
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS notices (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    message TEXT NOT NULL,
    author TEXT NOT NULL,
    author_email TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS reviews (
    id TEXT PRIMARY KEY,
    author TEXT NOT NULL,
    author_email TEXT NOT NULL DEFAULT '',
    rating INTEGER NOT NULL,
    comment TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_members_mess_id ON members(mess_id);
CREATE INDEX IF NOT EXISTS idx_deposits_mess_id ON deposits(mess_id);
CREATE INDEX IF NOT EXISTS idx_expenses_mess_id ON expenses(mess_id);
CREATE INDEX IF NOT EXISTS idx_shared_expenses_mess_id ON shared_expenses(mess_id);
CREATE INDEX IF NOT EXISTS idx_meal_counts_mess_id ON meal_counts(mess_id);
CREATE INDEX IF NOT EXISTS idx_debt_requests_mess_id ON debt_requests(mess_id);
CREATE INDEX IF NOT EXISTS idx_debts_mess_id ON debts(mess_id);
CREATE INDEX IF NOT EXISTS idx_tasks_mess_id ON tasks(mess_id);
CREATE INDEX IF NOT EXISTS idx_notices_mess_id ON notices(mess_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
