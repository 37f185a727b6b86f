package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure baseline accounts exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','admin')),
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved')),
  contact TEXT NOT NULL,
  address TEXT NOT NULL
);

-- Items
CREATE TABLE IF NOT EXISTS items(
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  description TEXT,
  contact TEXT,
  image TEXT,
  create_time TEXT,
  address TEXT,
  attributes TEXT
);
CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);

-- Sessions
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id INTEGER NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures the bootstrap admin and two demo accounts exist.
// Admin role is only ever assigned here, never through registration.
func seedUsers(db *sqlx.DB) error {
	type u struct {
		Username, Password, Role, Status, Contact, Address string
	}
	users := []u{
		{"admin", "admin123", "admin", "approved", "admin@revive.test", "Building 1"},
		{"user1", "password1", "user", "approved", "user1@revive.test", "Dorm 12-304"},
		{"user2", "password2", "user", "pending", "user2@revive.test", "Dorm 7-101"},
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(username,password,role,status,contact,address)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(username) DO NOTHING
		`, x.Username, x.Password, x.Role, x.Status, x.Contact, x.Address); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Println("[seed] baseline users ensured")
	return nil
}
