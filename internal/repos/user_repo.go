package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"revive/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// ByUsername returns (nil, nil) when no such user exists.
func (r *UserRepo) ByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,username,password,role,status,contact,address FROM users WHERE username=?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Insert creates a user. A username collision is reported as ErrConflict;
// uniqueness is left to the constraint rather than a pre-check so concurrent
// registrations cannot race past it.
func (r *UserRepo) Insert(u domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(username,password,role,status,contact,address)
		VALUES(?,?,?,?,?,?)
	`, u.Username, u.Password, u.Role, u.Status, u.Contact, u.Address)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: username %q is taken", domain.ErrConflict, u.Username)
		}
		return err
	}
	return nil
}

func (r *UserRepo) Pending() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `
		SELECT id,username,role,status,contact,address, '' AS password
		FROM users
		WHERE status='pending'
		ORDER BY id ASC
	`)
	return out, err
}

func (r *UserRepo) SetStatus(username, status string) error {
	_, err := r.DB.Exec(`UPDATE users SET status=? WHERE username=?`, status, username)
	return err
}

func (r *UserRepo) BindSession(sid string, userID int) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.username,u.password,u.role,u.status,u.contact,u.address
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
