package services

import (
	"errors"
	"fmt"

	"revive/internal/domain"
	"revive/internal/repos"
	"revive/internal/validate"
)

// ErrBadCreds covers wrong username, wrong password and a not-yet-approved
// account alike; the login page must not reveal which one it was.
var ErrBadCreds = errors.New("invalid username or password")

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

// Register creates a pending account. The role is always "user"; escalation
// to admin only happens through seed data.
func (s *AuthService) Register(username, password, contact, address string) error {
	username, ok := validate.Username(username)
	if !ok {
		return fmt.Errorf("%w: username needs at least %d characters", domain.ErrValidation, validate.MinUsername)
	}
	password, ok = validate.Password(password)
	if !ok {
		return fmt.Errorf("%w: password needs at least %d characters", domain.ErrValidation, validate.MinPassword)
	}
	contact, ok = validate.Required(contact)
	if !ok {
		return fmt.Errorf("%w: contact must not be empty", domain.ErrValidation)
	}
	address, ok = validate.Required(address)
	if !ok {
		return fmt.Errorf("%w: address must not be empty", domain.ErrValidation)
	}

	return s.Users.Insert(domain.User{
		Username: username,
		Password: password,
		Role:     domain.RoleUser,
		Status:   domain.StatusPending,
		Contact:  contact,
		Address:  address,
	})
}

// Authenticate compares the plaintext password for the named user. With
// requireApproved set, a pending account fails exactly like a wrong password.
func (s *AuthService) Authenticate(username, password string, requireApproved bool) bool {
	u, err := s.Users.ByUsername(username)
	if err != nil || u == nil {
		return false
	}
	if requireApproved && u.Status != domain.StatusApproved {
		return false
	}
	return u.Password == password
}

// Login authenticates for the main application (approved accounts only) and
// binds the session.
func (s *AuthService) Login(sid, username, password string) (*domain.User, error) {
	if !s.Authenticate(username, password, true) {
		return nil, ErrBadCreds
	}
	u, err := s.Users.ByUsername(username)
	if err != nil || u == nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// PendingUsers lists accounts awaiting approval, oldest first. Admin only;
// the acting user is passed in per call, never read from ambient state.
func (s *AuthService) PendingUsers(actor *domain.User) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: approving users requires the admin role", domain.ErrForbidden)
	}
	return s.Users.Pending()
}

// Approve flips a pending account to approved. Re-approving is a no-op
// success; changed reports whether any transition happened.
func (s *AuthService) Approve(actor *domain.User, username string) (changed bool, err error) {
	if !actor.IsAdmin() {
		return false, fmt.Errorf("%w: approving users requires the admin role", domain.ErrForbidden)
	}
	username, ok := validate.Required(username)
	if !ok {
		return false, fmt.Errorf("%w: username must not be empty", domain.ErrValidation)
	}

	u, err := s.Users.ByUsername(username)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, fmt.Errorf("%w: user %q", domain.ErrNotFound, username)
	}
	if u.Status == domain.StatusApproved {
		return false, nil
	}
	if err := s.Users.SetStatus(username, domain.StatusApproved); err != nil {
		return false, err
	}
	return true, nil
}
