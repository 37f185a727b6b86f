package services_test

import (
	"errors"
	"testing"

	"revive/internal/domain"
	"revive/internal/repos"
	"revive/internal/services"
)

func authFixture(t *testing.T) (*services.AuthService, *repos.UserRepo) {
	t.Helper()
	users := repos.NewUserRepo(memdb(t))
	return services.NewAuthService(users), users
}

var admin = &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin, Status: domain.StatusApproved}
var plainUser = &domain.User{ID: 2, Username: "someone", Role: domain.RoleUser, Status: domain.StatusApproved}

func TestRegisterApproveAuthenticate(t *testing.T) {
	svc, _ := authFixture(t)

	if err := svc.Register("bob", "secret1", "c", "a"); err != nil {
		t.Fatal(err)
	}

	// Pending accounts cannot sign in to the main application.
	if svc.Authenticate("bob", "secret1", true) {
		t.Fatal("pending account authenticated with requireApproved")
	}
	// Credentials themselves are fine.
	if !svc.Authenticate("bob", "secret1", false) {
		t.Fatal("credential check failed without requireApproved")
	}

	changed, err := svc.Approve(admin, "bob")
	if err != nil || !changed {
		t.Fatalf("approve: changed=%v err=%v", changed, err)
	}
	if !svc.Authenticate("bob", "secret1", true) {
		t.Fatal("approved account rejected")
	}
	if svc.Authenticate("bob", "wrong", true) {
		t.Fatal("wrong password accepted")
	}
	if svc.Authenticate("nobody", "secret1", true) {
		t.Fatal("unknown user accepted")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, users := authFixture(t)

	cases := []struct{ username, password, contact, address string }{
		{"a", "secret1", "c", "addr"},  // username too short
		{"bob", "short", "c", "addr"},  // password too short
		{"bob", "secret1", "", "addr"}, // empty contact
		{"bob", "secret1", "c", "  "},  // blank address
	}
	for _, tc := range cases {
		if err := svc.Register(tc.username, tc.password, tc.contact, tc.address); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("Register(%q,%q,...): want validation error, got %v", tc.username, tc.password, err)
		}
	}

	// No record was created by any rejected registration.
	pending, err := users.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Fatalf("rejected registrations left records: %v", pending)
	}
}

func TestRegisterAlwaysCreatesPendingUserRole(t *testing.T) {
	svc, users := authFixture(t)
	if err := svc.Register("carol", "secret1", "c", "a"); err != nil {
		t.Fatal(err)
	}
	u, err := users.ByUsername("carol")
	if err != nil || u == nil {
		t.Fatalf("lookup: %v %v", u, err)
	}
	if u.Role != domain.RoleUser || u.Status != domain.StatusPending {
		t.Fatalf("want role=user status=pending, got %s/%s", u.Role, u.Status)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := authFixture(t)
	if err := svc.Register("bob", "secret1", "c", "a"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Register("bob", "different1", "c", "a"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestApproveIdempotent(t *testing.T) {
	svc, _ := authFixture(t)
	if err := svc.Register("bob", "secret1", "c", "a"); err != nil {
		t.Fatal(err)
	}
	if changed, err := svc.Approve(admin, "bob"); err != nil || !changed {
		t.Fatalf("first approve: changed=%v err=%v", changed, err)
	}
	// Re-approving succeeds but changes nothing.
	if changed, err := svc.Approve(admin, "bob"); err != nil || changed {
		t.Fatalf("second approve: changed=%v err=%v", changed, err)
	}
}

func TestApproveUnknownUser(t *testing.T) {
	svc, _ := authFixture(t)
	if _, err := svc.Approve(admin, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want not-found, got %v", err)
	}
}

func TestAdminGate(t *testing.T) {
	svc, _ := authFixture(t)
	if err := svc.Register("bob", "secret1", "c", "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Approve(plainUser, "bob"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin approve: want forbidden, got %v", err)
	}
	if _, err := svc.Approve(nil, "bob"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("nil actor approve: want forbidden, got %v", err)
	}
	if _, err := svc.PendingUsers(plainUser); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin pending list: want forbidden, got %v", err)
	}
}

func TestPendingUsersOrderedByID(t *testing.T) {
	svc, _ := authFixture(t)
	for _, name := range []string{"zz-first", "aa-second", "mm-third"} {
		if err := svc.Register(name, "secret1", "c", "a"); err != nil {
			t.Fatal(err)
		}
	}
	pending, err := svc.PendingUsers(admin)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 3 {
		t.Fatalf("want 3 pending, got %d", len(pending))
	}
	for i := 1; i < len(pending); i++ {
		if pending[i].ID <= pending[i-1].ID {
			t.Fatalf("not ascending by id: %v", pending)
		}
	}
}

func TestLoginBindsSession(t *testing.T) {
	svc, _ := authFixture(t)
	if err := svc.Register("bob", "secret1", "c", "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login("sid-1", "bob", "secret1"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("pending login: want ErrBadCreds, got %v", err)
	}
	if _, err := svc.Approve(admin, "bob"); err != nil {
		t.Fatal(err)
	}

	u, err := svc.Login("sid-1", "bob", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	cur, err := svc.CurrentUser("sid-1")
	if err != nil || cur == nil || cur.ID != u.ID {
		t.Fatalf("session user: %v %v", cur, err)
	}

	if err := svc.Logout("sid-1"); err != nil {
		t.Fatal(err)
	}
	cur, err = svc.CurrentUser("sid-1")
	if err != nil || cur != nil {
		t.Fatalf("want no session user after logout, got %v %v", cur, err)
	}
}
