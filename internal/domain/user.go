package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusPending  = "pending"
	StatusApproved = "approved"
)

type User struct {
	ID       int    `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
	Role     string `db:"role"`
	Status   string `db:"status"`
	Contact  string `db:"contact"`
	Address  string `db:"address"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
