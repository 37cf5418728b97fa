package account

// User maps to the users table. The password hash never leaves the process.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
}

// RoleUser is the role assigned to every registered account. RoleAdmin exists
// in the data model but no exposed operation grants it.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
