package identity

import "errors"

var (
	ErrEmailTaken      = errors.New("user with this email already exists")
	ErrManagerNotFound = errors.New("manager not found")
)

// DefaultAvatar is assigned when registration omits one.
const DefaultAvatar = "https://cdn-icons-png.flaticon.com/512/3135/3135715.png"

// Account is the identity projection returned by login and verify.
type Account struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Title      string  `json:"title"`
	Avatar     string  `json:"avatar"`
	Department *string `json:"department"`
}

// Credential carries the stored hash alongside the account fields.
type Credential struct {
	Account
	PasswordHash string
}

type ManagerRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type RegisterManagerInput struct {
	Name       string
	Email      string
	Password   string
	Title      string
	Department string
	Avatar     string
}

type RegisterEmployeeInput struct {
	Name      string
	Email     string
	Password  string
	Title     string
	Avatar    string
	ManagerID string
}
