package catelog

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// User is an account row. PasswordHash never leaves the service.
type User struct {
	ID           string    `json:"user_id" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	LastLogin    null.Time `json:"last_login" db:"last_login"`
}

// CreateUserRequest is the wire payload of POST /user.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// CreateUserResponse wraps the created account.
type CreateUserResponse struct {
	User *User `json:"user"`
}
