package user

import (
	"strings"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/iam/auth"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// User is a login account; candidates and companies both have one
type User struct {
	ID           kernel.UserID `db:"id" json:"id"`
	Email        kernel.Email  `db:"email" json:"email"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Role         auth.Role     `db:"role" json:"role"`
	Name         string        `db:"name" json:"name"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// NormalizeEmail lowercases and trims an address for lookups
func NormalizeEmail(email string) kernel.Email {
	return kernel.Email(strings.ToLower(strings.TrimSpace(email)))
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		Name:  u.Name,
	}
}
