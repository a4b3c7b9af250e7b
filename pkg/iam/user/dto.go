package user

import (
	"github.com/Abraxas-365/relaymatch/pkg/iam/auth"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	LinkedInURL string `json:"linkedin_url"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID    kernel.UserID `json:"id"`
	Email kernel.Email  `json:"email"`
	Role  auth.Role     `json:"role"`
	Name  string        `json:"name"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
}
