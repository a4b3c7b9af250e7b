package user

import (
	"context"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)
}

// ProfileProvisioner creates the empty domain profile that goes with a new
// candidate account
type ProfileProvisioner interface {
	ProvisionProfile(ctx context.Context, userID kernel.UserID, name, linkedInURL string) error
}
