package userinfra

import (
	"context"
	"sync"

	"github.com/Abraxas-365/relaymatch/pkg/iam/user"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// MemoryUserRepository keeps accounts in process memory
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[kernel.UserID]user.User
	byEmail map[kernel.Email]kernel.UserID
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[kernel.UserID]user.User),
		byEmail: make(map[kernel.Email]kernel.UserID),
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return user.ErrEmailInUse().WithDetail("email", u.Email.String())
	}
	r.byID[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound()
	}
	return &u, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, user.ErrUserNotFound()
	}
	return r.GetByID(ctx, id)
}
