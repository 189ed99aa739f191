package repository

import (
	"context"

	"github.com/dmadera/habit-tracker-backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type HabitRepository interface {
	Create(ctx context.Context, habit *domain.Habit) error
	// GetOwned filters by habit id and owner id in a single query; a habit id
	// alone is never sufficient authorization.
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Habit, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Habit, error)
	Update(ctx context.Context, habit *domain.Habit) error
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}

type Repositories struct {
	User  UserRepository
	Habit HabitRepository
}
