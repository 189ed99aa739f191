package postgres

import (
	"context"

	"github.com/dmadera/habit-tracker-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type habitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *habitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	return r.db.WithContext(ctx).Create(habit).Error
}

func (r *habitRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Habit, error) {
	var habit domain.Habit
	err := r.db.WithContext(ctx).
		First(&habit, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *habitRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Habit, error) {
	var habits []*domain.Habit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *habitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	return r.db.WithContext(ctx).Save(habit).Error
}

func (r *habitRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&domain.Habit{}, "id = ? AND user_id = ?", id, ownerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
