package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmadera/habit-tracker-backend/internal/domain"
	"github.com/dmadera/habit-tracker-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrEmptyName     = errors.New("habit name is required")
)

// progressWindowDays is the lookback for the progress count. The window is
// [day start of now-7d, now], inclusive at day granularity on both ends.
const progressWindowDays = 7

type HabitService struct {
	habitRepo repository.HabitRepository
}

func NewHabitService(habitRepo repository.HabitRepository) *HabitService {
	return &HabitService{habitRepo: habitRepo}
}

type HabitInput struct {
	Name        string
	Description string
}

func (s *HabitService) Create(ctx context.Context, ownerID uuid.UUID, input HabitInput) (*domain.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	habit := &domain.Habit{
		ID:             uuid.New(),
		UserID:         ownerID,
		Name:           name,
		Description:    input.Description,
		CompletedDates: datatypes.JSONSlice[string]{},
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.habitRepo.Create(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Habit, error) {
	return s.habitRepo.ListByOwner(ctx, ownerID)
}

func (s *HabitService) Update(ctx context.Context, ownerID, habitID uuid.UUID, input HabitInput) (*domain.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	habit, err := s.getOwned(ctx, ownerID, habitID)
	if err != nil {
		return nil, err
	}

	habit.Name = name
	habit.Description = input.Description
	habit.UpdatedAt = time.Now()

	if err := s.habitRepo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, ownerID, habitID uuid.UUID) error {
	err := s.habitRepo.DeleteOwned(ctx, habitID, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrHabitNotFound
	}
	return err
}

// ToggleCompletion marks the habit complete for today's calendar day, or
// unmarks it when already marked. Two calls with the same day restore the
// original completion set.
func (s *HabitService) ToggleCompletion(ctx context.Context, ownerID, habitID uuid.UUID, today time.Time) (*domain.Habit, error) {
	habit, err := s.getOwned(ctx, ownerID, habitID)
	if err != nil {
		return nil, err
	}

	habit.ToggleDay(domain.DayKey(today))
	habit.UpdatedAt = time.Now()

	if err := s.habitRepo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Progress returns how many completion days fall within the trailing
// 7-day window ending at now.
func (s *HabitService) Progress(ctx context.Context, ownerID, habitID uuid.UUID, now time.Time) (int, error) {
	habit, err := s.getOwned(ctx, ownerID, habitID)
	if err != nil {
		return 0, err
	}

	from := domain.DayKey(now.AddDate(0, 0, -progressWindowDays))
	to := domain.DayKey(now)
	return habit.CompletionsWithin(from, to), nil
}

func (s *HabitService) getOwned(ctx context.Context, ownerID, habitID uuid.UUID) (*domain.Habit, error) {
	habit, err := s.habitRepo.GetOwned(ctx, habitID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}
	return habit, nil
}
