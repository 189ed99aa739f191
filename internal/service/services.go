package service

import (
	"github.com/dmadera/habit-tracker-backend/internal/config"
	"github.com/dmadera/habit-tracker-backend/internal/repository"
)

type Services struct {
	Auth  *AuthService
	Habit *HabitService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:  NewAuthService(repos.User, cfg),
		Habit: NewHabitService(repos.Habit),
	}
}
