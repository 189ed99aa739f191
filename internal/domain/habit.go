package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// dayKeyLayout is the canonical calendar-day key. Completion days are stored
// and compared as UTC "YYYY-MM-DD" strings so that time-of-day and timezone
// representation never influence whether two completions land on the same day.
const dayKeyLayout = "2006-01-02"

// DayKey normalizes a timestamp to its UTC calendar-day key.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

type Habit struct {
	ID             uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         uuid.UUID                   `json:"userId" gorm:"type:uuid;index;not null"`
	Name           string                      `json:"name" gorm:"not null"`
	Description    string                      `json:"description"`
	CompletedDates datatypes.JSONSlice[string] `json:"completedDates" gorm:"type:jsonb;default:'[]'"`
	CreatedAt      time.Time                   `json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// MarkedOn reports whether the habit has a completion for the given day key.
func (h *Habit) MarkedOn(day string) bool {
	for _, d := range h.CompletedDates {
		if d == day {
			return true
		}
	}
	return false
}

// ToggleDay marks the given day if it is unmarked and unmarks it otherwise.
// It returns true when the day ends up marked. Toggling the same day twice
// restores the original completion set.
func (h *Habit) ToggleDay(day string) bool {
	for i, d := range h.CompletedDates {
		if d == day {
			h.CompletedDates = append(h.CompletedDates[:i], h.CompletedDates[i+1:]...)
			return false
		}
	}
	h.CompletedDates = append(h.CompletedDates, day)
	return true
}

// CompletionsWithin counts completion days in [from, to] inclusive.
// Day keys are zero-padded ISO dates, so string order is date order.
func (h *Habit) CompletionsWithin(from, to string) int {
	count := 0
	for _, d := range h.CompletedDates {
		if d >= from && d <= to {
			count++
		}
	}
	return count
}
