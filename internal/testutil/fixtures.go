package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dmadera/habit-tracker-backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// TokenResponse matches the API auth response
type TokenResponse struct {
	Token string `json:"token"`
}

// BuildAndAuthenticate creates a user via the API and returns the user and token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/signup"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to sign up user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, err := ts.Services.Auth.ValidateToken(tokenResp.Token)
	if err != nil {
		t.Fatalf("failed to validate issued token: %v", err)
	}

	user := &domain.User{
		ID:    userID,
		Email: b.email,
	}

	return user, tokenResp.Token
}

// HabitBuilder creates test habits with a builder pattern
type HabitBuilder struct {
	owner         *domain.User
	name          string
	description   string
	completedDays []string
}

// NewHabitBuilder creates a new HabitBuilder with default values
func NewHabitBuilder() *HabitBuilder {
	return &HabitBuilder{
		name: fmt.Sprintf("habit_%s", uuid.New().String()[:8]),
	}
}

// WithOwner sets the habit owner
func (b *HabitBuilder) WithOwner(user *domain.User) *HabitBuilder {
	b.owner = user
	return b
}

// WithName sets the habit name
func (b *HabitBuilder) WithName(name string) *HabitBuilder {
	b.name = name
	return b
}

// WithDescription sets the habit description
func (b *HabitBuilder) WithDescription(description string) *HabitBuilder {
	b.description = description
	return b
}

// WithCompletedDays adds completion day keys in "YYYY-MM-DD" form
func (b *HabitBuilder) WithCompletedDays(days ...string) *HabitBuilder {
	b.completedDays = append(b.completedDays, days...)
	return b
}

// WithCompletionsDaysAgo adds completions at the given offsets back from now
func (b *HabitBuilder) WithCompletionsDaysAgo(now time.Time, daysAgo ...int) *HabitBuilder {
	for _, d := range daysAgo {
		b.completedDays = append(b.completedDays, domain.DayKey(now.AddDate(0, 0, -d)))
	}
	return b
}

// Build creates the habit in the database
func (b *HabitBuilder) Build(t *testing.T, db *gorm.DB) *domain.Habit {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	completed := datatypes.JSONSlice[string]{}
	if len(b.completedDays) > 0 {
		completed = datatypes.NewJSONSlice(b.completedDays)
	}

	habit := &domain.Habit{
		ID:             uuid.New(),
		UserID:         b.owner.ID,
		Name:           b.name,
		Description:    b.description,
		CompletedDates: completed,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := db.Create(habit).Error; err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	return habit
}
