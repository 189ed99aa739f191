package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmadera/habit-tracker-backend/internal/api/middleware"
	"github.com/dmadera/habit-tracker-backend/internal/domain"
	"github.com/dmadera/habit-tracker-backend/internal/service"
	"github.com/dmadera/habit-tracker-backend/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type HabitHandler struct {
	habitService *service.HabitService
	hub          *websocket.Hub
}

func NewHabitHandler(habitService *service.HabitService, hub *websocket.Hub) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
		hub:          hub,
	}
}

type HabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProgressResponse struct {
	CompletionCount int `json:"completionCount"`
}

func (h *HabitHandler) broadcast(userID uuid.UUID, eventType websocket.EventType, habitID uuid.UUID, habit *domain.Habit) {
	if h.hub != nil {
		h.hub.Publish(userID, websocket.Event{
			Type:    eventType,
			HabitID: habitID.String(),
			Habit:   habit,
		})
	}
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	habits, err := h.habitService.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req HabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	habit, err := h.habitService.Create(r.Context(), userID, service.HabitInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			writeError(w, http.StatusBadRequest, "please enter a name for the habit")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.broadcast(userID, websocket.EventHabitCreated, habit.ID, habit)
	writeJSON(w, http.StatusCreated, habit)
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	habitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	var req HabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	habit, err := h.habitService.Update(r.Context(), userID, habitID, service.HabitInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeHabitError(w, err)
		return
	}

	h.broadcast(userID, websocket.EventHabitUpdated, habit.ID, habit)
	writeJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	habitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	if err := h.habitService.Delete(r.Context(), userID, habitID); err != nil {
		h.writeHabitError(w, err)
		return
	}

	h.broadcast(userID, websocket.EventHabitDeleted, habitID, nil)
	writeJSON(w, http.StatusOK, map[string]string{"msg": "habit removed"})
}

func (h *HabitHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	habitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	habit, err := h.habitService.ToggleCompletion(r.Context(), userID, habitID, time.Now())
	if err != nil {
		h.writeHabitError(w, err)
		return
	}

	h.broadcast(userID, websocket.EventHabitToggled, habit.ID, habit)
	writeJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	habitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}

	count, err := h.habitService.Progress(r.Context(), userID, habitID, time.Now())
	if err != nil {
		h.writeHabitError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ProgressResponse{CompletionCount: count})
}

func (h *HabitHandler) writeHabitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrHabitNotFound):
		writeError(w, http.StatusNotFound, "habit not found")
	case errors.Is(err, service.ErrEmptyName):
		writeError(w, http.StatusBadRequest, "habit name cannot be empty")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
