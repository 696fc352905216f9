package handler

import (
	"net/http"
	"time"

	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/service"
	"go.uber.org/zap"
)

// TodoHandler serves the daily outreach to-do list
type TodoHandler struct {
	todoService *service.TodoService
	logger      *zap.Logger
}

func NewTodoHandler(todoService *service.TodoService, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// Get godoc
// @Summary To-do list
// @Description Contacts due for outreach today (including rollovers from missed days) and a preview of the next business day
// @Tags Todo
// @Produce json
// @Param date query string false "Compute as of this date (YYYY-MM-DD); defaults to today"
// @Success 200 {object} domain.TodoResponse
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /todo [get]
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	day := h.todoService.Today()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid date: must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	todo, err := h.todoService.GetTodo(r.Context(), day)
	if err != nil {
		h.logger.Error("failed to load to-do list", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load to-do list")
		return
	}

	respondJSON(w, http.StatusOK, todo)
}
