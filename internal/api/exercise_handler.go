package api

import (
	"alcyxob/exercise-tracker/internal/logbook"
	"alcyxob/exercise-tracker/internal/service"
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves exercise creation, log queries and log exports.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	exportService   service.ExportService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, exportService service.ExportService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, exportService: exportService}
}

// --- DTOs for API (Data Transfer Objects) ---

// looseString accepts a JSON string or number. Form values bind as plain strings.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = looseString(num.String())
	return nil
}

// AddExerciseRequest is the body of POST /api/users/:_id/exercises.
// Validation happens in the logbook so form and JSON clients get the same errors.
type AddExerciseRequest struct {
	Description string      `form:"description" json:"description"`
	Duration    looseString `form:"duration" json:"duration"`
	Date        looseString `form:"date" json:"date"`
}

type ExerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type ExportResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
	Count     int       `json:"count"`
}

func logRequestFromContext(c *gin.Context) service.LogRequest {
	return service.LogRequest{
		UserID: c.Param("_id"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Limit:  c.Query("limit"),
	}
}

// --- Handler Methods ---

// AddExercise godoc
// @Summary Log an exercise for a user
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param _id path string true "User ID"
// @Param exercise body AddExerciseRequest true "Exercise details; date defaults to today"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Missing field, bad duration or bad date"
// @Failure 404 {object} gin.H "User not found"
// @Router /users/{_id}/exercises [post]
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	logged, err := h.exerciseService.AddExercise(c.Request.Context(), c.Param("_id"), logbook.NewExerciseInput{
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        string(req.Date),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExerciseResponse{
		ID:          logged.UserID,
		Username:    logged.Username,
		Description: logged.Description,
		Duration:    logged.Duration,
		Date:        logged.Date,
	})
}

// GetLog godoc
// @Summary Get a user's exercise log
// @Produce json
// @Param _id path string true "User ID"
// @Param from query string false "Earliest date, YYYY-MM-DD, inclusive"
// @Param to query string false "Latest date, YYYY-MM-DD, inclusive"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} logbook.LogResult
// @Failure 400 {object} gin.H "Invalid date or limit"
// @Failure 404 {object} gin.H "User not found"
// @Router /users/{_id}/logs [get]
func (h *ExerciseHandler) GetLog(c *gin.Context) {
	result, err := h.exerciseService.GetLog(c.Request.Context(), logRequestFromContext(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportLog godoc
// @Summary Export a user's exercise log to object storage
// @Produce json
// @Param _id path string true "User ID"
// @Success 201 {object} ExportResponse
// @Failure 503 {object} gin.H "Export storage not configured"
// @Router /users/{_id}/logs/export [post]
func (h *ExerciseHandler) ExportLog(c *gin.Context) {
	export, err := h.exportService.ExportLog(c.Request.Context(), logRequestFromContext(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ExportResponse{
		Key:       export.Key,
		URL:       export.URL,
		ExpiresAt: export.ExpiresAt,
		Count:     export.Count,
	})
}
