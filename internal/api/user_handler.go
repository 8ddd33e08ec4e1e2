package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request/Response Structs ---

// CreateUserRequest accepts both url-encoded forms and JSON bodies.
type CreateUserRequest struct {
	Username string `form:"username" json:"username"`
}

type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

func mapUserToResponse(u domain.User) UserResponse {
	return UserResponse{Username: u.Username, ID: u.ID}
}

// --- Handler Methods ---

// CreateUser godoc
// @Summary Register a new user
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param user body CreateUserRequest true "Username"
// @Success 200 {object} UserResponse
// @Failure 400 {object} gin.H "Missing username"
// @Failure 409 {object} gin.H "Username already taken"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapUserToResponse(*user))
}

// ListUsers godoc
// @Summary List all users
// @Produce json
// @Success 200 {array} UserResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = mapUserToResponse(u)
	}
	c.JSON(http.StatusOK, responses)
}
