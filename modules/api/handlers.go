package api

import (
	"log"
	"strings"

	domain "github.com/ashokt15/taskmate/domain/user"
	"github.com/ashokt15/taskmate/modules/activity"
	"github.com/ashokt15/taskmate/modules/auth"
	"github.com/ashokt15/taskmate/modules/task"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API. All cross-module calls
// go through ports so handlers stay testable in isolation.
type Handlers struct {
	authAdapter     auth.AuthPort
	taskAdapter     task.TaskPort
	activityAdapter activity.ActivityPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authAdapter auth.AuthPort, taskAdapter task.TaskPort, activityAdapter activity.ActivityPort) *Handlers {
	return &Handlers{
		authAdapter:     authAdapter,
		taskAdapter:     taskAdapter,
		activityAdapter: activityAdapter,
	}
}

// callerClaims extracts the identity stored by AuthMiddleware.
func callerClaims(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	return claims, ok
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	session, err := h.authAdapter.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(SessionResponse{
		ID:    session.UserID,
		Email: session.Email,
		Token: session.Token,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	session, err := h.authAdapter.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(SessionResponse{
		ID:    session.UserID,
		Email: session.Email,
		Token: session.Token,
	})
}

// Profile returns the authenticated user's profile.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Not authorized, no token",
		})
	}

	user, err := h.authAdapter.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		if strings.Contains(err.Error(), "user not found") {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "User not found",
			})
		}
		log.Printf("[api] Failed to load profile for user %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "An internal error occurred",
		})
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// ListTasks returns the caller's tasks, newest created first, as a
// bare array.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Not authorized, no token",
		})
	}

	tasks, err := h.taskAdapter.List(c.UserContext(), claims.UserID)
	if err != nil {
		return h.handleTaskError(c, err)
	}
	if tasks == nil {
		tasks = []task.View{}
	}

	return c.Status(fiber.StatusOK).JSON(tasks)
}

// CreateTask creates a task owned by the caller.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Not authorized, no token",
		})
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	createReq := task.CreateTaskRequest{
		UserID:    claims.UserID,
		Completed: req.Completed,
		DueDate:   req.DueDate,
	}
	if req.Title != nil {
		createReq.Title = *req.Title
	}
	if req.Description != nil {
		createReq.Description = *req.Description
	}
	if req.Priority != nil {
		createReq.Priority = *req.Priority
	}
	if req.Status != nil {
		createReq.Status = *req.Status
	}
	if req.Tags != nil {
		createReq.Tags = *req.Tags
	}

	created, err := h.taskAdapter.Create(c.UserContext(), &createReq)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateTask applies a partial update to an owned task.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Not authorized, no token",
		})
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	updated, err := h.taskAdapter.Update(c.UserContext(), &task.UpdateTaskRequest{
		UserID:      claims.UserID,
		TaskID:      c.Params("id"),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteTask permanently removes an owned task.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Not authorized, no token",
		})
	}

	if err := h.taskAdapter.Delete(c.UserContext(), claims.UserID, c.Params("id")); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Task removed",
	})
}

// Activity returns the caller's recent task activity.
func (h *Handlers) Activity(c *fiber.Ctx) error {
	claims, ok := callerClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Not authorized, no token",
		})
	}

	limit := c.QueryInt("limit")

	resp, err := h.activityAdapter.Recent(c.UserContext(), claims.UserID, limit)
	if err != nil {
		log.Printf("[api] Failed to load activity for user %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "An internal error occurred",
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// handleAuthError maps auth service errors onto HTTP responses. It
// matches known error messages so internals never leak to the client.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "email and password are required"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Email and password are required",
		})
	case strings.Contains(errStr, "invalid email format"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid email format",
		})
	case strings.Contains(errStr, "password must be at most"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Password must be at most 72 characters",
		})
	case strings.Contains(errStr, "user already exists"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "User already exists",
		})
	case strings.Contains(errStr, "invalid credentials"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid email or password",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "An internal error occurred",
		})
	}
}

// handleTaskError maps task service errors onto HTTP responses. A
// task that does not exist and a task owned by someone else produce
// the same response.
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "Task not found or not authorized",
		})
	case strings.Contains(errStr, "task title is required"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Task title is required",
		})
	case strings.Contains(errStr, "invalid priority"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid priority",
		})
	case strings.Contains(errStr, "invalid status"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid status",
		})
	case strings.Contains(errStr, "invalid due date"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid due date",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "An internal error occurred",
		})
	}
}
