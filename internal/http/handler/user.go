package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"cloudstore/internal/audit"
	"cloudstore/internal/auth"
	"cloudstore/internal/domain/user"
)

type UserHandler struct {
	users       UserService
	auditLogger AuditRecorder
}

func NewUserHandler(users UserService, auditLogger AuditRecorder) *UserHandler {
	return &UserHandler{
		users:       users,
		auditLogger: auditLogger,
	}
}

type RegisterRequest struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	u, err := h.users.Register(c.Request().Context(), req.Email, req.Username, req.Password, req.Phone)
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeUser, nil, audit.ActionRegister, err)
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeUser, &u.ID, audit.ActionRegister, audit.StatusSuccess)
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	token, err := h.users.Authenticate(c.Request().Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeUser, nil, audit.ActionLogin, err)
		return err
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeUser, nil, audit.ActionLogin, audit.StatusSuccess)
	return c.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (h *UserHandler) Me(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	u, err := h.users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Lookup resolves a user by email, so clients can find share recipients.
func (h *UserHandler) Lookup(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam(queryKeyEmail))
	if email == "" {
		return handleHTTPError(c, echo.NewHTTPError(http.StatusBadRequest, msgMissingEmailQuery))
	}

	u, err := h.users.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(u))
}
