package auth

import (
	"net/http"
	"net/mail"
	"os"
	"strings"
	"time"

	"safe-radius/internal/api"
	"safe-radius/internal/database"
	"safe-radius/internal/model"
	"safe-radius/internal/service"
	"safe-radius/internal/store"

	"github.com/labstack/echo/v4"
)

const accessTokenTTL = 24 * time.Hour

var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	createUser       = store.CreateUser
	getUserByEmail   = store.GetUserByEmail
)

func userResponse(u *model.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// registerUser runs the shared registration flow with the caller-chosen role.
func registerUser(c echo.Context, db database.DB, name, email, password string, role model.Role) error {
	email = strings.ToLower(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
	}

	if _, err := getUserByEmail(c.Request().Context(), db, email); err == nil {
		return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "user already exists with this email"})
	}

	hash, err := hashPassword(password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
	}

	user, err := createUser(c.Request().Context(), db, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, userResponse(user))
}

// @Summary     Register a new user
// @Description Self-registration; the account always starts with the user role
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.RegisterRequest true "registration payload"
// @Success     201 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		return registerUser(c, db, req.Name, req.Email, req.Password, model.RoleUser)
	}
}

// @Summary     Bootstrap an admin account
// @Description Creates an admin user, gated by the shared bootstrap secret
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.RegisterAdminRequest true "admin registration payload"
// @Success     201 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register-admin [post]
func RegisterAdminHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterAdminRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		secret := os.Getenv("ADMIN_SECRET_KEY")
		if secret == "" || req.Secret != secret {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "invalid secret key"})
		}
		return registerUser(c, db, req.Name, req.Email, req.Password, model.RoleAdmin)
	}
}

// @Summary     Log in
// @Description Verifies email and password and issues a JWT access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.LoginRequest true "credentials"
// @Success     200 {object} api.LoginResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByEmail(c.Request().Context(), db, strings.ToLower(req.Email))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		authUser, err := authenticateUser(c.Request().Context(), *user, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		token, err := issueAccessToken(*authUser, accessTokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int(accessTokenTTL.Seconds()),
			User:        userResponse(authUser),
		})
	}
}
