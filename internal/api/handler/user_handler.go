package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

// UserHandler serves accounts and their role/status queries.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address"`
	Password string `json:"password" validate:"required,min=6"`
	PhotoURL string `json:"photoURL"`
	Status   string `json:"status" validate:"omitempty,oneof=active fraud"`
}

// roleResponse reports a user's role. Role is null when the user does not exist.
type roleResponse struct {
	Success bool    `json:"success"`
	Role    *string `json:"role"`
}

// Signup handles POST /users.
//
// @Summary      Create an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /users [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
		PhotoURL: req.PhotoURL,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return created(c, user)
}

// List handles GET /users.
//
// @Summary      List all users, newest first
// @Tags         users
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, emptyIfNil(users))
}

// Get handles GET /users/:email.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  dataResponse
// @Failure      404    {object}  messageResponse
// @Router       /users/{email} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return ok(c, user)
}

// Role handles GET /users/role/:email. An unknown email is not an error.
//
// @Summary      Look up a user's role
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  roleResponse
// @Router       /users/role/{email} [get]
func (h *UserHandler) Role(c echo.Context) error {
	role, found, err := h.service.RoleOf(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	if !found {
		return c.JSON(http.StatusOK, roleResponse{Success: false, Role: nil})
	}
	r := string(role)
	return c.JSON(http.StatusOK, roleResponse{Success: true, Role: &r})
}

// MarkFraud handles PATCH /users/:id/fraud.
//
// @Summary      Flag a user as fraudulent
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id}/fraud [patch]
func (h *UserHandler) MarkFraud(c echo.Context) error {
	if err := h.service.MarkFraud(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return done(c, "user marked as fraud")
}
