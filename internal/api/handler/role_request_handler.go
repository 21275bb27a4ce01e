package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

// RoleRequestHandler serves the role-upgrade workflow.
type RoleRequestHandler struct {
	service ports.RoleRequestService
}

func NewRoleRequestHandler(service ports.RoleRequestService) *RoleRequestHandler {
	return &RoleRequestHandler{service: service}
}

type submitRoleRequest struct {
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	UserEmail   string `json:"userEmail" validate:"required,email"`
	RequestType string `json:"requestType" validate:"required,oneof=chef admin"`
}

// approveRoleRequest fields are optional; when present they must match the stored request.
type approveRoleRequest struct {
	RequestType string `json:"requestType" validate:"omitempty,oneof=chef admin"`
	UserEmail   string `json:"userEmail" validate:"omitempty,email"`
}

type approveRoleResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Role    string `json:"role"`
	ChefID  string `json:"chefId,omitempty"`
}

// Submit handles POST /role-requests.
//
// @Summary      Request a role upgrade
// @Tags         role-requests
// @Accept       json
// @Produce      json
// @Param        body  body      submitRoleRequest  true  "Role request"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  messageResponse
// @Router       /role-requests [post]
func (h *RoleRequestHandler) Submit(c echo.Context) error {
	var req submitRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rr, err := h.service.Submit(c.Request().Context(), ports.SubmitRoleRequestInput{
		UserID:      req.UserID,
		UserName:    req.UserName,
		UserEmail:   req.UserEmail,
		RequestType: req.RequestType,
	})
	if err != nil {
		return err
	}
	return created(c, rr)
}

// List handles GET /role-requests.
//
// @Summary      List role requests, newest first
// @Tags         role-requests
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /role-requests [get]
func (h *RoleRequestHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, emptyIfNil(items))
}

// Accept handles PATCH /role-requests/:id/accept.
//
// @Summary      Approve a role request
// @Tags         role-requests
// @Accept       json
// @Produce      json
// @Param        id    path      string              true   "Role request id"
// @Param        body  body      approveRoleRequest  false  "Optional consistency check"
// @Success      200   {object}  approveRoleResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /role-requests/{id}/accept [patch]
func (h *RoleRequestHandler) Accept(c echo.Context) error {
	var req approveRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	grant, err := h.service.Approve(c.Request().Context(), ports.ApproveRoleRequestInput{
		RequestID:   c.Param("id"),
		RequestType: req.RequestType,
		UserEmail:   req.UserEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, approveRoleResponse{
		Success: true,
		Message: "request approved",
		Role:    string(grant.Role),
		ChefID:  grant.ChefID,
	})
}

// Reject handles PATCH /role-requests/:id/reject.
//
// @Summary      Reject a role request
// @Tags         role-requests
// @Produce      json
// @Param        id   path      string  true  "Role request id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      409  {object}  messageResponse
// @Router       /role-requests/{id}/reject [patch]
func (h *RoleRequestHandler) Reject(c echo.Context) error {
	if err := h.service.Reject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return done(c, "request rejected")
}
