package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

type FavoriteHandler struct {
	service ports.FavoriteService
}

func NewFavoriteHandler(service ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

type addFavoriteRequest struct {
	UserEmail string  `json:"userEmail" validate:"required,email"`
	MealID    string  `json:"mealId" validate:"required"`
	MealName  string  `json:"mealName"`
	ChefID    string  `json:"chefId"`
	ChefName  string  `json:"chefName"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// Add handles POST /favorites.
//
// @Summary      Save a meal to favorites
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        body  body      addFavoriteRequest  true  "Favorite"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	var req addFavoriteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	fav, err := h.service.Add(c.Request().Context(), &domain.Favorite{
		UserEmail: req.UserEmail,
		MealID:    req.MealID,
		MealName:  req.MealName,
		ChefID:    req.ChefID,
		ChefName:  req.ChefName,
		Price:     req.Price,
	})
	if err != nil {
		return err
	}
	return created(c, fav)
}

// ForUser handles GET /favorites/:email.
//
// @Summary      A user's favorites
// @Tags         favorites
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  dataResponse
// @Router       /favorites/{email} [get]
func (h *FavoriteHandler) ForUser(c echo.Context) error {
	favs, err := h.service.ForUser(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return ok(c, emptyIfNil(favs))
}

// Remove handles DELETE /favorites/:id.
//
// @Summary      Remove a favorite
// @Tags         favorites
// @Produce      json
// @Param        id   path      string  true  "Favorite id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return done(c, "favorite removed")
}
