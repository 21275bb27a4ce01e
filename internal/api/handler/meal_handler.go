package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

// MealHandler serves the meal catalogue.
type MealHandler struct {
	service ports.MealService
}

func NewMealHandler(service ports.MealService) *MealHandler {
	return &MealHandler{service: service}
}

type createMealRequest struct {
	FoodName              string   `json:"foodName" validate:"required"`
	ChefName              string   `json:"chefName" validate:"required"`
	ChefID                string   `json:"chefId" validate:"required"`
	FoodImage             string   `json:"foodImage"`
	Price                 float64  `json:"price" validate:"gte=0"`
	Rating                float64  `json:"rating" validate:"gte=0,lte=5"`
	Ingredients           []string `json:"ingredients"`
	EstimatedDeliveryTime string   `json:"estimatedDeliveryTime"`
	ChefExperience        string   `json:"chefExperience"`
	DeliveryArea          string   `json:"deliveryArea"`
	UserEmail             string   `json:"userEmail" validate:"required,email"`
}

type updateMealRequest struct {
	FoodName              *string  `json:"foodName"`
	FoodImage             *string  `json:"foodImage"`
	Price                 *float64 `json:"price" validate:"omitempty,gte=0"`
	Ingredients           []string `json:"ingredients"`
	EstimatedDeliveryTime *string  `json:"estimatedDeliveryTime"`
	DeliveryArea          *string  `json:"deliveryArea"`
}

// mealPageResponse is one page of the catalogue with its paging metadata.
type mealPageResponse struct {
	Success    bool           `json:"success"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
	Data       []*domain.Meal `json:"data"`
}

// List handles GET /meals.
//
// @Summary      Browse meals
// @Tags         meals
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Param        sort    query     string  false  "Price order: asc or desc"
// @Param        area    query     string  false  "Delivery area substring"
// @Param        search  query     string  false  "Meal name substring"
// @Success      200     {object}  mealPageResponse
// @Failure      400     {object}  messageResponse
// @Router       /meals [get]
func (h *MealHandler) List(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), ports.ListMealsInput{
		Page:   page,
		Limit:  limit,
		Sort:   c.QueryParam("sort"),
		Area:   c.QueryParam("area"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, mealPageResponse{
		Success:    true,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
		Data:       emptyIfNil(res.Items),
	})
}

// Get handles GET /meal-details/:id.
//
// @Summary      Get a meal
// @Tags         meals
// @Produce      json
// @Param        id   path      string  true  "Meal id"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  messageResponse
// @Router       /meal-details/{id} [get]
func (h *MealHandler) Get(c echo.Context) error {
	meal, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, meal)
}

// Create handles POST /meals.
//
// @Summary      Publish a meal
// @Tags         meals
// @Accept       json
// @Produce      json
// @Param        body  body      createMealRequest  true  "Meal"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  messageResponse
// @Router       /meals [post]
func (h *MealHandler) Create(c echo.Context) error {
	var req createMealRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	meal, err := h.service.Create(c.Request().Context(), &domain.Meal{
		FoodName:              req.FoodName,
		ChefName:              req.ChefName,
		ChefID:                req.ChefID,
		FoodImage:             req.FoodImage,
		Price:                 req.Price,
		Rating:                req.Rating,
		Ingredients:           req.Ingredients,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
		ChefExperience:        req.ChefExperience,
		DeliveryArea:          req.DeliveryArea,
		UserEmail:             req.UserEmail,
	})
	if err != nil {
		return err
	}
	return created(c, meal)
}

// ListByChef handles GET /meals/chef/:email.
//
// @Summary      Meals published by a chef
// @Tags         meals
// @Produce      json
// @Param        email  path      string  true  "Chef email"
// @Success      200    {object}  dataResponse
// @Router       /meals/chef/{email} [get]
func (h *MealHandler) ListByChef(c echo.Context) error {
	meals, err := h.service.ListByChef(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return ok(c, emptyIfNil(meals))
}

// Update handles PATCH /meals/:id.
//
// @Summary      Edit a meal
// @Tags         meals
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Meal id"
// @Param        body  body      updateMealRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /meals/{id} [patch]
func (h *MealHandler) Update(c echo.Context) error {
	var req updateMealRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.service.Update(c.Request().Context(), c.Param("id"), domain.MealPatch{
		FoodName:              req.FoodName,
		FoodImage:             req.FoodImage,
		Price:                 req.Price,
		Ingredients:           req.Ingredients,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
		DeliveryArea:          req.DeliveryArea,
	})
	if err != nil {
		return err
	}
	return done(c, "meal updated")
}

// Delete handles DELETE /meals/:id.
//
// @Summary      Remove a meal
// @Tags         meals
// @Produce      json
// @Param        id   path      string  true  "Meal id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /meals/{id} [delete]
func (h *MealHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return done(c, "meal deleted")
}
