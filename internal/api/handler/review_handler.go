package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	FoodID        string `json:"foodId" validate:"required"`
	MealName      string `json:"mealName"`
	ReviewerName  string `json:"reviewerName" validate:"required"`
	ReviewerEmail string `json:"reviewerEmail" validate:"required,email"`
	ReviewerImage string `json:"reviewerImage"`
	Rating        int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment       string `json:"comment"`
}

type updateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// Create handles POST /reviews.
//
// @Summary      Review a meal
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body      createReviewRequest  true  "Review"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  messageResponse
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.service.Add(c.Request().Context(), &domain.Review{
		FoodID:        req.FoodID,
		MealName:      req.MealName,
		ReviewerName:  req.ReviewerName,
		ReviewerEmail: req.ReviewerEmail,
		ReviewerImage: req.ReviewerImage,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		return err
	}
	return created(c, review)
}

// ForFood handles GET /reviews/:id where id is the meal id.
//
// @Summary      Reviews for a meal
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Meal id"
// @Success      200  {object}  dataResponse
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) ForFood(c echo.Context) error {
	reviews, err := h.service.ForFood(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, emptyIfNil(reviews))
}

// Latest handles GET /reviews.
//
// @Summary      Most recent reviews
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /reviews [get]
func (h *ReviewHandler) Latest(c echo.Context) error {
	reviews, err := h.service.Latest(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, emptyIfNil(reviews))
}

// ByReviewer handles GET /reviews/user/:email.
//
// @Summary      Reviews written by a user
// @Tags         reviews
// @Produce      json
// @Param        email  path      string  true  "Reviewer email"
// @Success      200    {object}  dataResponse
// @Router       /reviews/user/{email} [get]
func (h *ReviewHandler) ByReviewer(c echo.Context) error {
	reviews, err := h.service.ByReviewer(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return ok(c, emptyIfNil(reviews))
}

// Update handles PUT /reviews/:id.
//
// @Summary      Edit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Review id"
// @Param        body  body      updateReviewRequest  true  "New rating and comment"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	var req updateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.Request().Context(), c.Param("id"), req.Rating, req.Comment); err != nil {
		return err
	}
	return done(c, "review updated")
}

// Delete handles DELETE /reviews/:id.
//
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Review id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return done(c, "review deleted")
}
