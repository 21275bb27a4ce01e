package domain

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
	ErrDuplicateChef = errors.New("chef id already taken")

	ErrMealNotFound     = errors.New("meal not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrAlreadyFavorite  = errors.New("already added to favorites")
	ErrOrderNotFound    = errors.New("order not found")

	ErrRoleRequestNotFound = errors.New("role request not found")
	ErrRequestNotPending   = errors.New("role request already decided")
)
