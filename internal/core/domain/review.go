package domain

import "time"

// Review is a customer's rating of a meal.
type Review struct {
	ID            string    `json:"id"`
	FoodID        string    `json:"foodId"`
	MealName      string    `json:"mealName,omitempty"`
	ReviewerName  string    `json:"reviewerName"`
	ReviewerEmail string    `json:"reviewerEmail"`
	ReviewerImage string    `json:"reviewerImage,omitempty"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	Date          time.Time `json:"date"`
}

// Favorite bookmarks a meal for a user.
type Favorite struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"userEmail"`
	MealID    string    `json:"mealId"`
	MealName  string    `json:"mealName,omitempty"`
	ChefID    string    `json:"chefId,omitempty"`
	ChefName  string    `json:"chefName,omitempty"`
	Price     float64   `json:"price,omitempty"`
	AddedTime time.Time `json:"addedTime"`
}
