package domain

import "time"

// Meal is a dish offered by a chef.
type Meal struct {
	ID                    string    `json:"id"`
	FoodName              string    `json:"foodName"`
	ChefName              string    `json:"chefName"`
	ChefID                string    `json:"chefId"`
	FoodImage             string    `json:"foodImage,omitempty"`
	Price                 float64   `json:"price"`
	Rating                float64   `json:"rating"`
	Ingredients           []string  `json:"ingredients"`
	EstimatedDeliveryTime string    `json:"estimatedDeliveryTime,omitempty"`
	ChefExperience        string    `json:"chefExperience,omitempty"`
	DeliveryArea          string    `json:"deliveryArea,omitempty"`
	UserEmail             string    `json:"userEmail"`
	CreatedAt             time.Time `json:"createdAt"`
}

// MealPatch carries the mutable fields of a meal. Nil fields are left unchanged.
type MealPatch struct {
	FoodName              *string
	FoodImage             *string
	Price                 *float64
	Ingredients           []string
	EstimatedDeliveryTime *string
	DeliveryArea          *string
}

// Empty reports whether the patch changes nothing.
func (p MealPatch) Empty() bool {
	return p.FoodName == nil && p.FoodImage == nil && p.Price == nil &&
		p.Ingredients == nil && p.EstimatedDeliveryTime == nil && p.DeliveryArea == nil
}
