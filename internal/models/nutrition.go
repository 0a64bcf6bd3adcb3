package models

import "time"

// NutritionLog is one logged food intake.
type NutritionLog struct {
	Base
	Date     time.Time `json:"date"`
	MealID   string    `json:"meal_id,omitempty"`
	Name     string    `json:"name"`
	Calories int       `json:"calories,omitempty"`
	Protein  int       `json:"protein,omitempty"`
	Carbs    int       `json:"carbs,omitempty"`
	Fat      int       `json:"fat,omitempty"`
}

// WaterLog is one logged water intake in milliliters.
type WaterLog struct {
	Base
	Date time.Time `json:"date"`
	ML   int       `json:"ml"`
}

// Meal is a reusable named meal composition.
type Meal struct {
	Base
	Name     string   `json:"name"`
	Kind     string   `json:"kind,omitempty"` // "breakfast", "lunch", ...
	RecipeID string   `json:"recipe_id,omitempty"`
	Items    []string `json:"items,omitempty"`
}

// Recipe is a stored recipe with free-form markdown instructions.
type Recipe struct {
	Base
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Servings     int      `json:"servings,omitempty"`
}
