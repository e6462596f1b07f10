// Package model holds the domain types shared by the repositories, guards and handlers.
package model

import "time"

// DefaultImageURL is stored for recipes and remixes created or updated without an image.
const DefaultImageURL = "https://upload.wikimedia.org/wikipedia/commons/1/14/No_Image_Available.jpg"

// readableLayout renders e.g. "August 2, 2025 at 1:59pm".
const readableLayout = "January 2, 2006 at 3:04pm"

// Timestamp is the creation time in both machine and display form.
type Timestamp struct {
	CreatedAt         time.Time `json:"createdAt"`
	CreatedAtReadable string    `json:"createdAtReadable"`
}

// NewTimestamp returns the Timestamp for t, formatted in the server's local time zone.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{CreatedAt: t, CreatedAtReadable: Readable(t)}
}

// Readable formats t for display.
func Readable(t time.Time) string {
	return t.Local().Format(readableLayout)
}

// Author is the owner of a recipe, remix or review, as resolved by the ownership guards.
type Author struct {
	Username string `json:"username"`
}

// User is an account. The password hash never leaves the server.
type User struct {
	ID             int64  `json:"-"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"`
	Timestamp
}

// UserDetails is a user profile with the recipes and remixes they created.
type UserDetails struct {
	User
	Recipes []RecipeSummary `json:"recipes"`
	Remixes []RemixSummary  `json:"remixes"`
}

// RecipeSummary is the list form of a recipe.
type RecipeSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Timestamp
}

// Recipe is a full recipe.
type Recipe struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Ingredients string `json:"ingredients"`
	Directions  string `json:"directions"`
	CookingTime int    `json:"cookingTime"`
	Servings    int    `json:"servings"`
	ImageURL    string `json:"imageUrl"`
	Timestamp
}

// RecipeDetails is a recipe with its most recent remixes and reviews.
type RecipeDetails struct {
	Recipe
	Remixes []RemixSummary `json:"remixes"`
	Reviews []Review       `json:"reviews"`
}

// RemixSummary is the list form of a remix.
type RemixSummary struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	OriginalRecipe string `json:"originalRecipe"`
	ImageURL       string `json:"imageUrl"`
	Timestamp
}

// Remix is a full remix of a recipe.
type Remix struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	RecipeID       int64  `json:"recipeId"`
	OriginalRecipe string `json:"originalRecipe"`
	Purpose        string `json:"purpose"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Ingredients    string `json:"ingredients"`
	Directions     string `json:"directions"`
	CookingTime    int    `json:"cookingTime"`
	Servings       int    `json:"servings"`
	ImageURL       string `json:"imageUrl"`
	Timestamp
}

// RemixDetails is a remix with its most recent reviews.
type RemixDetails struct {
	Remix
	Reviews []Review `json:"reviews"`
}

// Review is a review of a recipe or a remix; exactly one of RecipeID and RemixID is set.
type Review struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	RecipeID int64  `json:"recipeId,omitempty"`
	RemixID  int64  `json:"remixId,omitempty"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Timestamp
}
