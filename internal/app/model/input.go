package model

import "remix/internal/pkg/sqlpatch"

// NewUser is the registration body.
type NewUser struct {
	Username string `json:"username" validate:"required,min=1,max=30,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Email    string `json:"email" validate:"required,email,max=255"`
}

// Credentials is the login body.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// NewRecipe is the body for creating a recipe. An empty ImageURL stores DefaultImageURL.
type NewRecipe struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=255"`
	Ingredients string `json:"ingredients" validate:"required"`
	Directions  string `json:"directions" validate:"required"`
	CookingTime int    `json:"cookingTime" validate:"gte=0,max=2147483647"`
	Servings    int    `json:"servings" validate:"gte=0,max=2147483647"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

// NewRemix is the body for remixing a recipe.
type NewRemix struct {
	Purpose string `json:"purpose" validate:"required,max=255"`
	NewRecipe
}

// NewReview is the body for reviewing a recipe or remix.
type NewReview struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required"`
}

// RecipeFields is the allow-list for recipe updates.
var RecipeFields = sqlpatch.Fields{
	"name":        {Kind: sqlpatch.String, Rules: "min=1,max=100"},
	"description": {Kind: sqlpatch.String, Rules: "min=1,max=255"},
	"ingredients": {Kind: sqlpatch.String, Rules: "min=1"},
	"directions":  {Kind: sqlpatch.String, Rules: "min=1"},
	"cookingTime": {Column: "cooking_time", Kind: sqlpatch.Integer, Rules: "gte=0,max=2147483647"},
	"servings":    {Kind: sqlpatch.Integer, Rules: "gte=0,max=2147483647"},
	"imageUrl":    {Column: "image_url", Kind: sqlpatch.String, Rules: "omitempty,url"},
}

// RemixFields is the allow-list for remix updates.
var RemixFields = withField(RecipeFields, "purpose", sqlpatch.Spec{Kind: sqlpatch.String, Rules: "min=1,max=255"})

// ReviewFields is the allow-list for recipe and remix review updates.
var ReviewFields = sqlpatch.Fields{
	"title":   {Kind: sqlpatch.String, Rules: "min=1,max=100"},
	"content": {Kind: sqlpatch.String, Rules: "min=1"},
}

// UserFields is the allow-list for account updates. The password is hashed before it is stored.
var UserFields = sqlpatch.Fields{
	"email":    {Kind: sqlpatch.String, Rules: "email,max=255"},
	"password": {Column: "hashed_password", Kind: sqlpatch.String, Rules: "min=8,max=72"},
}

func withField(base sqlpatch.Fields, name string, spec sqlpatch.Spec) sqlpatch.Fields {
	out := make(sqlpatch.Fields, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[name] = spec
	return out
}
