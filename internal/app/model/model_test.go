package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadable(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2025, 8, 2, 8, 59, 1, 0, time.Local), "August 2, 2025 at 8:59am"},
		{time.Date(2020, 1, 18, 8, 59, 1, 0, time.Local), "January 18, 2020 at 8:59am"},
		{time.Date(2025, 8, 2, 15, 59, 1, 0, time.Local), "August 2, 2025 at 3:59pm"},
		{time.Date(2025, 8, 2, 15, 8, 1, 0, time.Local), "August 2, 2025 at 3:08pm"},
		{time.Date(2025, 8, 2, 0, 8, 1, 0, time.Local), "August 2, 2025 at 12:08am"},
		{time.Date(2025, 8, 2, 12, 8, 1, 0, time.Local), "August 2, 2025 at 12:08pm"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Readable(tt.in))
	}
}

func TestUserJSONHidesSecrets(t *testing.T) {
	u := User{ID: 1, Username: "user1", Email: "u1@gmail.com", HashedPassword: "$2a$hash"}

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotContains(t, m, "HashedPassword")
	assert.NotContains(t, m, "hashedPassword")
	assert.NotContains(t, m, "ID")
	assert.Equal(t, "user1", m["username"])
	assert.Contains(t, m, "createdAtReadable")
}

func TestRemixFields(t *testing.T) {
	assert.Contains(t, RemixFields, "purpose")
	assert.Contains(t, RemixFields, "cookingTime")
	assert.NotContains(t, RecipeFields, "purpose")

	assert.Equal(t, "cooking_time", RemixFields.Translation()["cookingTime"])
	assert.Equal(t, "hashed_password", UserFields.Translation()["password"])
}
