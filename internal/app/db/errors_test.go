package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintViolations(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}
	other := errors.New("connection reset")

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.False(t, IsUniqueViolation(other))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestConstraintName(t *testing.T) {
	err := fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23503", ConstraintName: "remixes_recipe_id_fkey"})

	assert.Equal(t, "remixes_recipe_id_fkey", ConstraintName(err))
	assert.Empty(t, ConstraintName(errors.New("plain")))
}
