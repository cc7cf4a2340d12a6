package pgerrs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"foodorder/internal/adapters/out/postgres/pgerrs"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}

	assert.True(t, pgerrs.IsUniqueViolation(dup, ""))
	assert.True(t, pgerrs.IsUniqueViolation(fmt.Errorf("insert: %w", dup), "idx_users_email"))
	assert.False(t, pgerrs.IsUniqueViolation(dup, "idx_categories_name_key"))
	assert.False(t, pgerrs.IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, pgerrs.IsUniqueViolation(errors.New("23505"), ""))
	assert.False(t, pgerrs.IsUniqueViolation(nil, ""))
}
