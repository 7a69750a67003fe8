package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation_PostgresDuplicateKey(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}

	assert.True(t, isUniqueViolation(err))
}

func TestIsUniqueViolation_WrappedError(t *testing.T) {
	err := fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505"})

	assert.True(t, isUniqueViolation(err))
}

func TestIsUniqueViolation_GormDuplicatedKey(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
}

func TestIsUniqueViolation_OtherErrors(t *testing.T) {
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}
