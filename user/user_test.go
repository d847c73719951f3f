package user

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_HashesPassword(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	u, err := New(42, "Asha", "asha@example.com", "9876543210", "s3cret!pw", now)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret!pw", u.PasswordHash)
	assert.Equal(t, StatusActive, u.Status)
	assert.Equal(t, now, u.RegisteredAt)
	assert.Zero(t, u.TotalRides)

	assert.NoError(t, u.CheckPassword("s3cret!pw"))
	assert.ErrorIs(t, u.CheckPassword("wrong"), ErrInvalidPassword)
}

func TestNew_PasswordTooLong(t *testing.T) {
	_, err := New(42, "Asha", "asha@example.com", "", strings.Repeat("a", 73), time.Now())
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
