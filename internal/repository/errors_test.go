package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"ridehail/internal/domain/entities"
)

func TestErrorHierarchy(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		notFound  bool
		duplicate bool
	}{
		{"account not found", ErrAccountNotFound, true, false},
		{"ride not found", ErrRideNotFound, true, false},
		{"wrapped ride not found", fmt.Errorf("get ride: %w", ErrRideNotFound), true, false},
		{"email exists", ErrEmailExists, false, true},
		{"outstanding ride", ErrOutstandingRide, false, true},
		{"unrelated", errors.New("connection refused"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.duplicate, errors.Is(tt.err, ErrDuplicate))
		})
	}
}

func TestCheckRideStatus(t *testing.T) {
	assert.NoError(t, CheckRideStatus(entities.RideStatusCancelled))
	assert.ErrorIs(t, CheckRideStatus("estimate"), ErrInvalidRideStatus)
	assert.ErrorIs(t, CheckRideStatus(""), ErrInvalidRideStatus)
}

func TestEntitySpecificErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrAccountNotFound, ErrRideNotFound))
	assert.False(t, errors.Is(ErrEmailExists, ErrOutstandingRide))
}
