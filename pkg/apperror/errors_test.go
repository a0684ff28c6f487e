package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrConflict, http.StatusConflict},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{ErrInternal, http.StatusInternalServerError},
		{fmt.Errorf("unclassified"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapErrorToStatus(tt.err))
	}
}

func TestWrappedErrorsKeepTheirStatus(t *testing.T) {
	err := fmt.Errorf("tradition not found: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatus(err))

	err = fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrForbidden))
	assert.Equal(t, http.StatusForbidden, MapErrorToStatus(err))
}
