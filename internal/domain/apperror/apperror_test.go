package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrapped(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("upload variant: %w", Storage("failed to upload object", cause))

	assert.Equal(t, KindStorage, KindOf(err))
	assert.True(t, Is(err, KindStorage))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, Kind(0), KindOf(cause))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
		public bool
	}{
		{Validation("Failed to parse image"), http.StatusBadRequest, true},
		{Forbidden("not your image"), http.StatusForbidden, true},
		{Processing("Failed to process image", nil), http.StatusInternalServerError, false},
		{Storage("Failed to upload image", nil), http.StatusInternalServerError, false},
		{Configuration("Invalid upload type"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
			assert.Equal(t, tt.public, tt.err.Public())
		})
	}
}
