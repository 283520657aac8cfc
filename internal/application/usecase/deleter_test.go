package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paintrack/internal/domain/apperror"
)

func TestDeleteImage_ForbiddenNeverReachesStore(t *testing.T) {
	tests := []struct {
		name   string
		caller string
		path   string
	}{
		{"other user's image", "u1", "users/u2/avatar/a.jpeg"},
		{"prefix lookalike", "u1", "users/u10/avatar/a.jpeg"},
		{"traversal", "u1", "users/u1/../u2/avatar/a.jpeg"},
		{"absolute path", "u1", "/users/u1/avatar/a.jpeg"},
		{"empty caller", "", "users//avatar/a.jpeg"},
		{"outside users", "u1", "admin/u1/a.jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects := &MockObjectRemover{}
			rows := &MockDBRemover{}
			d := NewDeleter(rows, objects)

			err := d.DeleteImage(context.Background(), tt.caller, tt.path)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindForbidden))

			objects.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
			rows.AssertNotCalled(t, "RemoveByPath", mock.Anything, mock.Anything)
		})
	}
}

func TestDeleteImage_Success(t *testing.T) {
	path := "users/u1/collections/c1/models/m1/a.jpeg"

	objects := &MockObjectRemover{}
	objects.On("Remove", mock.Anything, path).Return(nil)
	rows := &MockDBRemover{}
	rows.On("RemoveByPath", mock.Anything, []string{path}).Return(nil)

	require.NoError(t, NewDeleter(rows, objects).DeleteImage(context.Background(), "u1", path))
	objects.AssertExpectations(t)
	rows.AssertExpectations(t)
}

func TestDeleteImage_StoreFailure(t *testing.T) {
	path := "users/u1/avatar/a.jpeg"

	objects := &MockObjectRemover{}
	objects.On("Remove", mock.Anything, path).Return(apperror.Storage("Failed to delete image", errors.New("503")))
	rows := &MockDBRemover{}

	err := NewDeleter(rows, objects).DeleteImage(context.Background(), "u1", path)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindStorage))
	rows.AssertNotCalled(t, "RemoveByPath", mock.Anything, mock.Anything)
}

func TestDeleteImage_MetadataFailure(t *testing.T) {
	path := "users/u1/avatar/a.jpeg"

	objects := &MockObjectRemover{}
	objects.On("Remove", mock.Anything, path).Return(nil)
	rows := &MockDBRemover{}
	rows.On("RemoveByPath", mock.Anything, []string{path}).Return(errors.New("mongo down"))

	err := NewDeleter(rows, objects).DeleteImage(context.Background(), "u1", path)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindStorage))
}
