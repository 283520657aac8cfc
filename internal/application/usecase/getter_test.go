package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paintrack/internal/domain/model"
)

func TestGetPhoto(t *testing.T) {
	retriever := &MockRetriever{}
	retriever.On("GetByPath", mock.Anything, "users/u1/avatar/a.jpeg").
		Return(&model.Photo{ID: "users/u1/avatar/a.jpeg"}, nil)
	retriever.On("GetByPath", mock.Anything, mock.Anything).Return(nil, errors.New("mongo: no documents in result"))

	g := NewGetter(retriever, &MockStater{})

	photo, err := g.GetPhoto(context.Background(), "users/u1/avatar/a.jpeg")
	require.NoError(t, err)
	assert.Equal(t, "users/u1/avatar/a.jpeg", photo.ID)

	_, err = g.GetPhoto(context.Background(), "users/u1/avatar/missing.jpeg")
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestExistsDelegatesToStore(t *testing.T) {
	stater := &MockStater{}
	stater.On("Exists", mock.Anything, "users/u1/avatar/a.jpeg").Return(true)
	stater.On("Exists", mock.Anything, mock.Anything).Return(false)

	g := NewGetter(&MockRetriever{}, stater)
	assert.True(t, g.Exists(context.Background(), "users/u1/avatar/a.jpeg"))
	assert.False(t, g.Exists(context.Background(), "users/u1/avatar/b.jpeg"))
}

func TestListPhotos(t *testing.T) {
	uploaded := time.Unix(1700000000, 0)
	lister := &MockLister{}
	lister.On("GetByOwner", mock.Anything, "u1", (*time.Time)(nil), (*time.Time)(nil)).Return([]model.Photo{
		{ID: "users/u1/avatar/a.jpeg", PublicURL: "http://cdn/a.jpeg", MimeType: "image/jpeg", Size: 10,
			Primary: true, UploadTime: uploaded, Dimensions: model.Dimensions{Width: 3, Height: 2}},
	}, nil)
	lister.On("GetByOwner", mock.Anything, "broken", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	l := NewLister(lister)

	got, err := l.ListPhotos(context.Background(), "u1", nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "users/u1/avatar/a.jpeg", got[0].Path)
	assert.Equal(t, "http://cdn/a.jpeg", got[0].URL)
	assert.Equal(t, 3, got[0].Width)
	assert.True(t, got[0].Primary)
	assert.Equal(t, int64(1700000000), got[0].Uploaded)

	_, err = l.ListPhotos(context.Background(), "broken", nil, nil)
	assert.Error(t, err)
}
