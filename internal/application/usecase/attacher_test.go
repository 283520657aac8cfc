package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paintrack/internal/application/usecase/abstraction"
	"paintrack/internal/domain/apperror"
	"paintrack/internal/domain/entity"
	"paintrack/internal/domain/model"
)

var modelMeta = entity.UploadMetadata{
	OwnerID:      "u1",
	Category:     "model-image",
	CollectionID: "c1",
	ModelID:      "m1",
	Tags:         []string{"wip"},
}

func responsiveResults() []entity.UploadResult {
	base := "users/u1/collections/c1/models/m1/"

	return []entity.UploadResult{
		{StoragePath: base + "a_medium.jpeg", PublicURL: "http://cdn/" + base + "a_medium.jpeg", Label: "medium", MimeType: "image/jpeg"},
		{StoragePath: base + "a_thumbnail.jpeg", PublicURL: "http://cdn/" + base + "a_thumbnail.jpeg", Label: "thumbnail", MimeType: "image/jpeg"},
		{StoragePath: base + "a_large.jpeg", PublicURL: "http://cdn/" + base + "a_large.jpeg", Label: "large", MimeType: "image/jpeg"},
	}
}

type attacherDeps struct {
	pipeline  *MockPipeline
	writer    *MockWriter
	rows      *MockDBRemover
	objects   *MockObjectRemover
	publisher *MockPublisher
}

func newTestAttacher() (*Attacher, attacherDeps) {
	deps := attacherDeps{
		pipeline:  &MockPipeline{},
		writer:    &MockWriter{},
		rows:      &MockDBRemover{},
		objects:   &MockObjectRemover{},
		publisher: &MockPublisher{},
	}
	a := NewAttacher(deps.pipeline, deps.writer, deps.rows, deps.objects, deps.publisher)
	a.now = func() time.Time { return time.Unix(1700000000, 0) }

	return a, deps
}

func TestAttach_ResponsiveMarksThumbnailPrimary(t *testing.T) {
	a, deps := newTestAttacher()
	file := entity.File{OriginalFilename: "a.jpg"}

	deps.pipeline.On("UploadResponsiveImages", mock.Anything, file, modelMeta, mock.Anything).
		Return(responsiveResults(), nil)
	deps.writer.On("Write", mock.Anything, mock.Anything).Return(nil)
	deps.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	photos, err := a.Attach(context.Background(), file, modelMeta, true, abstraction.UploadOptions{})
	require.NoError(t, err)
	require.Len(t, photos, 3)

	primaries := 0
	for _, p := range photos {
		assert.Equal(t, "u1", p.OwnerID)
		assert.Equal(t, "c1", p.CollectionID)
		assert.Equal(t, "m1", p.ModelID)
		assert.Equal(t, photos[0].AttachmentID, p.AttachmentID)
		if p.Primary {
			primaries++
			assert.Equal(t, "thumbnail", p.Label)
		}
	}
	assert.Equal(t, 1, primaries)

	written, ok := deps.writer.Calls[0].Arguments.Get(1).([]*model.Photo)
	require.True(t, ok)
	assert.Len(t, written, 3)

	var event PhotoUploadedEvent
	require.NoError(t, json.Unmarshal([]byte(deps.publisher.Calls[0].Arguments.String(1)), &event))
	assert.Equal(t, EventPhotoUploaded, event.Type)
	assert.Equal(t, photos[1].ID, event.PrimaryPath)
	assert.Len(t, event.Paths, 3)
	assert.Equal(t, int64(1700000000), event.UploadedAt)

	deps.objects.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestAttach_SingleIsPrimary(t *testing.T) {
	a, deps := newTestAttacher()
	meta := entity.UploadMetadata{OwnerID: "u1", Category: "avatar"}
	opts := abstraction.UploadOptions{Quality: 90}

	deps.pipeline.On("UploadImage", mock.Anything, mock.Anything, meta, opts).
		Return(entity.UploadResult{StoragePath: "users/u1/avatar/me.webp", MimeType: "image/webp"}, nil)
	deps.writer.On("Write", mock.Anything, mock.Anything).Return(nil)
	deps.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	photos, err := a.Attach(context.Background(), entity.File{}, meta, false, opts)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.True(t, photos[0].Primary)
	assert.Equal(t, "avatar", photos[0].Category)
}

func TestAttach_UploadFailurePassesThrough(t *testing.T) {
	a, deps := newTestAttacher()
	meta := entity.UploadMetadata{OwnerID: "u1", Category: "avatar"}

	deps.pipeline.On("UploadImage", mock.Anything, mock.Anything, meta, mock.Anything).
		Return(nil, apperror.Validation("Failed to parse image"))

	_, err := a.Attach(context.Background(), entity.File{}, meta, false, abstraction.UploadOptions{})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	deps.writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestAttach_WriteFailureRemovesObjects(t *testing.T) {
	a, deps := newTestAttacher()

	deps.pipeline.On("UploadResponsiveImages", mock.Anything, mock.Anything, modelMeta, mock.Anything).
		Return(responsiveResults(), nil)
	deps.writer.On("Write", mock.Anything, mock.Anything).Return(errors.New("document failed validation"))
	deps.objects.On("Remove", mock.Anything, mock.Anything).Return(nil)

	_, err := a.Attach(context.Background(), entity.File{}, modelMeta, true, abstraction.UploadOptions{})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindStorage))

	deps.objects.AssertNumberOfCalls(t, "Remove", 3)
	deps.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	deps.rows.AssertNotCalled(t, "RemoveByPath", mock.Anything, mock.Anything)
}

func TestAttach_PublishFailureRemovesObjectsAndRows(t *testing.T) {
	a, deps := newTestAttacher()
	results := responsiveResults()

	deps.pipeline.On("UploadResponsiveImages", mock.Anything, mock.Anything, modelMeta, mock.Anything).
		Return(results, nil)
	deps.writer.On("Write", mock.Anything, mock.Anything).Return(nil)
	deps.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	deps.objects.On("Remove", mock.Anything, mock.Anything).Return(nil)
	deps.rows.On("RemoveByPath", mock.Anything, []string{
		results[0].StoragePath, results[1].StoragePath, results[2].StoragePath,
	}).Return(nil)

	_, err := a.Attach(context.Background(), entity.File{}, modelMeta, true, abstraction.UploadOptions{})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindStorage))

	deps.objects.AssertNumberOfCalls(t, "Remove", 3)
	deps.rows.AssertExpectations(t)
}

func TestAttach_ResponsiveRejectsOptions(t *testing.T) {
	a, deps := newTestAttacher()

	_, err := a.Attach(context.Background(), entity.File{}, modelMeta, true, abstraction.UploadOptions{Quality: 60})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, msgResponsiveOpts, messageOf(err))
	deps.pipeline.AssertNotCalled(t, "UploadResponsiveImages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttach_CompensatesOnCancelledContext(t *testing.T) {
	a, deps := newTestAttacher()
	results := responsiveResults()
	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })

	deps.pipeline.On("UploadResponsiveImages", mock.Anything, mock.Anything, modelMeta, mock.Anything).
		Return(results, nil)
	deps.writer.On("Write", mock.Anything, mock.Anything).Return(nil)
	deps.publisher.On("Publish", mock.Anything, mock.Anything).Return(context.Canceled)
	deps.objects.On("Remove", live, mock.Anything).Return(nil)
	deps.rows.On("RemoveByPath", live, mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Attach(ctx, entity.File{}, modelMeta, true, abstraction.UploadOptions{})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindStorage))

	for _, r := range results {
		deps.objects.AssertCalled(t, "Remove", mock.Anything, r.StoragePath)
	}
	deps.rows.AssertNumberOfCalls(t, "RemoveByPath", 1)
}
