package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"paintrack/internal/application/usecase/abstraction"
	"paintrack/internal/domain/entity"
	"paintrack/internal/domain/model"
	"paintrack/internal/infrastructure/imageproc"
)

type MockObjectUploader struct{ mock.Mock }

func (m *MockObjectUploader) Upload(ctx context.Context, body []byte, path, contentType string,
	metadata map[string]string,
) (string, error) {
	args := m.Called(ctx, body, path, contentType, metadata)

	return args.String(0), args.Error(1)
}

type MockObjectRemover struct{ mock.Mock }

func (m *MockObjectRemover) Remove(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

type MockStater struct{ mock.Mock }

func (m *MockStater) Exists(ctx context.Context, path string) bool {
	return m.Called(ctx, path).Bool(0)
}

type MockWriter struct{ mock.Mock }

func (m *MockWriter) Write(ctx context.Context, photos []*model.Photo) error {
	return m.Called(ctx, photos).Error(0)
}

type MockDBRemover struct{ mock.Mock }

func (m *MockDBRemover) RemoveByPath(ctx context.Context, paths ...string) error {
	return m.Called(ctx, paths).Error(0)
}

type MockRetriever struct{ mock.Mock }

func (m *MockRetriever) GetByPath(ctx context.Context, path string) (*model.Photo, error) {
	args := m.Called(ctx, path)
	photo, _ := args.Get(0).(*model.Photo)

	return photo, args.Error(1)
}

type MockLister struct{ mock.Mock }

func (m *MockLister) GetByOwner(ctx context.Context, ownerID string, since, until *time.Time) ([]model.Photo, error) {
	args := m.Called(ctx, ownerID, since, until)
	photos, _ := args.Get(0).([]model.Photo)

	return photos, args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

type MockPipeline struct{ mock.Mock }

func (m *MockPipeline) UploadImage(ctx context.Context, file entity.File, meta entity.UploadMetadata,
	opts abstraction.UploadOptions,
) (entity.UploadResult, error) {
	args := m.Called(ctx, file, meta, opts)
	result, _ := args.Get(0).(entity.UploadResult)

	return result, args.Error(1)
}

func (m *MockPipeline) UploadResponsiveImages(ctx context.Context, file entity.File, meta entity.UploadMetadata,
	sizes []imageproc.Size,
) ([]entity.UploadResult, error) {
	args := m.Called(ctx, file, meta, sizes)
	results, _ := args.Get(0).([]entity.UploadResult)

	return results, args.Error(1)
}
