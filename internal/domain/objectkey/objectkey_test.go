package objectkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintrack/internal/domain/apperror"
	"paintrack/internal/domain/entity"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name        string
		owner       string
		target      entity.Target
		filename    string
		want        string
		expectError string
	}{
		{
			name:     "avatar",
			owner:    "u1",
			target:   entity.AvatarTarget{},
			filename: "profile.jpg",
			want:     "users/u1/avatar/profile.jpg",
		},
		{
			name:     "collection thumbnail",
			owner:    "u1",
			target:   entity.CollectionThumbnailTarget{CollectionID: "c1"},
			filename: "t.jpg",
			want:     "users/u1/collections/c1/thumbnail/t.jpg",
		},
		{
			name:     "model image",
			owner:    "u1",
			target:   entity.ModelImageTarget{CollectionID: "c1", ModelID: "m1"},
			filename: "s.jpg",
			want:     "users/u1/collections/c1/models/m1/s.jpg",
		},
		{
			name:        "collection thumbnail without collection",
			owner:       "u1",
			target:      entity.CollectionThumbnailTarget{},
			filename:    "t.jpg",
			expectError: "Collection ID required for collection thumbnail",
		},
		{
			name:        "model image without model",
			owner:       "u1",
			target:      entity.ModelImageTarget{CollectionID: "c1"},
			filename:    "s.jpg",
			expectError: "Collection ID and Model ID required for model image",
		},
		{
			name:        "model image without collection",
			owner:       "u1",
			target:      entity.ModelImageTarget{ModelID: "m1"},
			filename:    "s.jpg",
			expectError: "Collection ID and Model ID required for model image",
		},
		{
			name:        "nil target",
			owner:       "u1",
			filename:    "s.jpg",
			expectError: "Invalid upload type",
		},
		{
			name:        "missing owner",
			target:      entity.AvatarTarget{},
			filename:    "s.jpg",
			expectError: "Owner ID required for storage path",
		},
		{
			name:        "collection id with separators",
			owner:       "u1",
			target:      entity.ModelImageTarget{CollectionID: "c1/../..", ModelID: "m1"},
			filename:    "s.jpg",
			expectError: "Invalid storage path segment",
		},
		{
			name:        "model id pointing at another owner",
			owner:       "u1",
			target:      entity.ModelImageTarget{CollectionID: "c1", ModelID: "../u2/avatar"},
			filename:    "s.jpg",
			expectError: "Invalid storage path segment",
		},
		{
			name:        "dot dot collection thumbnail",
			owner:       "u1",
			target:      entity.CollectionThumbnailTarget{CollectionID: ".."},
			filename:    "t.jpg",
			expectError: "Invalid storage path segment",
		},
		{
			name:        "owner with separator",
			owner:       "u1/x",
			target:      entity.AvatarTarget{},
			filename:    "s.jpg",
			expectError: "Invalid storage path segment",
		},
		{
			name:        "filename with separator",
			owner:       "u1",
			target:      entity.AvatarTarget{},
			filename:    "../s.jpg",
			expectError: "Invalid storage path segment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.owner, tt.target, tt.filename)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectError, err.Error())
				assert.True(t, apperror.Is(err, apperror.KindConfiguration))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOwnedBy(t *testing.T) {
	tests := []struct {
		key   string
		owner string
		want  bool
	}{
		{"users/u1/avatar/a.jpg", "u1", true},
		{"users/u1/collections/c1/models/m1/s.jpg", "u1", true},
		{"users/u2/avatar/a.jpg", "u1", false},
		{"users/u10/avatar/a.jpg", "u1", false},
		{"users/u1/../u2/avatar/a.jpg", "u1", false},
		{"users/u1//a.jpg", "u1", false},
		{"/users/u1/avatar/a.jpg", "u1", false},
		{"users/u1/avatar/a.jpg", "", false},
		{"users/u1/avatar/a.jpg", "u1/avatar", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, OwnedBy(tt.key, tt.owner))
		})
	}
}
