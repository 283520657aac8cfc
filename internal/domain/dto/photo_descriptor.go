package dto

import "paintrack/internal/domain/model"

type PhotoDescriptor struct {
	URL      string `json:"url"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	FileType string `json:"type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Label    string `json:"label,omitempty"`
	Primary  bool   `json:"primary"`
	Uploaded int64  `json:"uploaded"`
}

func NewPhotoDescriptor(p model.Photo) PhotoDescriptor {
	return PhotoDescriptor{
		URL:      p.PublicURL,
		Path:     p.ID,
		Size:     p.Size,
		FileType: p.MimeType,
		Width:    p.Dimensions.Width,
		Height:   p.Dimensions.Height,
		Label:    p.Label,
		Primary:  p.Primary,
		Uploaded: p.UploadTime.Unix(),
	}
}
