package entity

type UploadResult struct {
	PublicURL        string `json:"public_url"`
	StoragePath      string `json:"storage_path"`
	OriginalFilename string `json:"original_filename"`
	ByteSize         int64  `json:"byte_size"`
	MimeType         string `json:"mime_type"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	// Label is the responsive preset label; empty for single uploads.
	Label string `json:"label,omitempty"`
}
