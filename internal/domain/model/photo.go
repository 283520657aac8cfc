package model

import "time"

// Photo is the metadata row kept for every stored image object. The storage
// path doubles as the document id.
type Photo struct {
	ID               string     `bson:"_id"`
	AttachmentID     string     `bson:"attachment_id"`
	OwnerID          string     `bson:"owner_id"`
	Category         string     `bson:"category"`
	CollectionID     string     `bson:"collection_id,omitempty"`
	ModelID          string     `bson:"model_id,omitempty"`
	PublicURL        string     `bson:"public_url"`
	OriginalFilename string     `bson:"original_filename"`
	MimeType         string     `bson:"mime_type"`
	Label            string     `bson:"label,omitempty"`
	Dimensions       Dimensions `bson:"dimensions"`
	Size             int64      `bson:"size"`
	Primary          bool       `bson:"primary"`
	Description      string     `bson:"description,omitempty"`
	Tags             []string   `bson:"tags"`
	UploadTime       time.Time  `bson:"upload_time"`
}

type Dimensions struct {
	Width  int `bson:"width"`
	Height int `bson:"height"`
}
