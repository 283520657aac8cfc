package presentation

const (
	AuthKey      = "Authorization"
	BearerPrefix = "Bearer "
	ReasonTag    = "X-Reason"
	PathParam    = "*"

	// OwnerIDKey holds the authenticated user id on the echo context.
	OwnerIDKey = "owner_id"
	// FileKey holds the guarded entity.File on the echo context.
	FileKey = "upload_file"

	FieldImage        = "image"
	FieldCategory     = "category"
	FieldCollectionID = "collection_id"
	FieldModelID      = "model_id"
	FieldDescription  = "description"
	FieldTags         = "tags"
	FieldResponsive   = "responsive"
	FieldQuality      = "quality"
	FieldMaxWidth     = "max_width"
	FieldMaxHeight    = "max_height"
	FieldFormat       = "format"
)
