package entity

// File is one multipart part as received; the pipeline holds it exclusively
// for the duration of a single upload call.
type File struct {
	Buffer           []byte
	OriginalFilename string
	MimeType         string
	Size             int64
}
