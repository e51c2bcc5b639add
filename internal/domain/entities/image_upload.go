package entities

import "io"

// ImageUpload is a file picked in the admin form.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}
