package cloudlib

import "errors"

var (
	errBaseURLRequired = errors.New("repository base url is required")
	errUploadFailed    = errors.New("repository upload failed")
)
