package ocr

import "errors"

var (
	// ErrRecognition indicates the local engine failed to read a page.
	ErrRecognition = errors.New("local recognition failed")
	// ErrExtraction indicates the remote endpoint failed after retries.
	ErrExtraction = errors.New("remote extraction failed")
	// ErrEncoding indicates a page image could not be compressed for upload.
	ErrEncoding = errors.New("page encoding failed")
)
