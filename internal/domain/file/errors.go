package file

import "errors"

var (
	ErrFileNotFound   = errors.New("file not found")
	ErrNotOwner       = errors.New("you do not own this file")
	ErrFileTooLarge   = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile      = errors.New("file is empty")
	ErrPartialDelete  = errors.New("file partially deleted; reconciliation pending")
	ErrStorageFailure = errors.New("storage operation failed")
)
