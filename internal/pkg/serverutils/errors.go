package serverutils

import "errors"

var (
	ErrNotFound         = errors.New("the requested resource was not found")
	ErrInternal         = errors.New("something went wrong on our end, please try again later")
	ErrBadRequest       = errors.New("the request could not be processed due to invalid input")
	ErrStoreUnavailable = errors.New("note store is unavailable")
	ErrBlobStore        = errors.New("remote file storage failed")
	ErrConflict         = errors.New("the resource already exists")
)
