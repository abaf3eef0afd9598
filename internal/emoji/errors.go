package emoji

import (
	"errors"
)

var (
	// ErrInvalidEmoji is returned when a definition lacks a required field.
	ErrInvalidEmoji = errors.New("invalid emoji definition")

	// ErrUnsafeImageURL is returned when a custom image URL is rejected. The
	// emoji is still registered, without the image.
	ErrUnsafeImageURL = errors.New("unsafe emoji image url")

	// ErrInvalidCatalog is returned for unparseable catalog data.
	ErrInvalidCatalog = errors.New("invalid emoji catalog")
)

func isInvalid(err error) bool {
	return errors.Is(err, ErrInvalidEmoji)
}
