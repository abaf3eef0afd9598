package token

import "errors"

// Token set invariant violations reported by Validate.
var (
	ErrCoverage    = errors.New("token set does not cover buffer")
	ErrOverlap     = errors.New("token spans overlap")
	ErrSpan        = errors.New("invalid token span")
	ErrRawText     = errors.New("token raw text does not match buffer")
	ErrInvalidType = errors.New("invalid token type")
)

// Wire decoding errors.
var (
	ErrInvalidJSON = errors.New("invalid token JSON")
)
