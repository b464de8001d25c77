package handlers

import "errors"

var (
	errInvalidID       = errors.New("invalid id")
	errInvalidNumber   = errors.New("must be a non-negative integer")
	errReadBody        = errors.New("could not read request body")
	errPayloadTooLarge = errors.New("request body too large")
)
