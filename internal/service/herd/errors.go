package herd

import "errors"

// ErrAnimalNotFound indicates no herd member carries the requested name.
var ErrAnimalNotFound = errors.New("animal not found")
