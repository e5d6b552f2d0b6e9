package adorn

import "errors"

var (
	// ErrPartNotFound is returned when an adorner's AdornedPartName does not
	// name any descendant of its host.
	ErrPartNotFound = errors.New("adorned part not found")

	// ErrInvalidConfig is returned by Config.Validate and the config loaders.
	ErrInvalidConfig = errors.New("invalid adorner config")

	// ErrUnknownCommand is returned by ParseCommand and Adorner.Execute.
	ErrUnknownCommand = errors.New("unknown adorner command")
)
