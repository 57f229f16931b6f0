package config

import "errors"

// Error variables for config resolution.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrSimilarityRange    = errors.New("similarity must be between 0 and 100")
	ErrBadColorMode       = errors.New("color must be auto, always or never")
)
