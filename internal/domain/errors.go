package domain

import "errors"

var (
	ErrParseFailure = errors.New("source does not parse")
	ErrMissingFile  = errors.New("file does not exist")
	ErrNotAFile     = errors.New("path is not a regular file")
	ErrNotPython    = errors.New("not a .py file")
	ErrExternalTool = errors.New("external tool failed")
)
