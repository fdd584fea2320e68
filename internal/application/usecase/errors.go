package usecase

import "errors"

var (
	ErrUnitNotFound      = errors.New("unit not found")
	ErrDuplicateUnitName = errors.New("duplicate unit name")
	ErrNoUnitFiles       = errors.New("no unit files matched")
	ErrInterfaceNotFound = errors.New("interface not found")
	ErrUnknownSchema     = errors.New("unknown schema")
)
