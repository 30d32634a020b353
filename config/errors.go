package config

import (
	"errors"
	"fmt"
)

// Common error definitions.
var (
	ErrInvalidData     = errors.New("invalid data")
	ErrUnknownOption   = errors.New("unknown option")
	ErrUnsupportedType = errors.New("type not supported")

	// ErrInvalidJSON is returned by LoadConfigFile if it receives invalid json.
	ErrInvalidJSON = errors.New("json string invalid")
)

// InvalidOptionError describes an error encountered while
// registering a new option.
type InvalidOptionError struct {
	Msg string
	Err error
}

func (ioe *InvalidOptionError) Error() string {
	if ioe.Err != nil {
		return fmt.Sprintf("failed to register option: %s: %s", ioe.Msg, ioe.Err)
	}
	return fmt.Sprintf("failed to register option: %s", ioe.Msg)
}

func (ioe *InvalidOptionError) Unwrap() error {
	return ioe.Err
}

func newInvalidOptionError(msg string, err error) *InvalidOptionError {
	return &InvalidOptionError{
		Msg: msg,
		Err: err,
	}
}

// InvalidValueError is returned when a value is not valid for an option.
type InvalidValueError struct {
	Key   string
	Value interface{}
	Msg   string
}

func (ive *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %v for option %s: %s", ive.Value, ive.Key, ive.Msg)
}

// Unwrap allows matching with ErrInvalidData.
func (ive *InvalidValueError) Unwrap() error {
	return ErrInvalidData
}

func newInvalidValueError(key string, value interface{}, msg string) *InvalidValueError {
	return &InvalidValueError{
		Key:   key,
		Value: value,
		Msg:   msg,
	}
}
