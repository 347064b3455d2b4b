// Copyright (c) 2012-2014 Jeremy Latt
// Copyright (c) 2014-2015 Edmund Huber
// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// released under the MIT license

package irc

import (
	"errors"
	"fmt"
)

// Validation Errors
var (
	ErrUnknownCommand    = errors.New("unknown command")
	ErrMissingParam      = errors.New("missing required parameter")
	ErrTooManyParams     = errors.New("too many parameters")
	ErrUnpairedParams    = errors.New("parameters must be given together or not at all")
	ErrMissingDependency = errors.New("parameter requires another parameter that was not given")
	ErrKeyCountMismatch  = errors.New("number of keys does not match number of channels")
	ErrNotOnChannel      = errors.New("not on channel")
	ErrNoChannels        = errors.New("not on any channel")
	ErrNotSingleChar     = errors.New("parameter must be exactly one character")
	ErrNotNumeric        = errors.New("parameter must be a number")
	ErrBadParam          = errors.New("parameter cannot be empty, contain spaces, or start with ':'")
	ErrLineTooLong       = errors.New("line exceeds the maximum line length")
)

// Session Errors
var (
	errNoSender = errors.New("Session has no sender")
)

// Config Errors
var (
	ErrLineLengthTooSmall    = errors.New("Line lengths must be 512 or greater (check max-line-length under session)")
	ErrLoggerExcludeEmpty    = errors.New("Encountered logging type '-' with no type to exclude")
	ErrLoggerFilenameMissing = errors.New("Logging configuration specifies 'file' method but 'filename' is empty")
	ErrLoggerHasNoTypes      = errors.New("Logger has no types to log")
	ErrPongServerInvalid     = errors.New("pong-server must be a valid hostname")
)

// ValidationError is returned when a command is rejected before anything
// is sent. Err is one of the validation sentinels above.
type ValidationError struct {
	Command string
	Param   string
	Err     error
}

func (err *ValidationError) Error() string {
	if err.Param == "" {
		return fmt.Sprintf("%s: %s", err.Command, err.Err.Error())
	}
	return fmt.Sprintf("%s: %s: %s", err.Command, err.Param, err.Err.Error())
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}
