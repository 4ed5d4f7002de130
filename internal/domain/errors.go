package domain

import (
	"fmt"
	"strconv"
)

// ErrorCode is the result code carried by every API response envelope.
// The set is closed; NoError and only NoError signals success.
type ErrorCode int

const (
	// NoError indicates a successful operation.
	NoError ErrorCode = iota

	// UnknownError covers any failure that could not be classified.
	UnknownError

	// DBError indicates the store raised a known, classifiable failure
	// such as a uniqueness violation or a missing record.
	DBError

	// InvalidInput indicates a client-side shape or presence failure,
	// detected before the store is contacted.
	InvalidInput
)

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "NO_ERROR"
	case UnknownError:
		return "UNKNOWN_ERROR"
	case DBError:
		return "DB_ERROR"
	case InvalidInput:
		return "INVALID_INPUT"
	default:
		return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
	}
}

// Canonical response messages.
const (
	MsgNameEmpty    = "user name can not be empty"
	MsgIDEmpty      = "id can not be empty"
	MsgUserNotFound = "user not found"
	MsgEmailExists  = "email already exists"
	MsgDBError      = "database error"
	MsgUnknownError = "unknown error"
	MsgInvalidBody  = "request body input invalid"

	// msgInvalidInputTemplate is filled with the offending field label.
	msgInvalidInputTemplate = "%s input invalid"
)

// InvalidInputMessage renders the templated "<field> input invalid" message.
func InvalidInputMessage(field string) string {
	return fmt.Sprintf(msgInvalidInputTemplate, field)
}
