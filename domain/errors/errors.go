// Package errors provides the error taxonomy of the registry.
// All error types support unwrapping via errors.As() and errors.Is(), and
// convert to a structured entities.ErrorDetail for diagnostics.
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/reglet-dev/refbook/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrDuplicate       = stdErrors.New("refbook: duplicate registration")
	ErrKeyNotFound     = stdErrors.New("refbook: key not found")
	ErrObjectNotFound  = stdErrors.New("refbook: object not found")
	ErrIndexOutOfRange = stdErrors.New("refbook: index out of range")
	ErrEnumeration     = stdErrors.New("refbook: capability enumeration failed")
	ErrInvalidArgument = stdErrors.New("refbook: invalid argument")
	ErrTypeMismatch    = stdErrors.New("refbook: type mismatch")
)

// DetailedError is implemented by error types that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
// Joined errors convert to the detail of their first DetailedError.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// DuplicateRegistrationError reports an object already present under a key.
type DuplicateRegistrationError struct {
	Object any
	Key    entities.Key
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("%s is already registered under %s", entities.DescribeString(e.Object), e.Key)
}

func (e *DuplicateRegistrationError) Is(target error) bool { return target == ErrDuplicate }

// ToErrorDetail implements DetailedError.
func (e *DuplicateRegistrationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "duplicate", Code: e.Key.String()}
}

// KeyNotFoundError reports a key that has never had a sequence.
type KeyNotFoundError struct {
	Key entities.Key
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("no references registered under %s", e.Key)
}

func (e *KeyNotFoundError) Is(target error) bool { return target == ErrKeyNotFound }

// ToErrorDetail implements DetailedError.
func (e *KeyNotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "not_found", Code: e.Key.String(), IsNotFound: true}
}

// ObjectNotFoundError reports an object absent from a key's sequence.
type ObjectNotFoundError struct {
	Object any
	Key    entities.Key
}

func (e *ObjectNotFoundError) Error() string {
	return fmt.Sprintf("%s is not registered under %s", entities.DescribeString(e.Object), e.Key)
}

func (e *ObjectNotFoundError) Is(target error) bool { return target == ErrObjectNotFound }

// ToErrorDetail implements DetailedError.
func (e *ObjectNotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "not_found", Code: e.Key.String(), IsNotFound: true}
}

// IndexOutOfRangeError reports an index outside a key's sequence.
type IndexOutOfRangeError struct {
	Key   entities.Key
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for %s (len %d)", e.Index, e.Key, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

// ToErrorDetail implements DetailedError.
func (e *IndexOutOfRangeError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message: e.Error(),
		Type:    "index",
		Code:    e.Key.String(),
		Details: map[string]any{"index": e.Index, "len": e.Len},
	}
}

// EnumerationError reports a failure to derive capability keys for an object.
type EnumerationError struct {
	Err    error
	Object any
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("enumerating capabilities of %s: %v", entities.DescribeString(e.Object), e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

func (e *EnumerationError) Is(target error) bool { return target == ErrEnumeration }

// ToErrorDetail implements DetailedError.
func (e *EnumerationError) ToErrorDetail() *entities.ErrorDetail {
	typeName, _ := entities.Describe(e.Object)
	return &entities.ErrorDetail{Message: e.Error(), Type: "enumeration", Code: typeName}
}

// InvalidArgumentError reports a nil object, zero key or similar caller error.
type InvalidArgumentError struct {
	Op     string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// ToErrorDetail implements DetailedError.
func (e *InvalidArgumentError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: e.Op}
}

// TypeMismatchError reports a registered value that is not assignable to the
// type a typed lookup asked for.
type TypeMismatchError struct {
	Key  entities.Key
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("value under %s has type %s, want %s", e.Key, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// ToErrorDetail implements DetailedError.
func (e *TypeMismatchError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: e.Key.String()}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}
