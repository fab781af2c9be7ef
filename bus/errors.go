package bus

import "github.com/pkg/errors"

// ConfigErrorKind classifies a configuration-time failure. These only ever
// happen at machine setup (ROM loading, format validation); the tick path
// never returns an error — hardware faults there surface as CPU exceptions
// instead (illegal opcode traps, address errors, bus errors).
type ConfigErrorKind int

const (
	// RomWrongSize means the supplied image is not a size this mapper or
	// machine can accept.
	RomWrongSize ConfigErrorKind = iota
	// FileTruncated means the image ended before a required field.
	FileTruncated
	// UnsupportedFormat means the header identifies a format variant this
	// build does not implement.
	UnsupportedFormat
	// BadHeader means the header's magic bytes or checksum did not match.
	BadHeader
)

func (k ConfigErrorKind) String() string {
	switch k {
	case RomWrongSize:
		return "RomWrongSize"
	case FileTruncated:
		return "FileTruncated"
	case UnsupportedFormat:
		return "UnsupportedFormat"
	case BadHeader:
		return "BadHeader"
	default:
		return "Unknown"
	}
}

// ConfigError is returned by initialisation-time operations (cartridge and
// ROM loading, machine construction with an unsupported CPU model) — never
// by anything on the tick path.
type ConfigError struct {
	Kind    ConfigErrorKind
	Message string
	cause   error
}

func NewConfigError(kind ConfigErrorKind, message string) *ConfigError {
	return &ConfigError{Kind: kind, Message: message}
}

// WrapConfigError attaches a causing error for context, following the
// corpus's habit of wrapping rather than discarding lower-level errors.
func WrapConfigError(kind ConfigErrorKind, message string, cause error) *ConfigError {
	return &ConfigError{Kind: kind, Message: message, cause: errors.Wrap(cause, message)}
}

func (e *ConfigError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.cause }
