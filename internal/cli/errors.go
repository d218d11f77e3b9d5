package cli

import "errors"

// ErrUsage marks failures caused by flags, config files or the input
// document. The binary maps it to exit code 2.
var ErrUsage = errors.New("cli usage error")

type usageError struct {
	msg   string
	cause error
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

// wrapUsage rewrites the message of cause and keeps it reachable through
// errors.As.
func wrapUsage(msg string, cause error) error {
	return usageError{msg: msg, cause: cause}
}

func (e usageError) Error() string { return e.msg }

func (e usageError) Unwrap() error { return e.cause }

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}
