package redact

// Error returns err with its message redacted by the default redactor.
func Error(err error) error {
	return std.Error(err)
}

// Error returns an error whose message is redacted. The original error stays
// reachable through Unwrap so errors.Is and errors.As keep working; callers
// must not print the unwrapped chain.
func (r *Redactor) Error(err error) error {
	if err == nil {
		return nil
	}
	if already, ok := err.(*redactedError); ok {
		return already
	}
	return &redactedError{msg: r.Text(err.Error()), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
