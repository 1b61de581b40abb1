package linkbudget

// ConfigError reports radio parameters, wall configurations or inputs that
// are outside the physically meaningful range.
type ConfigError struct {
	msg string
}

func NewConfigError(msg string) *ConfigError {
	return &ConfigError{msg}
}

func (e *ConfigError) Error() string {
	return e.msg
}

// DomainError reports a computation whose input or result is not a finite
// number, such as the logarithm of a non-positive value.
type DomainError struct {
	msg string
}

func NewDomainError(msg string) *DomainError {
	return &DomainError{msg}
}

func (e *DomainError) Error() string {
	return e.msg
}
