package templates

import "fmt"

// RegistryError represents a failure to build or modify the theme registry
type RegistryError struct {
	Message string
	Cause   error
}

func (e *RegistryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template registry error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template registry error: %s", e.Message)
}

func (e *RegistryError) Unwrap() error {
	return e.Cause
}
