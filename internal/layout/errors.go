/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0.
 */

package layout

import "fmt"

// ConfigurationError reports an unknown or unsupported enumerated setting
// (trim size, paper type). It is not recoverable locally; callers should fall
// back to a default or reject the settings.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unsupported %s: %q", e.Field, e.Value)
}

// ValidationError reports an out-of-range numeric setting. The engine does
// not clamp; it surfaces the error for user-facing correction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
