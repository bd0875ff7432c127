/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0.
 */

// Package version exposes the build version of the application.
package version

import "fmt"

// Version is set at build time via -ldflags "-X gobookpress/internal/version.Version=...".
var Version = "0.1.0-dev"

// Commit is the short VCS revision, set at build time when available.
var Commit = ""

// String returns a human-readable version string for banners and logs.
func String() string {
	if Commit != "" {
		return fmt.Sprintf("%s (%s)", Version, Commit)
	}
	return Version
}
