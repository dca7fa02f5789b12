// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps the standard UUID library to generate Version 7 values, used for
page-session IDs, notification IDs, request IDs and simulated session tokens.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Unique: Random tail keeps values unique within and across process runs.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Prefixed returns prefix followed by a fresh UUIDv7, e.g. "simulated-token-0190...".
func Prefixed(prefix string) string {
	return prefix + New()
}
