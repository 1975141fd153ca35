// Package storage holds the service-wide pagination defaults that requests
// fall back to when they omit layout options.
package storage
