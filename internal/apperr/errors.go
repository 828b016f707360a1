// Package apperr defines sentinel errors shared across packages.
package apperr

import "errors"

// ErrSyncLocked is returned when another pipeline run already holds the
// cross-process sync lock.
var ErrSyncLocked = errors.New("sync lock held by another run")
