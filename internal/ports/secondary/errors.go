package secondary

import "errors"

// ErrNotFound marks lookups for identifiers that do not resolve.
// Repositories wrap it with entity detail; adapters test with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrReferenceExpired marks a chat-platform reference that the remote side
// reports as uninstalled or revoked. Retrying cannot succeed; the caller
// should disable the integration instead.
var ErrReferenceExpired = errors.New("platform reference expired")
