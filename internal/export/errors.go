package export

import "errors"

// Failure classes. Structural failures abort the run; the other two are
// recorded per playlist or per track and the run continues.
var (
	// ErrStructural marks failures that make the whole run meaningless:
	// unreachable catalog, missing destination.
	ErrStructural = errors.New("structural failure")
	// ErrManifest marks a playlist whose tracks copied but whose manifest
	// could not be written; it is retried on the next resumed run.
	ErrManifest = errors.New("manifest write failed")
	// ErrTransfer marks a single track copy failure.
	ErrTransfer = errors.New("track transfer failed")
)
