// Package reconcile diffs the remote draw catalog against the local store
// and drives the fetch of whatever is missing. Draw numbers are recovered
// from catalog entries through several fallbacks; entries that defeat every
// fallback are fetched anyway rather than risk a silent gap.
package reconcile
