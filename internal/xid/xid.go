package xid

import "github.com/google/uuid"

// New returns an opaque prefixed identifier, e.g. "item-9f3c...".
func New(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
