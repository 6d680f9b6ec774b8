// Package rid provides stable identifiers for definitions referenced
// by terms: hashes of compiled definitions and names of builtins.
package rid

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ID identifies a definition. Derived IDs render as "#" followed by the
// first 16 hex characters of the SHA-256 of the definition bytes;
// builtin IDs render as "##" followed by the builtin's name.
type ID string

// New calculates a derived ID from the canonical bytes of a
// definition.
func New(data []byte) ID {
	hash := sha256.Sum256(data)
	return ID("#" + hex.EncodeToString(hash[:])[:16])
}

// Builtin returns the ID of a named builtin definition.
func Builtin(name string) ID {
	return ID("##" + name)
}

// IsBuiltin reports whether the ID names a builtin.
func (id ID) IsBuiltin() bool {
	return strings.HasPrefix(string(id), "##")
}

// Name returns the builtin name for builtin IDs and the hex digest for
// derived IDs.
func (id ID) Name() string {
	if id.IsBuiltin() {
		return strings.TrimPrefix(string(id), "##")
	}
	return strings.TrimPrefix(string(id), "#")
}

func (id ID) String() string { return string(id) }

// Constructor identifies one constructor of a data or effect
// declaration: the declaration's ID plus the constructor's tag.
type Constructor struct {
	ID  ID
	Tag int
}
