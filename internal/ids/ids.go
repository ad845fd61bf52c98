// Package ids generates the opaque identifiers stored on every entity.
package ids

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	ProjectPrefix  = "project_"
	FilterPrefix   = "filter_"
	ActivityPrefix = "activity_"
	UserPrefix     = "user_"
)

// Generator returns a fresh unique id. Stores take one so tests can pin ids.
type Generator func() string

// New returns a random id with no prefix.
func New() string {
	return uuid.NewString()
}

// Prefixed returns a generator whose ids start with prefix.
func Prefixed(prefix string) Generator {
	return func() string {
		return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	}
}

// Sequence returns a deterministic generator yielding prefix1, prefix2, ...
func Sequence(prefix string) Generator {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}
