package memoize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Normalizer maps a call's arguments to its cache key. It must be total,
// deterministic, and side-effect-free for the lifetime of the record: two
// argument lists the caller considers equivalent must map to one key. The
// engine guarantees nothing about argument lists a normalizer maps to
// different keys, even when the underlying computation would be identical.
type Normalizer func(args ...any) string

// KeySeparator joins the rendered arguments of the default normalizer.
// ASCII 0x1C (file separator) does not occur in ordinary text.
const KeySeparator = "\x1c"

// NormalizeArgs is the default Normalizer. Each argument is rendered via its
// fmt.Stringer implementation when present, otherwise with %v, and the
// renderings are joined with KeySeparator.
//
// Known limitation: if an argument's rendering itself contains KeySeparator,
// two distinct argument lists can collide to the same key. Supply a custom
// Normalizer to escape this.
func NormalizeArgs(args ...any) string {
	if len(args) == 1 {
		return renderArg(args[0])
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = renderArg(arg)
	}
	return strings.Join(parts, KeySeparator)
}

// HashedNormalizer renders arguments like NormalizeArgs, then collapses the
// key to a fixed-width xxhash digest. Useful when argument renderings are
// large or when an external store prefers short keys. Hash collisions, while
// vanishingly rare, would return the colliding entry's value.
func HashedNormalizer(args ...any) string {
	return strconv.FormatUint(xxhash.Sum64String(NormalizeArgs(args...)), 16)
}

func renderArg(arg any) string {
	if stringer, ok := arg.(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprintf("%v", arg)
}
