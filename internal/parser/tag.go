package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexhholmes/bitfield"
)

// FieldTag is a parsed bitfield struct tag
type FieldTag struct {
	Bits int           // Width in bits (0 if not specified)
	Skip bitfield.Skip // Suppressed accessors
}

// ParseTag parses bitfield struct tags
//
// Semantics:
//   - "bits=N"         : Field is N bits wide. For unsigned integer types it
//     sets the width; for bool and enum types it asserts it.
//   - "skip"           : No getter and no setter; the field is padding
//   - "skip=getters"   : No getter; the field encodes as zero
//   - "skip=setters"   : No setter; the field decodes as zero
//   - "skip=all"       : Same as "skip"
//
// Parts are comma separated and may be combined:
//
//	"bits=7"                → 7-bit field
//	"bits=10,skip=getters"  → 10-bit field without a getter
//	"skip=getters,skip=setters" → same as "skip"
func ParseTag(tag string) (*FieldTag, error) {
	if tag == "" {
		return nil, fmt.Errorf("empty bitfield tag")
	}

	f := &FieldTag{}
	for _, part := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(strings.TrimSpace(part), "=")

		switch key {
		case "bits":
			if !hasValue {
				return nil, fmt.Errorf("bits= requires a width")
			}
			bits, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid bits: %s", value)
			}
			if bits <= 0 {
				return nil, fmt.Errorf("bits must be positive, got: %d", bits)
			}
			f.Bits = bits

		case "skip":
			if !hasValue {
				f.Skip |= bitfield.SkipAll
				continue
			}
			skip, err := parseSkip(value)
			if err != nil {
				return nil, err
			}
			f.Skip |= skip

		default:
			return nil, fmt.Errorf("unknown parameter: %s", part)
		}
	}

	return f, nil
}

func parseSkip(s string) (bitfield.Skip, error) {
	switch s {
	case "getters":
		return bitfield.SkipGetters, nil
	case "setters":
		return bitfield.SkipSetters, nil
	case "all":
		return bitfield.SkipAll, nil
	default:
		return 0, fmt.Errorf("invalid skip: %s (expected getters, setters or all)", s)
	}
}
