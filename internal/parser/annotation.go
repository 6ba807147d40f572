package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TypeAnnotation holds a parsed @bitfield annotation
type TypeAnnotation struct {
	Bits   int    // Pinned width in bits (0 = sum of field widths)
	Filled bool   // Whether the fields must use every declared bit
	Repr   string // "unpacked" or "packed"
	Order  string // "lsb" or "msb"
}

var (
	annotationRe = regexp.MustCompile(`^@bitfield\b(?:\s+(.*))?$`)
	enumRe       = regexp.MustCompile(`^@bitenum\s*$`)
	pairRe       = regexp.MustCompile(`^(\w+)=([\w-]+)$`)
)

// ParseAnnotation parses @bitfield annotation from comment text
//
// Expected format:
//
//	// @bitfield
//	// @bitfield bits=32
//	// @bitfield bits=24 filled=false
//	// @bitfield repr=packed order=msb
//
// Params are space-separated key=value pairs. Filled defaults to true. Bits is
// optional and defaults to the sum of the field widths.
func ParseAnnotation(comment string) (*TypeAnnotation, error) {
	matches := annotationRe.FindStringSubmatch(strings.TrimSpace(comment))
	if matches == nil {
		return nil, fmt.Errorf("no @bitfield annotation found")
	}

	anno := &TypeAnnotation{
		Filled: true,
		Repr:   "unpacked",
		Order:  "lsb",
	}

	for _, param := range strings.Fields(matches[1]) {
		pair := pairRe.FindStringSubmatch(param)
		if pair == nil {
			return nil, fmt.Errorf("invalid parameter: %s (expected key=value)", param)
		}
		key, value := pair[1], pair[2]

		switch key {
		case "bits":
			bits, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid bits: %s", value)
			}
			if bits <= 0 {
				return nil, fmt.Errorf("bits must be positive, got: %d", bits)
			}
			anno.Bits = bits

		case "filled":
			filled, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("filled must be true or false, got: %s", value)
			}
			anno.Filled = filled

		case "repr":
			if value != "unpacked" && value != "packed" {
				return nil, fmt.Errorf("repr must be 'unpacked' or 'packed', got: %s", value)
			}
			anno.Repr = value

		case "order":
			if value != "lsb" && value != "msb" {
				return nil, fmt.Errorf("order must be 'lsb' or 'msb', got: %s", value)
			}
			anno.Order = value

		default:
			return nil, fmt.Errorf("unknown parameter: %s", key)
		}
	}

	return anno, nil
}

// FindAnnotation searches comment lines for a @bitfield annotation.
// A line that carries the annotation but fails to parse is an error.
func FindAnnotation(comments []string) (*TypeAnnotation, bool, error) {
	for _, comment := range comments {
		if !annotationRe.MatchString(strings.TrimSpace(comment)) {
			continue
		}
		anno, err := ParseAnnotation(comment)
		if err != nil {
			return nil, true, err
		}
		return anno, true, nil
	}
	return nil, false, nil
}

// IsEnumAnnotation reports whether a cleaned comment line is @bitenum
func IsEnumAnnotation(comment string) bool {
	return enumRe.MatchString(strings.TrimSpace(comment))
}

// CleanComment removes comment markers from a line
// "// @bitfield bits=32" → "@bitfield bits=32"
// "/* @bitfield bits=32 */" → "@bitfield bits=32"
func CleanComment(line string) string {
	line = strings.TrimSpace(line)

	// Remove // prefix
	if strings.HasPrefix(line, "//") {
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimSpace(line)
		return line
	}

	// Remove /* */ wrapper
	if strings.HasPrefix(line, "/*") && strings.HasSuffix(line, "*/") {
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)
		return line
	}

	return line
}
