package parser

import (
	"testing"

	"github.com/alexhholmes/bitfield"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag      string
		wantBits int
		wantSkip bitfield.Skip
		wantErr  bool
	}{
		// Widths
		{"bits=1", 1, bitfield.SkipNone, false},
		{"bits=64", 64, bitfield.SkipNone, false},

		// Suppression
		{"skip", 0, bitfield.SkipAll, false},
		{"skip=all", 0, bitfield.SkipAll, false},
		{"skip=getters", 0, bitfield.SkipGetters, false},
		{"skip=setters", 0, bitfield.SkipSetters, false},
		{"skip=getters,skip=setters", 0, bitfield.SkipAll, false},
		{"bits=10,skip=getters", 10, bitfield.SkipGetters, false},
		{"bits=3, skip", 3, bitfield.SkipAll, false},

		// Errors
		{"", 0, 0, true},
		{"bits", 0, 0, true},
		{"bits=", 0, 0, true},
		{"bits=0", 0, 0, true},
		{"bits=-1", 0, 0, true},
		{"bits=x", 0, 0, true},
		{"skip=both", 0, 0, true},
		{"offset=3", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseTag(tt.tag)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTag(%q) expected error, got %+v", tt.tag, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseTag(%q) unexpected error: %v", tt.tag, err)
			}
			if got.Bits != tt.wantBits {
				t.Errorf("ParseTag(%q).Bits = %d, want %d", tt.tag, got.Bits, tt.wantBits)
			}
			if got.Skip != tt.wantSkip {
				t.Errorf("ParseTag(%q).Skip = %s, want %s", tt.tag, got.Skip, tt.wantSkip)
			}
		})
	}
}
