// Package enumgen classifies named integer constants from a native header
// into enumeration groups by name prefix and renders them as typed Go
// enumerations with exact discriminant values.
package enumgen

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrEmptyPrefix      = errors.New("rule prefix is empty")
	ErrDuplicatePrefix  = errors.New("duplicate rule prefix")
	ErrDuplicateGroup   = errors.New("duplicate group name")
	ErrInvalidGroupName = errors.New("group name is not an exported Go identifier")
	ErrEmptyVariant     = errors.New("constant name equals its rule prefix")
	ErrValueRange       = errors.New("value does not fit the group width")
	ErrIdentifierClash  = errors.New("two declarations map to the same Go identifier")
	ErrCollision        = errors.New("two constants share one discriminant")
)

// Width is the discriminant width of a generated type.
type Width int

const (
	Int32 Width = iota
	Uint32
)

// ParseWidth accepts "i32", "int32", "u32" and "uint32". Empty means Int32.
func ParseWidth(s string) (Width, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "i32", "int32":
		return Int32, nil
	case "u32", "uint32":
		return Uint32, nil
	}
	return Int32, fmt.Errorf("enumgen: unknown width %q", s)
}

// GoType is the Go underlying type for the width.
func (w Width) GoType() string {
	if w == Uint32 {
		return "uint32"
	}
	return "int32"
}

func (w Width) String() string {
	if w == Uint32 {
		return "u32"
	}
	return "i32"
}

// Fits reports whether v is representable in w.
func (w Width) Fits(v int64) bool {
	if w == Uint32 {
		return v >= 0 && v <= math.MaxUint32
	}
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// Kind selects how a group is rendered.
type Kind int

const (
	// KindEnum is a discrete enumeration.
	KindEnum Kind = iota
	// KindFlags is a bit-flag set validated against the union of its bits.
	KindFlags
)

func (k Kind) String() string {
	if k == KindFlags {
		return "flags"
	}
	return "enum"
}

// Rule maps constants whose names start with Prefix into the group Group.
type Rule struct {
	Prefix string
	Group  string
	Width  Width
	Kind   Kind
}

// RawConstant is one named integer constant discovered in a header.
type RawConstant struct {
	Name  string
	Value int64
}

func (r Rule) validate() error {
	if r.Prefix == "" {
		return fmt.Errorf("enumgen: group %q: %w", r.Group, ErrEmptyPrefix)
	}
	if !isExportedIdent(r.Group) {
		return fmt.Errorf("enumgen: prefix %q group %q: %w", r.Prefix, r.Group, ErrInvalidGroupName)
	}
	return nil
}
