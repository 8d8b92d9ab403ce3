package enumgen

import (
	"fmt"
	"math"
	"sort"
	"strings"

	appLog "inkview/internal/log"
)

// Variant is one member of a generated enumeration.
type Variant struct {
	// Name is the variant name as seen by String(): the constant name with
	// the rule prefix stripped, prefixed by the uppercased group name when
	// the remainder starts with a digit.
	Name string
	// Ident is the exported Go constant name.
	Ident string
	// Source is the original constant name.
	Source string
	Value  int64
}

// Group collects the variants claimed by one rule. Variants are keyed by
// discriminant value; a later constant with the same value replaces the
// earlier variant.
type Group struct {
	Name   string
	Prefix string
	Width  Width
	Kind   Kind

	variants map[int64]Variant
}

// Len returns the number of distinct discriminants.
func (g *Group) Len() int { return len(g.variants) }

// Variants returns the variants in ascending discriminant order.
func (g *Group) Variants() []Variant {
	out := make([]Variant, 0, len(g.variants))
	for _, v := range g.variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Lookup returns the variant bound to value, if any.
func (g *Group) Lookup(value int64) (Variant, bool) {
	v, ok := g.variants[value]
	return v, ok
}

// Mask is the OR of every variant value. Only meaningful for KindFlags.
func (g *Group) Mask() uint64 {
	var m uint64
	for v := range g.variants {
		m |= uint64(v) & math.MaxUint32
	}
	return m
}

// Collision records a discriminant whose variant name was overwritten.
type Collision struct {
	Group       string
	Value       int64
	Previous    string // source constant that lost
	Replacement string // source constant that won
}

func (c Collision) String() string {
	return fmt.Sprintf("%s: %s replaces %s at value %d", c.Group, c.Replacement, c.Previous, c.Value)
}

// Constant is an unclassified constant passed through to the output.
type Constant struct {
	Name  string
	Value int64
}

// Class tells where a constant ended up.
type Class int

const (
	ClassEnum Class = iota
	ClassPlain
	ClassUntyped
)

func (c Class) String() string {
	switch c {
	case ClassEnum:
		return "enum"
	case ClassPlain:
		return "i32"
	default:
		return "untyped"
	}
}

// Classification is the outcome of adding one constant.
type Classification struct {
	Class   Class
	Group   string // set for ClassEnum
	Variant string // set for ClassEnum
}

// Result is the finished classification pass.
type Result struct {
	// Groups holds the non-empty groups in prefix order.
	Groups []*Group
	// Plain holds unclassified constants that fit int32, sorted by name.
	Plain []Constant
	// Untyped holds unclassified constants outside the int32 range.
	Untyped    []Constant
	Collisions []Collision
}

// Group returns the group called name, or nil.
func (r *Result) Group(name string) *Group {
	for _, g := range r.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Classifier assigns constants to groups. Rules are always tested in
// lexicographic order of their prefix, whatever order they were given in;
// the first matching prefix claims the constant.
type Classifier struct {
	rules   []Rule
	groups  map[string]*Group // by prefix
	plain   map[string]int64
	untyped map[string]int64

	collisions []Collision
}

// NewClassifier validates rules and returns a classifier ready for Add.
func NewClassifier(rules []Rule) (*Classifier, error) {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Prefix < sorted[j].Prefix })

	c := &Classifier{
		rules:   sorted,
		groups:  make(map[string]*Group, len(sorted)),
		plain:   make(map[string]int64),
		untyped: make(map[string]int64),
	}

	names := make(map[string]string, len(sorted))
	for _, r := range sorted {
		if err := r.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.groups[r.Prefix]; dup {
			return nil, fmt.Errorf("enumgen: %q: %w", r.Prefix, ErrDuplicatePrefix)
		}
		if other, dup := names[r.Group]; dup {
			return nil, fmt.Errorf("enumgen: %q used by prefixes %q and %q: %w", r.Group, other, r.Prefix, ErrDuplicateGroup)
		}
		names[r.Group] = r.Prefix
		c.groups[r.Prefix] = &Group{
			Name:     r.Group,
			Prefix:   r.Prefix,
			Width:    r.Width,
			Kind:     r.Kind,
			variants: make(map[int64]Variant),
		}
	}
	return c, nil
}

// Rules returns the rules in matching order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Match returns the rule that would claim name.
func (c *Classifier) Match(name string) (Rule, bool) {
	for _, r := range c.rules {
		if strings.HasPrefix(name, r.Prefix) {
			return r, true
		}
	}
	return Rule{}, false
}

// Add classifies one constant. Errors are build-time defects in the rule
// set or the header: an empty variant name, a value outside the group
// width or a negative flag bit, or a Go identifier clash inside a group.
func (c *Classifier) Add(rc RawConstant) (Classification, error) {
	rule, ok := c.Match(rc.Name)
	if !ok {
		if Int32.Fits(rc.Value) {
			c.plain[rc.Name] = rc.Value
			return Classification{Class: ClassPlain}, nil
		}
		c.untyped[rc.Name] = rc.Value
		return Classification{Class: ClassUntyped}, nil
	}

	g := c.groups[rule.Prefix]
	suffix := rc.Name[len(rule.Prefix):]
	if camel(suffix) == "" {
		return Classification{}, fmt.Errorf("enumgen: %s: %w", rc.Name, ErrEmptyVariant)
	}
	if !g.Width.Fits(rc.Value) {
		return Classification{}, fmt.Errorf("enumgen: %s = %d in %s (%s): %w", rc.Name, rc.Value, g.Name, g.Width, ErrValueRange)
	}
	if g.Kind == KindFlags && rc.Value < 0 {
		return Classification{}, fmt.Errorf("enumgen: %s = %d in flags %s: %w", rc.Name, rc.Value, g.Name, ErrValueRange)
	}

	name := suffix
	if startsWithDigit(name) {
		name = strings.ToUpper(g.Name) + name
	}
	v := Variant{
		Name:   name,
		Ident:  goIdent(g.Name, suffix),
		Source: rc.Name,
		Value:  rc.Value,
	}

	for val, other := range g.variants {
		if val != rc.Value && other.Ident == v.Ident {
			return Classification{}, fmt.Errorf("enumgen: %s and %s both become %s: %w", other.Source, rc.Name, v.Ident, ErrIdentifierClash)
		}
	}

	if prev, exists := g.variants[rc.Value]; exists && prev.Source != rc.Name {
		col := Collision{Group: g.Name, Value: rc.Value, Previous: prev.Source, Replacement: rc.Name}
		c.collisions = append(c.collisions, col)
		appLog.Warn("enum value collision, keeping last name",
			"group", g.Name,
			"value", rc.Value,
			"previous", prev.Source,
			"replacement", rc.Name,
		)
	}
	g.variants[rc.Value] = v

	return Classification{Class: ClassEnum, Group: g.Name, Variant: name}, nil
}

// Result snapshots the classification so far.
func (c *Classifier) Result() *Result {
	res := &Result{
		Plain:      sortedConstants(c.plain),
		Untyped:    sortedConstants(c.untyped),
		Collisions: append([]Collision(nil), c.collisions...),
	}
	for _, r := range c.rules {
		if g := c.groups[r.Prefix]; g.Len() > 0 {
			res.Groups = append(res.Groups, g)
		}
	}
	return res
}

// Classify runs a full pass over consts in the given order.
func Classify(rules []Rule, consts []RawConstant) (*Result, error) {
	c, err := NewClassifier(rules)
	if err != nil {
		return nil, err
	}
	for _, rc := range consts {
		if _, err := c.Add(rc); err != nil {
			return nil, err
		}
	}
	return c.Result(), nil
}

func sortedConstants(m map[string]int64) []Constant {
	out := make([]Constant, 0, len(m))
	for name, v := range m {
		out = append(out, Constant{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
