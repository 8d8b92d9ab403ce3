// Package header discovers named integer constants in C headers: object-like
// #define macros and enumerator lists.
package header

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"inkview/internal/enumgen"
	appLog "inkview/internal/log"
)

var errUnsupported = errors.New("unsupported expression")

var (
	defineRe  = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*define[ \t]+([A-Za-z_][A-Za-z0-9_]*)(\(?)(.*)$`)
	enumRe    = regexp.MustCompile(`\benum\b[ \t\r\n]*[A-Za-z0-9_]*[ \t\r\n]*\{([^}]*)\}`)
	suffixRe  = regexp.MustCompile(`\b(0[xX][0-9a-fA-F]+|[0-9]+)[uUlL]+\b`)
	directive = regexp.MustCompile(`(?m)^[ \t]*#.*$`)
)

// Scanner accumulates constants across one or more headers, so later
// headers may reference constants of earlier ones.
type Scanner struct {
	known map[string]int64
	order []string
}

// NewScanner returns an empty Scanner.
func NewScanner() *Scanner {
	return &Scanner{known: make(map[string]int64)}
}

// Constants returns every discovered constant in order of first appearance.
// A redefined name keeps its position and takes its last value.
func (s *Scanner) Constants() []enumgen.RawConstant {
	out := make([]enumgen.RawConstant, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, enumgen.RawConstant{Name: name, Value: s.known[name]})
	}
	return out
}

// ScanFile reads and scans the header at path.
func (s *Scanner) ScanFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("header: %w", err)
	}
	defer f.Close()
	return s.Scan(f, path)
}

type item struct {
	pos  int
	name string // for defines
	expr string // for defines
	body string // for enums
}

// Scan reads one header. name is used in log messages only.
func (s *Scanner) Scan(r io.Reader, name string) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("header: read %s: %w", name, err)
	}
	text := stripComments(joinContinuations(string(raw)))

	var items []item
	for _, m := range defineRe.FindAllStringSubmatchIndex(text, -1) {
		if m[5] > m[4] {
			// Function-like macro.
			continue
		}
		items = append(items, item{
			pos:  m[0],
			name: text[m[2]:m[3]],
			expr: strings.TrimSpace(text[m[6]:m[7]]),
		})
	}
	for _, m := range enumRe.FindAllStringSubmatchIndex(text, -1) {
		items = append(items, item{pos: m[0], body: text[m[2]:m[3]]})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].pos < items[j].pos })

	found := 0
	for _, it := range items {
		if it.body != "" {
			found += s.enumBody(it.body, name)
			continue
		}
		if it.expr == "" {
			continue
		}
		v, err := s.Eval(it.expr)
		if err != nil {
			appLog.Debug("skipping non-integer define", "header", name, "name", it.name, "expr", it.expr)
			continue
		}
		s.set(it.name, v)
		found++
	}
	appLog.Debug("header scanned", "header", name, "constants", found)
	return nil
}

func (s *Scanner) enumBody(body, header string) int {
	body = directive.ReplaceAllString(body, "")
	next := int64(0)
	valid := true
	n := 0
	for _, entry := range strings.Split(body, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, expr, explicit := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !token.IsIdentifier(name) {
			valid = false
			continue
		}
		if explicit {
			v, err := s.Eval(expr)
			if err != nil {
				appLog.Debug("skipping enumerator", "header", header, "name", name, "expr", strings.TrimSpace(expr))
				valid = false
				continue
			}
			next, valid = v, true
		} else if !valid {
			continue
		}
		s.set(name, next)
		next++
		n++
	}
	return n
}

func (s *Scanner) set(name string, v int64) {
	if _, seen := s.known[name]; !seen {
		s.order = append(s.order, name)
	}
	s.known[name] = v
}

// Eval evaluates a C integer constant expression. Identifiers resolve to
// constants discovered so far.
func (s *Scanner) Eval(expr string) (int64, error) {
	expr = suffixRe.ReplaceAllString(strings.TrimSpace(expr), "$1")
	expr = strings.ReplaceAll(expr, "~", "^")
	if expr == "" {
		return 0, errUnsupported
	}
	e, err := parser.ParseExpr(expr)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errUnsupported, err)
	}
	v, err := s.eval(e)
	if err != nil {
		return 0, err
	}
	n, exact := constant.Int64Val(constant.ToInt(v))
	if !exact {
		return 0, fmt.Errorf("%w: %s overflows int64", errUnsupported, expr)
	}
	return n, nil
}

func (s *Scanner) eval(e ast.Expr) (constant.Value, error) {
	switch e := e.(type) {
	case *ast.BasicLit:
		if e.Kind != token.INT && e.Kind != token.CHAR {
			return nil, errUnsupported
		}
		v := constant.MakeFromLiteral(e.Value, e.Kind, 0)
		if v.Kind() == constant.Unknown {
			return nil, errUnsupported
		}
		return constant.ToInt(v), nil
	case *ast.Ident:
		if v, ok := s.known[e.Name]; ok {
			return constant.MakeInt64(v), nil
		}
		return nil, fmt.Errorf("%w: unknown identifier %s", errUnsupported, e.Name)
	case *ast.ParenExpr:
		return s.eval(e.X)
	case *ast.UnaryExpr:
		x, err := s.eval(e.X)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case token.ADD, token.SUB, token.XOR:
			return constant.UnaryOp(e.Op, x, 0), nil
		}
		return nil, errUnsupported
	case *ast.BinaryExpr:
		x, err := s.eval(e.X)
		if err != nil {
			return nil, err
		}
		y, err := s.eval(e.Y)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case token.SHL, token.SHR:
			n, ok := constant.Uint64Val(y)
			if !ok || n > 63 {
				return nil, errUnsupported
			}
			return constant.Shift(x, e.Op, uint(n)), nil
		case token.QUO, token.REM:
			if constant.Sign(y) == 0 {
				return nil, errUnsupported
			}
			op := e.Op
			if op == token.QUO {
				op = token.QUO_ASSIGN // integer division
			}
			return constant.BinaryOp(x, op, y), nil
		case token.ADD, token.SUB, token.MUL, token.AND, token.OR, token.XOR:
			return constant.BinaryOp(x, e.Op, y), nil
		}
		return nil, errUnsupported
	}
	return nil, errUnsupported
}

// Scan is a convenience wrapper scanning a single header.
func Scan(r io.Reader, name string) ([]enumgen.RawConstant, error) {
	s := NewScanner()
	if err := s.Scan(r, name); err != nil {
		return nil, err
	}
	return s.Constants(), nil
}

// ScanFile is a convenience wrapper scanning a single header file.
func ScanFile(path string) ([]enumgen.RawConstant, error) {
	s := NewScanner()
	if err := s.ScanFile(path); err != nil {
		return nil, err
	}
	return s.Constants(), nil
}

func joinContinuations(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\\\n", " ")
}

// stripComments removes /* */ and // comments, leaving string and
// character literals intact. Newlines inside block comments are kept so
// directives stay on their own lines.
func stripComments(s string) string {
	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(s) && s[j] != c && s[j] != '\n' {
				if s[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(s) {
				j = len(s) - 1
			}
			b.WriteString(s[i : j+1])
			i = j
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			b.WriteByte(' ')
			b.WriteString(strings.Repeat("\n", strings.Count(s[i:i+2+end], "\n")))
			i += end + 3
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
