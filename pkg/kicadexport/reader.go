package kicadexport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chewxy/sexp"
)

var errUnbalanced = errors.New("unbalanced parentheses")

// parse reads every top level expression of b. sexp has no string syntax,
// so quoted atoms keep their quotes and are split at blanks; it also panics
// on a stray ')', which is caught up front.
func parse(b []byte) ([]sexp.Sexp, error) {
	depth := 0
	for _, c := range b {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errUnbalanced
			}
		}
	}
	if depth != 0 {
		return nil, errUnbalanced
	}
	return sexp.Parse(bytes.NewReader(b))
}

// head returns the leading symbol of a list, or "".
func head(s sexp.Sexp) string {
	l, ok := s.(sexp.List)
	if !ok || len(l) == 0 {
		return ""
	}
	sym, _ := l[0].(sexp.Symbol)
	return string(sym)
}

// child returns the first sub-list of l whose head is name.
func child(l sexp.List, name string) sexp.List {
	for _, c := range l {
		if head(c) == name {
			return c.(sexp.List)
		}
	}
	return nil
}

// text rejoins the atoms of a quoted string and unquotes it. Bare atoms are
// returned as they are.
func text(atoms []sexp.Sexp) (string, error) {
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		sym, ok := a.(sexp.Symbol)
		if !ok {
			return "", fmt.Errorf("unexpected list %v", a)
		}
		parts[i] = string(sym)
	}
	s := strings.Join(parts, " ")
	if strings.HasPrefix(s, `"`) {
		return strconv.Unquote(s)
	}
	return s, nil
}

// Board summarises a KiCad board file.
type Board struct {
	Version   int
	Generator string
	Nets      []string       // index is the net number
	Items     map[string]int // top-level items by token
}

// Read parses a kicad_pcb file and counts its top-level items. Header
// sections are folded into the Board fields instead of Items.
func Read(r io.Reader) (*Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	exprs, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("kicadexport: %w", err)
	}
	if len(exprs) == 0 || head(exprs[0]) != "kicad_pcb" {
		return nil, errors.New("kicadexport: not a kicad_pcb file")
	}
	root := exprs[0].(sexp.List)

	b := &Board{Items: map[string]int{}}
	if v := child(root, "version"); len(v) == 2 {
		if b.Version, err = strconv.Atoi(fmt.Sprint(v[1])); err != nil {
			return nil, fmt.Errorf("kicadexport: version: %w", err)
		}
	}
	if g := child(root, "generator"); len(g) >= 2 {
		if b.Generator, err = text(g[1:]); err != nil {
			return nil, fmt.Errorf("kicadexport: generator: %w", err)
		}
	}

	for _, c := range root[1:] {
		switch h := head(c); h {
		case "", "version", "generator", "general", "paper", "layers":
		case "net":
			net := c.(sexp.List)
			if len(net) < 3 {
				return nil, errors.New("kicadexport: malformed net")
			}
			num, err := strconv.Atoi(fmt.Sprint(net[1]))
			if err != nil || num != len(b.Nets) {
				return nil, fmt.Errorf("kicadexport: net %v out of order", net[1])
			}
			name, err := text(net[2:])
			if err != nil {
				return nil, fmt.Errorf("kicadexport: net %d: %w", num, err)
			}
			b.Nets = append(b.Nets, name)
		default:
			b.Items[h]++
		}
	}
	return b, nil
}
