package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/planar-kit/planar/pkg/delim"
	"github.com/planar-kit/planar/pkg/figure"
	"github.com/planar-kit/planar/pkg/sheet"
)

// defaultLabelSep is used by the label builtin when no :sep is given.
const defaultLabelSep = ", "

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Planar script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: wheel-hub -> wheel_hub
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpFigure wraps an unnamed figure description so it can be returned
// from `circle`/`square` and consumed by `deffigure`.
type sexpFigure struct {
	kind string
	dim  float64
	desc figure.Description
}

func (f *sexpFigure) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %g)", strings.ToLower(f.kind), f.dim)
}
func (f *sexpFigure) Type() *zygo.RegisteredType { return nil }

// sexpEntryRef wraps a sheet.EntryID so named figures can be passed
// between builtins.
type sexpEntryRef struct {
	id   sheet.EntryID
	name string // human-readable name for error messages
}

func (r *sexpEntryRef) SexpString(ps *zygo.PrintState) string {
	if r.name != "" {
		return fmt.Sprintf("(figure %q)", r.name)
	}
	return fmt.Sprintf("(figure %s)", r.id.Short())
}
func (r *sexpEntryRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value, treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// dimensionArg extracts a builtin's single dimension, given either as a
// keyword (e.g. :diameter 40) or as the sole positional argument.
func dimensionArg(pa kwArgs, kwName string) (float64, error) {
	if v, ok := pa.kw[kwName]; ok {
		return toFloat64(v)
	}
	if len(pa.positional) == 1 {
		return toFloat64(pa.positional[0])
	}
	return 0, fmt.Errorf("requires :%s or a single numeric argument", kwName)
}

// labelItem extracts a joinable string from a label argument: a plain
// string, or a figure reference (joined by its name).
func labelItem(s zygo.Sexp, sh *sheet.Sheet) (string, error) {
	switch v := s.(type) {
	case *zygo.SexpStr:
		return v.S, nil
	case *sexpEntryRef:
		if e := sh.Get(v.id); e != nil {
			return e.Name, nil
		}
		return v.name, nil
	case *sexpFigure:
		return v.desc.Name, nil
	}
	return "", fmt.Errorf("expected string or figure, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all Planar DSL builtins into a zygomys
// environment. The builtins operate on the provided sheet, populating it
// during evaluation, and dispatch figure creation through the registry.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, sh *sheet.Sheet, reg *figure.Registry) {

	// -----------------------------------------------------------------------
	// (circle :diameter 40)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		dim, err := dimensionArg(pa, "diameter")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		desc, err := reg.Create("Circle", dim)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		return &sexpFigure{kind: "Circle", dim: dim, desc: desc}, nil
	})

	// -----------------------------------------------------------------------
	// (square :side 25)
	// -----------------------------------------------------------------------
	env.AddFunction("square", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		dim, err := dimensionArg(pa, "side")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("square: %w", err)
		}
		desc, err := reg.Create("Square", dim)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("square: %w", err)
		}
		return &sexpFigure{kind: "Square", dim: dim, desc: desc}, nil
	})

	// -----------------------------------------------------------------------
	// (deffigure "name" (circle :diameter 40))
	// -----------------------------------------------------------------------
	env.AddFunction("deffigure", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("deffigure requires a name and a figure expression")
		}

		figName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("deffigure: name: %w", err)
		}
		if figName == "" {
			return zygo.SexpNull, fmt.Errorf("deffigure: name must not be empty")
		}
		if sh.Lookup(figName) != nil {
			return zygo.SexpNull, fmt.Errorf("deffigure: figure %q already defined", figName)
		}

		fig, ok := args[1].(*sexpFigure)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("deffigure: expected figure expression, got %T", args[1])
		}

		id := sheet.NewEntryID(fig.kind, figName, fig.dim)
		sh.Add(&sheet.Entry{
			ID:        id,
			Name:      figName,
			Kind:      fig.kind,
			Dimension: fig.dim,
			Desc:      fig.desc,
			Source:    fig.SexpString(nil),
		})

		return &sexpEntryRef{id: id, name: figName}, nil
	})

	// -----------------------------------------------------------------------
	// (figure "name")
	// -----------------------------------------------------------------------
	env.AddFunction("figure", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("figure requires a name argument")
		}

		figName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("figure: name: %w", err)
		}

		e := sh.Lookup(figName)
		if e == nil {
			return zygo.SexpNull, fmt.Errorf("figure: no figure named %q", figName)
		}

		return &sexpEntryRef{id: e.ID, name: figName}, nil
	})

	// -----------------------------------------------------------------------
	// (label :sep " - " "lid" (figure "box") ...)
	// -----------------------------------------------------------------------
	env.AddFunction("label", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		sep := defaultLabelSep
		if v, ok := pa.kw["sep"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("label: sep: %w", err)
			}
			sep = s
		}

		items := make([]string, 0, len(pa.positional))
		for i, arg := range pa.positional {
			item, err := labelItem(arg, sh)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("label: item %d: %w", i, err)
			}
			items = append(items, item)
		}

		return &zygo.SexpStr{S: delim.Join(sep, items)}, nil
	})
}
