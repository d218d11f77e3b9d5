package tsemitter

import (
	"regexp"
	"strings"

	"github.com/mark3labs/swagger2ts/internal/ir"
	"github.com/mark3labs/swagger2ts/internal/naming"
)

// typeName renders t. References are qualified with ns when it is set.
func typeName(t ir.TypeExpr, ns string) string {
	switch t.Kind {
	case ir.Primitive:
		return t.Prim.String()
	case ir.Reference:
		if ns != "" {
			return ns + "." + t.Name
		}
		return t.Name
	case ir.Array:
		if t.Elem == nil {
			return "any[]"
		}
		return typeName(*t.Elem, ns) + "[]"
	case ir.Map:
		return "Record<string, any>"
	default:
		return "any"
	}
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true, "let": true, "static": true, "await": true,
}

// propertyKey renders a wire key for an interface or object literal.
func propertyKey(name string) string {
	if identRe.MatchString(name) {
		return name
	}
	return quote(name)
}

// argName maps a parameter name onto a usable binding.
func argName(name string) string {
	if identRe.MatchString(name) && !reservedWords[name] {
		return name
	}
	id := naming.CamelCase(naming.Transliterate(name))
	if id == "" {
		id = "param"
	}
	if reservedWords[id] {
		id = "_" + id
	}
	return id
}

// quote renders s as a single-quoted string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}

// docText makes free text safe inside a block comment.
func docText(s string) []string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "*/", "*\\/")
	if s == "" {
		return nil
	}
	return splitLines(s)
}
