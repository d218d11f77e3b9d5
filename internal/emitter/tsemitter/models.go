package tsemitter

import (
	"fmt"
	"strings"

	"github.com/mark3labs/swagger2ts/internal/emitter"
)

func modelImports(m emitter.ModelFile) []string {
	lines := make([]string, 0, len(m.Imports))
	for _, imp := range m.Imports {
		lines = append(lines, fmt.Sprintf("import { %s } from '%s';", imp.Name, imp.Path))
	}
	return lines
}

func memberLines(m emitter.ModelFile, indent string, blankAfter bool) []string {
	var lines []string
	for _, f := range m.Fields {
		if doc := docText(f.Description); len(doc) == 1 {
			lines = append(lines, fmt.Sprintf("%s/** %s */", indent, doc[0]))
		} else if len(doc) > 1 {
			lines = append(lines, indent+"/**")
			for _, l := range doc {
				lines = append(lines, indent+" * "+l)
			}
			lines = append(lines, indent+" */")
		}
		opt := "?"
		if f.Required {
			opt = ""
		}
		lines = append(lines, fmt.Sprintf("%s%s%s: %s;", indent, f.Name, opt, typeName(f.Type, "")))
		if blankAfter {
			lines = append(lines, "")
		}
	}
	return lines
}

func classDoc(m emitter.ModelFile) []string {
	doc := docText(m.Model.Description)
	if len(doc) == 0 {
		return nil
	}
	lines := []string{"/**"}
	for _, l := range doc {
		lines = append(lines, " * "+l)
	}
	return append(lines, " */")
}

func renderModel(m emitter.ModelFile) string {
	name := m.Model.Name
	lines := []string{"/* eslint-disable */"}
	lines = append(lines, modelImports(m)...)
	lines = append(lines, "")
	lines = append(lines, classDoc(m)...)
	lines = append(lines, fmt.Sprintf("export class %s {", name))
	lines = append(lines, memberLines(m, "  ", true)...)

	lines = append(lines, fmt.Sprintf("  constructor(data: Omit<%s, 'toJson'>) {", name))
	for _, f := range m.Fields {
		lines = append(lines, fmt.Sprintf("    this.%s = data.%s;", f.Name, f.Name))
	}
	lines = append(lines, "  }", "")

	lines = append(lines, fmt.Sprintf("  static fromJson(json: any): %s {", name))
	lines = append(lines, fmt.Sprintf("    return new %s({", name))
	for _, f := range m.Fields {
		lines = append(lines, fmt.Sprintf("      %s: %s,", f.Name, decodeExpr(f)))
	}
	lines = append(lines, "    });", "  }", "")

	lines = append(lines, "  toJson(): any {", "    return {")
	for _, f := range m.Fields {
		lines = append(lines, fmt.Sprintf("      %s: %s,", quote(f.OriginalName), encodeExpr(f)))
	}
	lines = append(lines, "    };", "  }", "}", "")
	return strings.Join(lines, "\n")
}

func renderModelDecl(m emitter.ModelFile) string {
	name := m.Model.Name
	lines := modelImports(m)
	lines = append(lines, "")
	lines = append(lines, classDoc(m)...)
	lines = append(lines, fmt.Sprintf("export declare class %s {", name))
	lines = append(lines, memberLines(m, "  ", false)...)
	lines = append(lines,
		fmt.Sprintf("  constructor(data: Omit<%s, 'toJson'>);", name),
		fmt.Sprintf("  static fromJson(json: any): %s;", name),
		"  toJson(): any;",
		"}",
		"",
	)
	return strings.Join(lines, "\n")
}

func wireRef(f emitter.Field) string {
	return "json[" + quote(f.OriginalName) + "]"
}

func decodeExpr(f emitter.Field) string {
	src := wireRef(f)
	switch f.Codec {
	case emitter.ModelCodec:
		return fmt.Sprintf("%s != null ? %s.fromJson(%s) : %s", src, f.Model, src, src)
	case emitter.ModelArrayCodec:
		return fmt.Sprintf("(%s ?? []).map((item: any) => %s.fromJson(item))", src, f.Model)
	default:
		return src
	}
}

func encodeExpr(f emitter.Field) string {
	v := "this." + f.Name
	switch f.Codec {
	case emitter.ModelCodec:
		return fmt.Sprintf("%s ? %s.toJson() : %s", v, v, v)
	case emitter.ModelArrayCodec:
		return fmt.Sprintf("%s ? %s.map((item) => item.toJson()) : %s", v, v, v)
	default:
		return v
	}
}
