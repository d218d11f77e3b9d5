package tsemitter

import (
	"fmt"
	"strings"

	"github.com/mark3labs/swagger2ts/internal/emitter"
	"github.com/mark3labs/swagger2ts/internal/ir"
	"github.com/mark3labs/swagger2ts/internal/naming"
)

const modelsNS = "models"

// renderTag returns the implementation and declaration of one tag module.
// Operation names in tf are already unique.
func renderTag(tf emitter.TagFile) (impl, decl string) {
	var ib, db strings.Builder

	ib.WriteString("/* eslint-disable */\n")
	baseNames := "applyPathParams, request"
	if tf.NeedsPageResp {
		baseNames += ", PageResp"
	}
	fmt.Fprintf(&ib, "import { %s } from '../base_http';\n\n", baseNames)
	if tf.NeedsPageResp {
		db.WriteString("import { PageResp } from '../base_http';\n\n")
	}
	if tf.NeedsModels {
		ib.WriteString("import * as models from '../models';\n\n")
		db.WriteString("import * as models from '../models';\n\n")
	}

	var funcs []string
	for _, op := range tf.Operations {
		o := newOpView(op)
		for _, iface := range o.interfaces() {
			ib.WriteString(iface)
			db.WriteString(iface)
		}
		doc := o.docComment()
		funcs = append(funcs, doc+o.implementation())
		fmt.Fprintf(&db, "%sexport declare function %s(%s): Promise<%s>;\n\n", doc, op.Name, o.args(), o.returnType)
	}
	ib.WriteString("\n")
	ib.WriteString(strings.Join(funcs, "\n"))
	return ib.String(), db.String()
}

// opView holds the derived names one operation renders with.
type opView struct {
	op         ir.OperationModel
	pathIface  string
	queryIface string
	bodyIface  string
	bodyType   string
	returnType string
}

func newOpView(op ir.OperationModel) *opView {
	pascal := naming.PascalCase(op.Name)
	o := &opView{
		op:         op,
		pathIface:  pascal + "PathParams",
		queryIface: pascal + "QueryParams",
		bodyIface:  pascal + "Body",
		returnType: returnType(op),
	}
	if op.HasBody {
		o.bodyType = o.bodyIface
		if op.BodyModel != "" {
			o.bodyType = modelsNS + "." + op.BodyModel
		}
	}
	return o
}

func returnType(op ir.OperationModel) string {
	if op.ResponseModel == nil {
		return "any"
	}
	t := *op.ResponseModel
	if op.ResponseWrapper != ir.NoWrapper {
		return fmt.Sprintf("%s<%s>", op.ResponseWrapper, typeName(t.Element(), modelsNS))
	}
	return typeName(t, modelsNS)
}

func (o *opView) interfaces() []string {
	var out []string
	if len(o.op.PathParams) > 1 {
		out = append(out, paramInterface(o.pathIface, o.op.PathParams))
	}
	if len(o.op.QueryParams) > 0 {
		out = append(out, paramInterface(o.queryIface, o.op.QueryParams))
	}
	if o.op.HasBody && o.op.BodyModel == "" {
		out = append(out, fmt.Sprintf("export interface %s {\n  [key: string]: any;\n}\n\n", o.bodyIface))
	}
	return out
}

func paramInterface(name string, params []ir.ParameterInfo) string {
	lines := make([]string, 0, len(params))
	for _, p := range params {
		opt := "?"
		if p.Required {
			opt = ""
		}
		lines = append(lines, fmt.Sprintf("  %s%s: %s;", propertyKey(p.Name), opt, typeName(p.Type, "")))
	}
	return fmt.Sprintf("export interface %s {\n%s\n}\n\n", name, strings.Join(lines, "\n"))
}

func (o *opView) args() string {
	var args []string
	switch n := len(o.op.PathParams); {
	case n == 1:
		p := o.op.PathParams[0]
		args = append(args, fmt.Sprintf("%s: %s", argName(p.Name), typeName(p.Type, "")))
	case n > 1:
		args = append(args, "pathParams: "+o.pathIface)
	}
	if len(o.op.QueryParams) > 0 {
		opt := "?"
		for _, p := range o.op.QueryParams {
			if p.Required {
				opt = ""
				break
			}
		}
		args = append(args, fmt.Sprintf("params%s: %s", opt, o.queryIface))
	}
	if o.op.HasBody {
		if o.op.BodyModel != "" {
			args = append(args, "body: "+o.bodyType)
		} else {
			args = append(args, "body?: "+o.bodyType)
		}
	}
	return strings.Join(args, ", ")
}

func (o *opView) urlExpr() string {
	tmpl := quote(o.op.Path)
	switch len(o.op.PathParams) {
	case 0:
		return tmpl
	case 1:
		p := o.op.PathParams[0]
		arg := argName(p.Name)
		if arg == p.Name {
			return fmt.Sprintf("applyPathParams(%s, { %s })", tmpl, arg)
		}
		return fmt.Sprintf("applyPathParams(%s, { %s: %s })", tmpl, propertyKey(p.Name), arg)
	default:
		return fmt.Sprintf("applyPathParams(%s, pathParams)", tmpl)
	}
}

func (o *opView) implementation() string {
	extra := ""
	if len(o.op.QueryParams) > 0 {
		extra += ", params"
	}
	if o.op.HasBody {
		if o.op.BodyModel != "" {
			extra += ", data: body.toJson()"
		} else {
			extra += ", data: body"
		}
	}
	return fmt.Sprintf("export async function %s(%s): Promise<%s> {\n  const url = %s;\n  return request<%s>({ method: '%s', url%s });\n}\n",
		o.op.Name, o.args(), o.returnType, o.urlExpr(), o.returnType, o.op.Method, extra)
}

func (o *opView) docComment() string {
	lines := []string{"/**"}
	for _, l := range docText(o.op.Summary) {
		lines = append(lines, " * "+l)
	}
	if len(o.op.PathParams) > 0 || len(o.op.QueryParams) > 0 || o.bodyType != "" {
		lines = append(lines, " *", " * parameters")
	}
	for _, p := range o.op.PathParams {
		lines = append(lines, paramDoc("@pathParam", p))
	}
	for _, p := range o.op.QueryParams {
		lines = append(lines, paramDoc("@queryParam", p))
	}
	if o.bodyType != "" {
		lines = append(lines, fmt.Sprintf(" * @bodyParam {%s} body", o.bodyType))
	}
	lines = append(lines, fmt.Sprintf(" * @return {%s}", o.returnType), " */", "")
	return strings.Join(lines, "\n")
}

func paramDoc(tag string, p ir.ParameterInfo) string {
	t := typeName(p.Type, "")
	if !p.Required {
		t += "?"
	}
	line := fmt.Sprintf(" * %s {%s} %s", tag, t, p.Name)
	if desc := docText(p.Description); len(desc) > 0 {
		line += ": " + strings.Join(desc, " ")
	}
	return line
}
