// Package ir resolves an OpenAPI document into models and operations ready
// for emission.
package ir

import "github.com/mark3labs/swagger2ts/internal/spec"

// HTTPMethod is a lower-case HTTP verb as it appears under a path item.
type HTTPMethod string

const (
	GET     HTTPMethod = "get"
	POST    HTTPMethod = "post"
	PUT     HTTPMethod = "put"
	PATCH   HTTPMethod = "patch"
	DELETE  HTTPMethod = "delete"
	OPTIONS HTTPMethod = "options"
	HEAD    HTTPMethod = "head"
)

var methods = map[string]HTTPMethod{
	"get": GET, "post": POST, "put": PUT, "patch": PATCH,
	"delete": DELETE, "options": OPTIONS, "head": HEAD,
}

// ModelProperty is one member of a model. OriginalName is the wire key.
type ModelProperty struct {
	Name         string
	OriginalName string
	Type         TypeExpr
	Required     bool
	Description  string
}

// ModelDef is a model derived from one components.schemas entry.
type ModelDef struct {
	RawName     string
	Name        string
	Description string
	Properties  []ModelProperty
	// Folder is a sanitized, slash-separated path below the models root.
	Folder string
}

// ParamLocation is the "in" of a parameter.
type ParamLocation string

const (
	InPath   ParamLocation = "path"
	InQuery  ParamLocation = "query"
	InHeader ParamLocation = "header"
	InCookie ParamLocation = "cookie"
)

// ParameterInfo is a resolved path or query parameter.
type ParameterInfo struct {
	Name        string
	Location    ParamLocation
	Required    bool
	Type        TypeExpr
	Description string
}

// Operation is one method under a retained path item. Parameters,
// RequestBody and Responses are the raw document fragments.
type Operation struct {
	Method      HTTPMethod
	Path        string
	SourcePath  string
	Summary     string
	OperationID string
	Tags        []string
	Parameters  []*spec.Node
	RequestBody *spec.Node
	Responses   *spec.Node
}

// Wrapper names a response envelope.
type Wrapper string

const (
	NoWrapper   Wrapper = ""
	PageWrapper Wrapper = "PageResp"
)

// OperationModel is the emission-ready projection of an Operation.
type OperationModel struct {
	Name            string
	Method          string
	Path            string
	Summary         string
	PathParams      []ParameterInfo
	QueryParams     []ParameterInfo
	HasBody         bool
	BodyModel       string
	ResponseModel   *TypeExpr
	ResponseWrapper Wrapper
}

// UsesModels reports whether the operation references a model as its body
// or response type.
func (m OperationModel) UsesModels() bool {
	return m.BodyModel != "" || m.ResponseModel != nil
}
