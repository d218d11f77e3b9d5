package tsemitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/swagger2ts/internal/emitter"
	"github.com/mark3labs/swagger2ts/internal/ir"
)

func sampleModels() []ir.ModelDef {
	return []ir.ModelDef{
		{
			RawName: "Widget", Name: "Widget", Description: "A widget.",
			Properties: []ir.ModelProperty{
				{Name: "widgetId", OriginalName: "widget_id", Type: ir.PrimitiveType(ir.Number), Required: true, Description: "Identifier"},
				{Name: "owner", OriginalName: "owner", Type: ir.RefType("Owner")},
				{Name: "parts", OriginalName: "parts", Type: ir.ArrayOf(ir.RefType("Part"))},
				{Name: "parent", OriginalName: "parent", Type: ir.RefType("Widget")},
				{Name: "meta", OriginalName: "meta", Type: ir.MapType()},
				{Name: "tags", OriginalName: "tags", Type: ir.ArrayOf(ir.PrimitiveType(ir.String))},
			},
		},
		{RawName: "Owner", Name: "Owner", Folder: "people", Properties: []ir.ModelProperty{
			{Name: "name", OriginalName: "name", Type: ir.PrimitiveType(ir.String)},
		}},
		{RawName: "Part", Name: "Part", Folder: "parts/inner", Properties: []ir.ModelProperty{
			{Name: "widget", OriginalName: "widget", Type: ir.RefType("Widget")},
		}},
	}
}

func sampleGroups() []emitter.TagGroup {
	widget := ir.RefType("Widget")
	widgets := ir.ArrayOf(ir.RefType("Widget"))
	return []emitter.TagGroup{
		{Tag: "widgets", Operations: []ir.OperationModel{
			{
				Name: "listWidgets", Method: "GET", Path: "/widgets", Summary: "List widgets",
				QueryParams: []ir.ParameterInfo{
					{Name: "page", Location: ir.InQuery, Type: ir.PrimitiveType(ir.Number), Description: "Page number"},
					{Name: "page-size", Location: ir.InQuery, Type: ir.PrimitiveType(ir.Number)},
				},
				ResponseModel: &widgets, ResponseWrapper: ir.PageWrapper,
			},
			{
				Name: "getWidget", Method: "GET", Path: "/widgets/{id}",
				PathParams:    []ir.ParameterInfo{{Name: "id", Location: ir.InPath, Required: true, Type: ir.PrimitiveType(ir.String)}},
				ResponseModel: &widget,
			},
			{
				Name: "getWidget", Method: "GET", Path: "/widgets/{widget-id}/parts/{part}",
				PathParams: []ir.ParameterInfo{
					{Name: "widget-id", Location: ir.InPath, Required: true, Type: ir.PrimitiveType(ir.String)},
					{Name: "part", Location: ir.InPath, Required: true, Type: ir.PrimitiveType(ir.Number)},
				},
			},
			{Name: "createWidget", Method: "POST", Path: "/widgets", HasBody: true, BodyModel: "Widget", ResponseModel: &widget},
		}},
		{Tag: "misc", Operations: []ir.OperationModel{
			{Name: "ping", Method: "POST", Path: "/ping/{ping-id}", HasBody: true,
				PathParams: []ir.ParameterInfo{{Name: "ping-id", Location: ir.InPath, Required: true, Type: ir.PrimitiveType(ir.String)}},
				QueryParams: []ir.ParameterInfo{{Name: "force", Location: ir.InQuery, Required: true, Type: ir.PrimitiveType(ir.Boolean)}},
			},
		}},
	}
}

func render(t *testing.T, cfg BaseHTTPConfig) map[string]string {
	t.Helper()
	r := New(cfg)
	plan := emitter.NewPlan(sampleModels(), sampleGroups(), emitter.PlanOptions{ReservedAliases: r.ReservedNames()})
	artifacts, err := r.Render(plan)
	require.NoError(t, err)
	out := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		out[a.RelPath] = string(a.Content)
	}
	return out
}

func TestRenderManifest(t *testing.T) {
	r := New(BaseHTTPConfig{})
	plan := emitter.NewPlan(sampleModels(), sampleGroups(), emitter.PlanOptions{ReservedAliases: r.ReservedNames()})
	artifacts, err := r.Render(plan)
	require.NoError(t, err)

	var paths []string
	for _, a := range artifacts {
		paths = append(paths, a.RelPath)
	}
	assert.Equal(t, []string{
		"base_http.ts", "base_http.d.ts",
		"models/Widget.ts", "models/Widget.d.ts",
		"models/people/Owner.ts", "models/people/Owner.d.ts",
		"models/parts/inner/Part.ts", "models/parts/inner/Part.d.ts",
		"models/index.ts", "models/index.d.ts",
		"models/people/index.ts", "models/people/index.d.ts",
		"models/parts/inner/index.ts", "models/parts/inner/index.d.ts",
		"widgets/request.ts", "widgets/request.d.ts",
		"misc/request.ts", "misc/request.d.ts",
		"index.ts", "index.d.ts",
	}, paths)
}

func TestRenderModel(t *testing.T) {
	files := render(t, BaseHTTPConfig{})
	widget := files["models/Widget.ts"]

	assert.True(t, strings.HasPrefix(widget, "/* eslint-disable */\nimport { Owner } from './people/Owner';\nimport { Part } from './parts/inner/Part';\n\n"))
	assert.NotContains(t, widget, "import { Widget }", "self references are not imported")
	assert.Contains(t, widget, "/**\n * A widget.\n */\nexport class Widget {")
	assert.Contains(t, widget, "  /** Identifier */\n  widgetId: number;\n")
	assert.Contains(t, widget, "  owner?: Owner;\n")
	assert.Contains(t, widget, "  meta?: Record<string, any>;\n")
	assert.Contains(t, widget, "  constructor(data: Omit<Widget, 'toJson'>) {\n    this.widgetId = data.widgetId;")
	assert.Contains(t, widget, "      widgetId: json['widget_id'],\n")
	assert.Contains(t, widget, "      owner: json['owner'] != null ? Owner.fromJson(json['owner']) : json['owner'],\n")
	assert.Contains(t, widget, "      parts: (json['parts'] ?? []).map((item: any) => Part.fromJson(item)),\n")
	assert.Contains(t, widget, "      tags: json['tags'],\n")
	assert.Contains(t, widget, "      'widget_id': this.widgetId,\n")
	assert.Contains(t, widget, "      'owner': this.owner ? this.owner.toJson() : this.owner,\n")
	assert.Contains(t, widget, "      'parts': this.parts ? this.parts.map((item) => item.toJson()) : this.parts,\n")

	part := files["models/parts/inner/Part.ts"]
	assert.Contains(t, part, "import { Widget } from '../../Widget';")

	decl := files["models/Widget.d.ts"]
	assert.True(t, strings.HasPrefix(decl, "import { Owner } from './people/Owner';"))
	assert.Contains(t, decl, "export declare class Widget {")
	assert.Contains(t, decl, "  static fromJson(json: any): Widget;\n  toJson(): any;\n}")
}

func TestRenderBarrels(t *testing.T) {
	files := render(t, BaseHTTPConfig{})
	assert.Equal(t, "export * from './Widget';\nexport * from './people/Owner';\nexport * from './parts/inner/Part';\n", files["models/index.ts"])
	assert.Equal(t, files["models/index.ts"], files["models/index.d.ts"])
	assert.Equal(t, "export * from './Owner';\n", files["models/people/index.ts"])
	assert.Equal(t, "export * from './base_http';\nexport * as models from './models';\nexport * as widgets from './widgets/request';\nexport * as misc from './misc/request';\n", files["index.ts"])
}

func TestRenderTagFile(t *testing.T) {
	files := render(t, BaseHTTPConfig{})
	src := files["widgets/request.ts"]

	assert.True(t, strings.HasPrefix(src, "/* eslint-disable */\nimport { applyPathParams, request, PageResp } from '../base_http';\n\nimport * as models from '../models';\n\n"))
	assert.Contains(t, src, "export interface ListWidgetsQueryParams {\n  page?: number;\n  'page-size'?: number;\n}\n")
	assert.Contains(t, src, "export async function listWidgets(params?: ListWidgetsQueryParams): Promise<PageResp<models.Widget>> {\n  const url = '/widgets';\n  return request<PageResp<models.Widget>>({ method: 'GET', url, params });\n}\n")
	assert.Contains(t, src, "export async function getWidget(id: string): Promise<models.Widget> {\n  const url = applyPathParams('/widgets/{id}', { id });")
	assert.Contains(t, src, "export interface GetWidget2PathParams {\n  'widget-id': string;\n  part: number;\n}\n")
	assert.Contains(t, src, "export async function getWidget2(pathParams: GetWidget2PathParams): Promise<any> {\n  const url = applyPathParams('/widgets/{widget-id}/parts/{part}', pathParams);")
	assert.Contains(t, src, "export async function createWidget(body: models.Widget): Promise<models.Widget> {")
	assert.Contains(t, src, "({ method: 'POST', url, data: body.toJson() })")
	assert.Contains(t, src, "/**\n * List widgets\n *\n * parameters\n * @queryParam {number?} page: Page number\n * @queryParam {number?} page-size\n * @return {PageResp<models.Widget>}\n */\n")

	decl := files["widgets/request.d.ts"]
	assert.True(t, strings.HasPrefix(decl, "import { PageResp } from '../base_http';\n\nimport * as models from '../models';\n\n"))
	assert.Contains(t, decl, "export declare function getWidget2(pathParams: GetWidget2PathParams): Promise<any>;")
	assert.Contains(t, decl, "export interface ListWidgetsQueryParams {")
}

func TestRenderTagFileWithoutModels(t *testing.T) {
	files := render(t, BaseHTTPConfig{})
	src := files["misc/request.ts"]
	assert.True(t, strings.HasPrefix(src, "/* eslint-disable */\nimport { applyPathParams, request } from '../base_http';\n\n"))
	assert.NotContains(t, src, "../models")
	assert.Contains(t, src, "export interface PingBody {\n  [key: string]: any;\n}\n")
	assert.Contains(t, src, "export async function ping(pingId: string, params: PingQueryParams, body?: PingBody): Promise<any> {")
	assert.Contains(t, src, "applyPathParams('/ping/{ping-id}', { 'ping-id': pingId })")
	assert.Contains(t, src, "({ method: 'POST', url, params, data: body })")
	assert.NotContains(t, files["misc/request.d.ts"], "import")
}

func TestRenderBaseHTTPTemplates(t *testing.T) {
	fetch := render(t, BaseHTTPConfig{})["base_http.ts"]
	assert.True(t, strings.HasPrefix(fetch, "/* eslint-disable */\n\nexport type RequestOptions = {"))
	assert.Contains(t, fetch, "export interface PageResp<T> {\n  data: PageData<T>;\n}")
	assert.Contains(t, fetch, "export const BASE_URL = '';")
	assert.Contains(t, fetch, "const response = await fetch(url, {")
	assert.NotContains(t, fetch, "axios")

	axios := render(t, BaseHTTPConfig{Template: TemplateAxios})["base_http.ts"]
	assert.True(t, strings.HasPrefix(axios, "/* eslint-disable */\nimport axios from 'axios';\n"))
	assert.Contains(t, axios, "axios.request<T>({")

	custom := render(t, BaseHTTPConfig{
		CustomImports:   "import { token } from './auth';",
		PageResp:        "export type PageResp<T> = { items: T[] };",
		RequestTemplate: "export const request = async <T>(o: RequestOptions): Promise<T> => ({} as T);\n",
	})
	assert.Contains(t, custom["base_http.ts"], "import { token } from './auth';")
	assert.Contains(t, custom["base_http.ts"], "export type PageResp<T> = { items: T[] };")
	assert.NotContains(t, custom["base_http.ts"], "PageData")
	assert.Contains(t, custom["base_http.ts"], "export const request = async <T>")
	assert.NotContains(t, custom["base_http.ts"], "fetch(url")
	assert.Contains(t, custom["base_http.d.ts"], "export type PageResp<T> = { items: T[] };")
	assert.Contains(t, custom["base_http.d.ts"], "export function request<T>(options: RequestOptions): Promise<T>;")
}

func TestRenderRejectsUnknownTemplate(t *testing.T) {
	_, err := New(BaseHTTPConfig{Template: "xhr"}).Render(emitter.Plan{})
	assert.Error(t, err)
}

func TestRenderEmptyPlan(t *testing.T) {
	artifacts, err := New(BaseHTTPConfig{}).Render(emitter.Plan{})
	require.NoError(t, err)
	files := map[string]string{}
	for _, a := range artifacts {
		files[a.RelPath] = string(a.Content)
	}
	assert.Equal(t, "export {};\n", files["models/index.ts"])
	assert.Equal(t, "export * from './base_http';\nexport * as models from './models';\n", files["index.ts"])
}

func TestAliasAvoidsBaseExports(t *testing.T) {
	r := New(BaseHTTPConfig{})
	plan := emitter.NewPlan(nil, []emitter.TagGroup{{Tag: "request"}, {Tag: "default"}}, emitter.PlanOptions{ReservedAliases: r.ReservedNames()})
	require.Len(t, plan.Tags, 2)
	assert.Equal(t, "request", plan.Tags[0].Dir)
	assert.Equal(t, "request2", plan.Tags[0].Alias)
	assert.Equal(t, "default", plan.Tags[1].Dir)
	assert.Equal(t, "default2", plan.Tags[1].Alias)
}

func TestArgName(t *testing.T) {
	assert.Equal(t, "id", argName("id"))
	assert.Equal(t, "widgetId", argName("widget-id"))
	assert.Equal(t, "_default", argName("default"))
	assert.Equal(t, "param", argName("---"))
	assert.Equal(t, "'a\\'b'", quote("a'b"))
}
