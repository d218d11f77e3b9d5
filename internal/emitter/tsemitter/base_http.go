package tsemitter

import "strings"

var requestOptionsDecl = []string{
	"export type RequestOptions = {",
	"  method: string;",
	"  url: string;",
	"  params?: Record<string, any>;",
	"  data?: any;",
	"};",
}

var defaultPageResp = []string{
	"export interface PageData<T> {",
	"  list: T[];",
	"  page: number;",
	"  size: number;",
	"  total: number;",
	"}",
	"",
	"export interface PageResp<T> {",
	"  data: PageData<T>;",
	"}",
}

const fetchRequest = `export async function request<T>(options: RequestOptions): Promise<T> {
  const url = ` + "`${BASE_URL}${options.url}${buildQuery(options.params)}`" + `;
  const response = await fetch(url, {
    method: options.method,
    headers: { 'Content-Type': 'application/json' },
    body: options.data !== undefined ? JSON.stringify(options.data) : undefined
  });
  if (!response.ok) {
    throw new Error(` + "`Request failed: ${response.status} ${response.statusText}`" + `);
  }
  return (await response.json()) as T;
}`

const axiosRequest = `export async function request<T>(options: RequestOptions): Promise<T> {
  const response = await axios.request<T>({
    method: options.method,
    url: options.url,
    params: options.params,
    data: options.data,
    baseURL: BASE_URL
  });
  return response.data;
}`

const helpers = `export function buildQuery(params?: Record<string, any>): string {
  if (!params) {
    return '';
  }
  const query = Object.entries(params)
    .filter(([, value]) => value !== undefined && value !== null)
    .map(([key, value]) => ` + "`${encodeURIComponent(key)}=${encodeURIComponent(String(value))}`" + `)
    .join('&');
  return query ? ` + "`?${query}`" + ` : '';
}

export function applyPathParams(urlTemplate: string, params: Record<string, any>): string {
  return urlTemplate.replace(/\{([^}]+)\}/g, (_, key) => encodeURIComponent(String(params[key])));
}`

func renderBaseHTTP(cfg BaseHTTPConfig) string {
	var lines []string
	lines = append(lines, "/* eslint-disable */")
	lines = append(lines, baseImports(cfg)...)
	lines = append(lines, "")
	lines = append(lines, requestOptionsDecl...)
	lines = append(lines, "")
	lines = append(lines, pageRespLines(cfg)...)
	lines = append(lines,
		"",
		"export const BASE_URL = '';",
		"",
		helpers,
		"",
		requestFunction(cfg),
		"",
	)
	return strings.Join(lines, "\n")
}

func renderBaseHTTPDecl(cfg BaseHTTPConfig) string {
	var lines []string
	lines = append(lines, requestOptionsDecl...)
	lines = append(lines, "")
	lines = append(lines, pageRespLines(cfg)...)
	lines = append(lines,
		"",
		"export const BASE_URL: string;",
		"",
		"export function buildQuery(params?: Record<string, any>): string;",
		"export function applyPathParams(urlTemplate: string, params: Record<string, any>): string;",
		"export function request<T>(options: RequestOptions): Promise<T>;",
		"",
	)
	return strings.Join(lines, "\n")
}

func baseImports(cfg BaseHTTPConfig) []string {
	var lines []string
	if cfg.Template == TemplateAxios {
		lines = append(lines, "import axios from 'axios';")
	}
	if cfg.CustomImports != "" {
		lines = append(lines, splitLines(cfg.CustomImports)...)
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return lines
}

func pageRespLines(cfg BaseHTTPConfig) []string {
	if strings.TrimSpace(cfg.PageResp) != "" {
		return splitLines(cfg.PageResp)
	}
	return defaultPageResp
}

func requestFunction(cfg BaseHTTPConfig) string {
	if custom := strings.TrimSpace(cfg.RequestTemplate); custom != "" {
		return custom
	}
	if cfg.Template == TemplateAxios {
		return axiosRequest
	}
	return fetchRequest
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
