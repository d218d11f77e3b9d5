package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bndr/gotabulate"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/mark3labs/swagger2ts/internal/emitter/tsemitter"
	"github.com/mark3labs/swagger2ts/internal/ir"
	"github.com/mark3labs/swagger2ts/internal/pipeline"
	"github.com/mark3labs/swagger2ts/internal/spec"
)

var rawDump = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the models and operations a document resolves to",
		Long:  "Load an OpenAPI document and print the collected models and projected operations without writing anything.",
		Example: strings.TrimSpace(`  swagger2ts inspect --input openapi.json
  swagger2ts inspect --input openapi.json --raw`),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			input, _ := flags.GetString("input")
			if strings.TrimSpace(input) == "" {
				return newUsageError("inspect: --input is required")
			}
			prefix, _ := flags.GetString("url-prefix")
			hidden, _ := flags.GetStringSlice("hide-path")
			merge, _ := flags.GetString("parameter-merge")
			raw, _ := flags.GetBool("raw")

			opts := pipeline.Options{
				Input:          input,
				OutputDir:      ".",
				URLPrefix:      prefix,
				HiddenPaths:    hidden,
				ParameterMerge: ir.MergeMode(strings.ToLower(strings.TrimSpace(merge))),
			}
			if err := opts.Validate(); err != nil {
				return newUsageError("inspect: " + err.Error())
			}
			doc, err := spec.Load(cmd.Context(), input)
			if err != nil {
				return friendlyError(err, "")
			}
			gen := pipeline.Generate(doc, opts, tsemitter.New(tsemitter.BaseHTTPConfig{}).ReservedNames())
			return printInspection(cmd.OutOrStdout(), doc, gen, raw)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path or URL to the OpenAPI document")
	flags.String("url-prefix", "", "Prefix prepended to every request path")
	flags.StringSlice("hide-path", nil, "Exclude these exact paths")
	flags.String("parameter-merge", "", "How operation parameters combine with path parameters (append|override)")
	flags.Bool("raw", false, "Dump the resolved structures instead of tables")
	return cmd
}

func printInspection(w io.Writer, doc *spec.Document, gen *pipeline.Generation, raw bool) error {
	if raw {
		rawDump.Fdump(w, gen.Models, gen.Groups)
		return nil
	}

	title := doc.Title()
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(w, "%s (openapi %s): %d models, %d operations, %d tags\n\n",
		title, doc.OpenAPIVersion(), len(gen.Models), gen.OperationCount, len(gen.Groups))

	if len(gen.Models) > 0 {
		rows := make([][]string, 0, len(gen.Models))
		for _, m := range gen.Models {
			folder := m.Folder
			if folder == "" {
				folder = "-"
			}
			rows = append(rows, []string{m.Name, m.RawName, folder, strconv.Itoa(len(m.Properties))})
		}
		t := gotabulate.Create(rows)
		t.SetHeaders([]string{"Model", "Schema", "Folder", "Properties"})
		t.SetAlign("left")
		fmt.Fprintln(w, t.Render("grid"))
	}

	var rows [][]string
	for _, tf := range gen.Plan.Tags {
		for _, op := range tf.Operations {
			resp := "-"
			if op.ResponseModel != nil {
				resp = op.ResponseModel.String()
				if op.ResponseWrapper != ir.NoWrapper {
					resp = fmt.Sprintf("%s<%s>", op.ResponseWrapper, op.ResponseModel.Element())
				}
			}
			rows = append(rows, []string{tf.Tag, tf.Dir, op.Name, op.Method, op.Path, resp})
		}
	}
	if len(rows) > 0 {
		t := gotabulate.Create(rows)
		t.SetHeaders([]string{"Tag", "Folder", "Function", "Method", "Path", "Response"})
		t.SetAlign("left")
		fmt.Fprintln(w, t.Render("grid"))
	}
	return nil
}
