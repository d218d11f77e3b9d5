package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// InitConfig captures the options for the init command.
type InitConfig struct {
	OutputPath string
	Force      bool
	Verbose    bool
}

var initRunner = runInit

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a sample swagger2ts configuration file",
		Long:  "Scaffold a commented swagger2ts configuration file that documents available options.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			cfg := &InitConfig{
				OutputPath: out,
				Force:      force,
				Verbose:    verbose,
			}
			return initRunner(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("out", DefaultConfigFile, "Where to write the sample config file")
	cmd.Flags().Bool("force", false, "Overwrite the target file if it already exists")

	return cmd
}

func runInit(ctx context.Context, cfg *InitConfig) error {
	_ = ctx

	out := strings.TrimSpace(cfg.OutputPath)
	if out == "" {
		out = DefaultConfigFile
	}
	absPath, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("init: resolve output path: %w", err)
	}

	if st, err := os.Stat(absPath); err == nil && !cfg.Force {
		if st.Mode().IsRegular() {
			return newUsageError(fmt.Sprintf("init: %q already exists (use --force to overwrite)", absPath))
		}
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return newUsageError(fmt.Sprintf("init: cannot create parent directory: %v", err))
	}

	content := strings.TrimSpace(sampleConfigYAML) + "\n"

	// Atomic write via temp + rename
	tmp := absPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return newUsageError(fmt.Sprintf("init: cannot write temp file: %v\nHint: choose a different --out or check directory permissions.", err))
	}
	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return newUsageError(fmt.Sprintf("init: cannot place file at %s: %v", absPath, err))
	}
	fmt.Fprintf(os.Stdout, "Wrote sample config to %s\n", absPath)
	return nil
}

// sampleConfigYAML is a commented example config documenting available options.
const sampleConfigYAML = `# swagger2ts configuration (YAML)
# Command-line flags override config values for every entry.
# The swagger key holds one entry, a list of entries, or {items: [...]}.
# Two or more entries run as a batch; a failing entry does not stop the rest.

swagger:
  # Path or URL of the OpenAPI v3 document (http/https, file:// or a local path).
  jsonUrl: http://127.0.0.1:4523/export/openapi/2?version=3.0

  # Output directory, relative to the directory holding this file.
  outputDir: src/api

  # Remove the output directory before writing.
  # overwrite: false

  # Preview planned outputs without writing files.
  # dryRun: false

  # Exact paths to leave out.
  # pathHidden:
  #   - /internal/health

  # Prefix prepended to every request path.
  # urlPrefix: /api

  # Model folders by dotted schema namespace. An empty value keeps the
  # models at the models root.
  # schemasPackageMap:
  #   com.example.user: user

  # Model folders by schema key or generated model name. Wins over
  # schemasPackageMap.
  # customModelFolder:
  #   Widget: shop

  # Folder names for tags. Unmapped non-Latin tags are transliterated.
  # folderMap:
  #   用户: user

  # Only include or exclude operations with these tags.
  # includeTags: [public]
  # excludeTags: [internal]

  # append keeps path-level and operation-level parameters side by side;
  # override lets an operation parameter replace the shared one.
  # parameterMerge: append

  # Document download tuning. Both are off by default.
  # retries: 0
  # timeout: 30s

  # The shared base_http module.
  # baseHttp:
  #   template: fetch # or axios
  #   customImports: |
  #     import { token } from '../auth';
  #   pageResp: |
  #     export interface PageResp<T> { data: { list: T[]; total: number } }
  #   requestTemplate: |
  #     export async function request<T>(options: RequestOptions): Promise<T> {
  #       throw new Error('not implemented');
  #     }
`
