package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/paramgen/internal/config"
	"github.com/simonhull/paramgen/internal/logger"
	"github.com/simonhull/paramgen/internal/output"
	"github.com/simonhull/paramgen/internal/params"
	"github.com/simonhull/paramgen/internal/render"
)

// builtinSource names the built-in table in messages
const builtinSource = "built-in shared params"

// loadConfig reads the config selected by --config and sets up logging.
// An explicitly requested config file must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if cmd.Flags().Changed("config") && !config.Exists(path) {
		return nil, fmt.Errorf("config file %s not found", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if output.IsVerbose() {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.NewLogger(level, cmd.ErrOrStderr()))

	if cfg.File != "" {
		logger.Debug("loaded config", logger.F("file", cfg.File), logger.F("targets", len(cfg.Targets)))
	}
	return cfg, nil
}

// newRenderer builds a renderer from the config; templates overrides the
// configured template directory when non-empty.
func newRenderer(cfg *config.Config, templates string) *render.Renderer {
	if templates == "" {
		templates = cfg.Templates
	}
	if templates != "" {
		output.Verbose("Using templates from " + templates)
	}
	return render.New(
		render.WithGenerator(cfg.Generator),
		render.WithImportModule(cfg.Import),
		render.WithTemplateDir(templates),
	)
}

// loadTable returns the table from a schema file, or the built-in table
// when path is empty, along with a name for messages.
func loadTable(path string) (params.Table, string, error) {
	if path == "" {
		return params.Shared(), builtinSource, nil
	}

	table, err := params.LoadSchema(path)
	if err != nil {
		return params.Table{}, "", err
	}
	output.Verbose(fmt.Sprintf("Loaded %d param(s) from %s", len(table.Params), path))
	return table, path, nil
}

// resolveTargets picks the targets a command works on: every configured
// target with --all, otherwise the single --schema/--out pair.
func resolveTargets(cfg *config.Config, schema, out string, all bool) ([]config.Target, error) {
	if !all {
		return []config.Target{{Schema: schema, Out: out}}, nil
	}

	if schema != "" || out != "" {
		return nil, fmt.Errorf("--all cannot be combined with --schema or --out")
	}
	if len(cfg.Targets) == 0 {
		if cfg.File == "" {
			return nil, fmt.Errorf("--all needs targets in a config file, and none was found")
		}
		return nil, fmt.Errorf("no targets configured in %s", cfg.File)
	}
	return cfg.Targets, nil
}

// renderTarget renders the module for one target
func renderTarget(r *render.Renderer, target config.Target) ([]byte, error) {
	table, source, err := loadTable(target.Schema)
	if err != nil {
		return nil, err
	}

	// The renderer does not validate; surface obvious problems without
	// blocking generation.
	for _, issue := range params.Lint(table) {
		if issue.Severity == params.SeverityError {
			logger.Warn("schema problem", logger.F("source", source), logger.F("issue", issue.String()))
		}
	}

	src, err := r.Module(table)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", source, err)
	}

	logger.Debug("rendered module",
		logger.F("source", source),
		logger.F("params", len(table.Params)),
		logger.F("group", table.Group != nil),
		logger.F("bytes", len(src)),
	)
	return src, nil
}
