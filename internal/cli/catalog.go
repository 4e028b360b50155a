// Package cli implements the fern command line, currently the catalog
// generation pipeline used at build time by the editor tooling.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fern-lang/fern/internal/generator"
	"github.com/fern-lang/fern/internal/introspect"
	"github.com/fern-lang/fern/pkg/engine"
)

// NewCatalogCommand returns the catalog command group.
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Editor catalog utilities",
	}
	cmd.AddCommand(newGenerateCommand())
	return cmd
}

func newGenerateCommand() *cobra.Command {
	var config GenerateConfig

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the editor autocompletion catalogs",
		RunE: func(_ *cobra.Command, _ []string) error {
			return Generate(&config)
		},
	}

	cmd.Flags().StringVar(&config.SourcePath, "source", "./pkg/engine", "Directory containing the engine source for documentation extraction")
	cmd.Flags().StringVar(&config.OutputDir, "out", ".", "Directory the catalog files are written to")
	cmd.Flags().StringVar(&config.Format, "format", "ts", "Output format: ts or json")
	cmd.Flags().StringVar(&config.ConfigPath, "config", "", "Path to .fern.yml config file")

	return cmd
}

// GenerateConfig holds configuration for catalog generation.
type GenerateConfig struct {
	SourcePath string `validate:"required"`
	OutputDir  string `validate:"required"`
	Format     string `validate:"oneof=ts json"`
	ConfigPath string
}

// Generate runs both extraction pipelines and writes the catalog files.
// Nothing is written until every catalog is fully built and validated, so a
// failing run never leaves partial output behind.
func Generate(config *GenerateConfig) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := loadConfigFile(config); err != nil {
		return err
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	insp := introspect.NewInspector()
	if err := insp.ParseDirectory(config.SourcePath); err != nil {
		return fmt.Errorf("parse engine source: %w", err)
	}
	logger.Info("parsed engine source", zap.String("dir", config.SourcePath))

	env := engine.DefaultEnvironment()
	filters, err := generator.BuildCallableCatalog(insp, env.Filters)
	if err != nil {
		return fmt.Errorf("build filter catalog: %w", err)
	}
	tests, err := generator.BuildCallableCatalog(insp, env.Tests)
	if err != nil {
		return fmt.Errorf("build test catalog: %w", err)
	}
	globals, err := generator.BuildCallableCatalog(insp, env.Globals)
	if err != nil {
		return fmt.Errorf("build global catalog: %w", err)
	}
	logger.Info("built callable catalogs",
		zap.Int("filters", filters.Len()),
		zap.Int("tests", tests.Len()),
		zap.Int("globals", globals.Len()))

	types, err := generator.BuildTypeCatalog(insp, engine.DefaultSamples())
	if err != nil {
		return fmt.Errorf("build type catalog: %w", err)
	}
	logger.Info("built type catalog", zap.Int("types", types.Len()))

	if err := validateCatalogs(filters, tests, globals, types); err != nil {
		return fmt.Errorf("catalog validation failed: %w", err)
	}

	return writeOutput(config, logger, filters, tests, globals, types)
}

func loadConfigFile(config *GenerateConfig) error {
	if config.ConfigPath == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Clean(config.ConfigPath))
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var cfg struct {
		Catalog struct {
			Source string `yaml:"source"`
			Out    string `yaml:"out"`
			Format string `yaml:"format"`
		} `yaml:"catalog"`
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	// Apply config values if flags weren't set
	if config.SourcePath == "./pkg/engine" && cfg.Catalog.Source != "" {
		config.SourcePath = cfg.Catalog.Source
	}
	if config.OutputDir == "." && cfg.Catalog.Out != "" {
		config.OutputDir = cfg.Catalog.Out
	}
	if config.Format == "ts" && cfg.Catalog.Format != "" {
		config.Format = cfg.Catalog.Format
	}

	return nil
}

// validateCatalogs runs struct validation over every descriptor before
// anything touches the disk.
func validateCatalogs(filters, tests, globals *generator.CallableCatalog, types *generator.TypeCatalog) error {
	v := validator.New()
	for _, cat := range []*generator.CallableCatalog{filters, tests, globals} {
		for _, name := range cat.Keys() {
			desc, _ := cat.Get(name)
			if err := v.Struct(desc); err != nil {
				return fmt.Errorf("callable %q: %w", name, err)
			}
		}
	}
	for _, name := range types.Keys() {
		desc, _ := types.Get(name)
		if err := v.Struct(desc); err != nil {
			return fmt.Errorf("type %q: %w", name, err)
		}
	}
	return nil
}

func writeOutput(config *GenerateConfig, logger *zap.Logger, filters, tests, globals *generator.CallableCatalog, types *generator.TypeCatalog) error {
	var (
		callableName, typesName string
		callableData, typesData []byte
		err                     error
	)

	switch config.Format {
	case "json":
		callableName, typesName = "generated.json", "builtinTypes.json"
		callableData, err = generator.RenderCallablesJSON(filters, tests, globals)
		if err == nil {
			typesData, err = generator.RenderTypesJSON(types)
		}
	default:
		callableName, typesName = "generated.ts", "builtinTypes.ts"
		callableData, err = generator.RenderCallablesTS(filters, tests, globals)
		if err == nil {
			typesData, err = generator.RenderTypesTS(types)
		}
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, out := range []struct {
		name string
		data []byte
	}{
		{callableName, callableData},
		{typesName, typesData},
	} {
		path := filepath.Join(config.OutputDir, out.name)
		if err := os.WriteFile(path, out.data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out.name, err)
		}
		logger.Info("wrote catalog", zap.String("path", path), zap.Int("bytes", len(out.data)))
	}
	return nil
}
