package rcli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/config"
	"github.com/relmach/ramc/internal/oracle"
	"github.com/relmach/ramc/internal/preprocess"
	"github.com/relmach/ramc/internal/specload"
	"github.com/relmach/ramc/internal/symtab"
)

// loadUnit reads and decodes a translation-unit document from docPath.
func loadUnit(docPath string) (*specload.Document, error) {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", docPath, err)
	}
	doc, err := specload.Load(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", docPath, err)
	}
	return doc, nil
}

// loadConfig reads a YAML config at path, or returns config.Default() if
// path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildContext runs the full preprocessing pipeline over a decoded
// document and configuration, returning the oracle.Context the driver
// needs.
func buildContext(doc *specload.Document, cfg config.Config, verbose bool) (*oracle.Context, []*ast.Clause) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx := preprocess.Build(doc.Clauses, preprocess.Options{
		Relations:  doc.Relations,
		Directives: doc.Directives,
		SipsMetric: cfg.SipsMetric,
		Symbols:    symtab.New(),
		Profile:    cfg.Profile,
		Logger:     logger,
	})
	return ctx, doc.Clauses
}
