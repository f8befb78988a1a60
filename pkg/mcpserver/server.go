// Package mcpserver exposes the annotator as Model Context Protocol tools so
// editors and agents can request spans over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yaklabco/mdspan/internal/logging"
	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/config"
)

const serverName = "mdspan"

// Options configures the tool server.
type Options struct {
	// Version is reported to clients during initialization.
	Version string

	// Flavor is the default Markdown flavor when a call does not name one.
	Flavor string

	// Classes overrides span classes for every call.
	Classes annotate.ClassTable

	// DetectLanguages guesses code-block languages without an info string.
	DetectLanguages bool
}

// OptionsFromConfig derives server options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, version string) (Options, error) {
	classes, err := cfg.ClassTable()
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Version:         version,
		Flavor:          string(config.FlavorGFM),
		Classes:         classes,
		DetectLanguages: cfg.LanguageDetection(),
	}
	if cfg != nil && cfg.Flavor != "" {
		opts.Flavor = string(cfg.Flavor)
	}
	return opts, nil
}

// New creates an MCP server with every mdspan tool registered.
func New(opts Options) *server.MCPServer {
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Annotate Markdown source with styling spans. "+
			"Offsets are byte offsets into the content; spans are half-open [from, to)."),
	)
	srv.AddTools(Tools(opts)...)

	return srv
}

// Serve runs srv over the given stdio streams until ctx is cancelled or
// the input is closed.
func Serve(ctx context.Context, srv *server.MCPServer, in io.Reader, out io.Writer) error {
	logger := logging.FromContext(ctx)

	stdio := server.NewStdioServer(srv)
	stdio.SetErrorLogger(logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}))

	logger.Debug("serving tools over stdio")
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}
