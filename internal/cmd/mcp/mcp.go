// Package mcp parses MCP command flags and runs the stdio server.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/dawctl/reaper-mcp/internal/mcp/service"
	"github.com/dawctl/reaper-mcp/internal/platform/config"
	"github.com/dawctl/reaper-mcp/internal/platform/otel"
)

// Config holds MCP command configuration.
type Config struct {
	ReaperAddr  string `env:"REAPER_MCP_REAPER_ADDR"      envDefault:"localhost:8080"`
	Section     string `env:"REAPER_MCP_EXTSTATE_SECTION" envDefault:"reaper_mcp"`
	ResourceDir string `env:"REAPER_MCP_RESOURCE_DIR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.ReaperAddr, "reaper-addr", cfg.ReaperAddr, "REAPER web interface address")
	fs.StringVar(&cfg.Section, "section", cfg.Section, "ExtState section shared with the bridge script")
	fs.StringVar(&cfg.ResourceDir, "resource-dir", cfg.ResourceDir, "REAPER resource directory (defaults to the per-user path)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "reaper-mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return service.Run(ctx, service.Config{
		ReaperAddr:  cfg.ReaperAddr,
		Section:     cfg.Section,
		ResourceDir: cfg.ResourceDir,
	})
}
