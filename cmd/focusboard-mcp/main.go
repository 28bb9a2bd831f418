package main

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	mcpadapter "focusboard/internal/adapters/mcp"
	"focusboard/internal/adapters/sqlite"
	"focusboard/internal/config"
	"focusboard/internal/logging"
)

func main() {
	flags := pflag.NewFlagSet("focusboard-mcp", pflag.ExitOnError)
	cfgFile := flags.String("config", "", "config file")
	config.AddFlags(flags)
	flags.Parse(os.Args[1:])

	// stdout carries the protocol, so logs go to stderr
	boot := logrus.New()

	cfg, err := config.Load(*cfgFile, flags)
	if err != nil {
		boot.WithError(err).Fatal("focusboard-mcp: load config")
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		boot.WithError(err).Fatal("focusboard-mcp: logger")
	}

	store, err := sqlite.Open(context.Background(), cfg.DatabasePath(), sqlite.Options{
		BackupDir:   cfg.BackupDir(),
		BusyTimeout: cfg.Backend.BusyTimeout,
		Logger:      logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("focusboard-mcp: open database")
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"focusboard-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store)

	logger.WithField("database", store.Path()).Info("Serving MCP over stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.WithError(err).Error("focusboard-mcp: serve")
		store.Close()
		os.Exit(1)
	}
}
