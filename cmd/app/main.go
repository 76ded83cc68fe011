package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/raido/internal"
	"github.com/starford/raido/internal/compile"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/mcpserver"
	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/vaultservice"
	pkgconfig "github.com/starford/raido/pkg/config"
)

func runExtract(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 1 {
		return fmt.Errorf("usage: raido extract <filename_or_folder> [root] [--final]")
	}
	target := args[0]

	root := cmd.String("root")
	if len(args) > 1 {
		root = args[1]
	}

	mode := compile.ModeNormal
	if cmd.Bool("final") {
		mode = compile.ModeFinal
	}

	c, err := compile.New(root, compile.WithMode(mode))
	if err != nil {
		return err
	}
	result, err := c.Compile(target)
	if err != nil {
		return err
	}

	fmt.Printf("Word Count: %d\n", result.WordCount)
	fmt.Print(result.Output)
	return nil
}

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	svc := vaultservice.NewService(store, db, store.Root())
	return mcpserver.New(svc).ServeStdio()
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("RAIDO_CONFIG_FILE"),
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "raido",
		Usage: "Compile wikilinked markdown vault content into consolidated documents",
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "Resolve wikilink list items under level-2 headings and print the result",
				ArgsUsage: "<filename_or_folder> [root]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "final",
						Usage: "Emit only resolved content, without separators or back-references",
					},
					&cli.StringFlag{
						Name:  "root",
						Usage: "Vault root directory",
						Value: ".",
					},
				},
				Action: runExtract,
			},
			{
				Name:   "serve",
				Usage:  "Run the vault HTTP API with index, watcher, and SSE events",
				Flags:  []cli.Flag{configFlag()},
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "Serve vault tools over the Model Context Protocol on stdio",
				Flags:  []cli.Flag{configFlag()},
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
