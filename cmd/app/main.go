package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/fretwork/internal"
	"github.com/starford/fretwork/internal/chord"
	"github.com/starford/fretwork/internal/diagramservice"
	"github.com/starford/fretwork/internal/models"
	pkgconfig "github.com/starford/fretwork/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("mcp run error: %w", err)
	}
	return nil
}

// withApp opens the catalogue for a one-shot command. Logs go to stderr
// so stdout carries only the result.
func withApp(cmd *cli.Command, fn func(*internal.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.App.LogLevel = slog.LevelWarn
	app, err := internal.Open(internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func emit(cmd *cli.Command, d *models.Diagram) error {
	if out := cmd.String("out"); out != "" {
		if err := os.WriteFile(out, d.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		return nil
	}
	_, err := os.Stdout.Write(d.Content)
	return err
}

func chordAction(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.Args().First()
	if arg == "" {
		return fmt.Errorf("a chord shape (e.g. x32010) or name (e.g. \"C Major\") is required")
	}
	return withApp(cmd, func(app *internal.App) error {
		var (
			d   *models.Diagram
			err error
		)
		if _, perr := chord.ParseShape(arg); perr == nil {
			d, err = app.Service.RenderChord(ctx, arg, cmd.String("title"), cmd.String("format"))
		} else {
			d, err = app.Service.RenderNamedChord(ctx, arg, cmd.String("format"))
		}
		if err != nil {
			return err
		}
		return emit(cmd, d)
	})
}

func scaleAction(ctx context.Context, cmd *cli.Command) error {
	return withApp(cmd, func(app *internal.App) error {
		d, _, err := app.Service.RenderScale(ctx, diagramservice.ScaleRequest{
			Type:      cmd.String("type"),
			Root:      cmd.String("root"),
			Highlight: cmd.String("highlight"),
			Labels:    !cmd.Bool("no-labels"),
			Format:    cmd.String("format"),
		}, int(cmd.Int("pattern")))
		if err != nil {
			return err
		}
		return emit(cmd, d)
	})
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	return withApp(cmd, func(app *internal.App) error {
		res, err := app.Service.Export(ctx, diagramservice.ExportOptions{
			Roots:     cmd.StringSlice("root"),
			Highlight: cmd.String("highlight"),
		})
		if err != nil {
			return err
		}
		fmt.Printf("exported to %s: %d written, %d unchanged\n",
			app.Output.Root(), len(res.Written), len(res.Unchanged))
		return nil
	})
}

// Flags carry parse state, so each command gets its own instances.
func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "Output format: text or svg",
		Value: diagramservice.FormatText,
	}
}

func outFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Write the diagram to a file instead of stdout",
	}
}

func highlightFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "highlight",
		Usage: "Tonic to highlight: none, major or minor",
		Value: "none",
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "fretwork",
		Usage:  "Guitar chord and scale diagrams over HTTP, MCP and the terminal",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the MCP tools on stdin/stdout",
				Action: serveMCP,
			},
			{
				Name:      "chord",
				Usage:     "Draw a chord diagram",
				ArgsUsage: "<shape|name>",
				Flags: []cli.Flag{
					formatFlag(),
					outFlag(),
					&cli.StringFlag{Name: "title", Usage: "Diagram title"},
				},
				Action: chordAction,
			},
			{
				Name:  "scale",
				Usage: "Draw one scale pattern",
				Flags: []cli.Flag{
					formatFlag(),
					outFlag(),
					highlightFlag(),
					&cli.StringFlag{Name: "type", Usage: "diatonic or pentatonic", Value: "diatonic"},
					&cli.IntFlag{Name: "pattern", Aliases: []string{"p"}, Usage: "Pattern number, 1 to 5", Value: 1},
					&cli.StringFlag{Name: "root", Usage: "Root note", Value: "C"},
					&cli.BoolFlag{Name: "no-labels", Usage: "Hide note names"},
				},
				Action: scaleAction,
			},
			{
				Name:  "export",
				Usage: "Write SVG files for every chord and scale pattern",
				Flags: []cli.Flag{
					highlightFlag(),
					&cli.StringSliceFlag{Name: "root", Usage: "Scale root to export (repeatable)"},
				},
				Action: exportAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
