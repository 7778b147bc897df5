// Command osukit inspects, indexes, and searches osu! beatmaps.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"osukit/beatmap"
	"osukit/index"
	"osukit/osuapi"
	"osukit/osz"
	"osukit/pkg/config"
)

func main() {
	cmd := &cli.Command{
		Name:  "osukit",
		Usage: "Parse, index, and search osu! beatmaps",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "osukit.yaml",
				Sources: cli.EnvVars("OSUKIT_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			infoCommand(),
			setCommand(),
			indexCommand(),
			searchCommand(),
			lookupCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func loadConfig(cmd *cli.Command) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := config.LoadOrDefault(cmd.String("config"), cfg); err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))
	return cfg, nil
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Print a summary of one .osu file",
		ArgsUsage: "<file.osu>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected one .osu file argument")
			}
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			path := cmd.Args().First()
			b, diags, err := beatmap.DecodeFile(path)
			if err != nil {
				return err
			}
			for _, d := range diags {
				slog.Warn("parse issue", slog.String("file", path), slog.String("detail", d.String()))
			}

			fmt.Printf("%s - %s [%s] by %s\n",
				b.Metadata.Artist, b.Metadata.Title, b.Metadata.Version, b.Metadata.Creator)
			fmt.Printf("format v%d, mode %d\n", b.FormatVersion, b.General.Mode)
			fmt.Printf("AR%.1f CS%.1f OD%.1f HP%.1f\n",
				b.Difficulty.ApproachRate, b.Difficulty.CircleSize,
				b.Difficulty.OverallDifficulty, b.Difficulty.HPDrainRate)
			fmt.Printf("%d hit objects, %d timing points\n", len(b.HitObjects), b.Timing.Len())
			if p, ok := b.Timing.EffectiveUninherited(0); ok {
				fmt.Printf("starting BPM %.2f\n", p.BPM())
			}
			return nil
		},
	}
}

func setCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "List the difficulties of an .osz archive or song directory",
		ArgsUsage: "<set.osz | directory>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected one archive or directory argument")
			}
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			path := cmd.Args().First()
			st, err := os.Stat(path)
			if err != nil {
				return err
			}

			var set *beatmap.BeatmapSet
			var diags []osz.FileDiagnostic
			if st.IsDir() {
				set, diags, err = osz.ReadDir(ctx, path)
			} else {
				set, diags, err = osz.ReadFile(path)
			}
			if err != nil {
				return err
			}
			for _, d := range diags {
				slog.Warn("parse issue", slog.String("detail", d.String()))
			}

			fmt.Printf("%s - %s by %s (set %d)\n", set.Artist, set.Title, set.Creator, set.ID)
			for name, b := range set.Maps {
				fmt.Printf("  [%s] AR%.1f, %d objects\n",
					name, b.Difficulty.ApproachRate, len(b.HitObjects))
			}
			return nil
		},
	}
}

func indexCommand() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Scan the songs directory into the beatmap catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "songs",
				Usage: "Songs directory to scan (overrides config)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			songs := cmd.String("songs")
			if songs == "" {
				songs = cfg.Songs
			}
			if songs == "" {
				return fmt.Errorf("no songs directory: pass --songs or set it in the config")
			}

			db, err := index.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			var indexed, failed int
			err = filepath.WalkDir(songs, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".osu") {
					return nil
				}
				b, _, err := beatmap.DecodeFile(path)
				if err != nil {
					slog.Warn("skipping file", slog.String("file", path), slog.String("error", err.Error()))
					failed++
					return nil
				}
				if err := db.Upsert(index.NewRow(path, b)); err != nil {
					return err
				}
				indexed++
				return nil
			})
			if err != nil {
				return err
			}

			slog.Info("index updated", slog.Int("indexed", indexed), slog.Int("failed", failed))
			return nil
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the beatmap catalog",
		ArgsUsage: "<query>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected one query argument")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			db, err := index.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := db.Search(cmd.Args().First())
			if err != nil {
				return err
			}
			for _, r := range rows {
				fmt.Printf("%s - %s [%s] by %s\t%s\n", r.Artist, r.Title, r.Version, r.Creator, r.Path)
			}
			if len(rows) == 0 {
				fmt.Println("no matches")
			}
			return nil
		},
	}
}

func lookupCommand() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Fetch beatmap set metadata from the osu! API",
		ArgsUsage: "<set-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected one set id argument")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.API.ClientID == 0 || cfg.API.ClientSecret == "" {
				return fmt.Errorf("api credentials missing from the config")
			}

			var id int
			if _, err := fmt.Sscanf(cmd.Args().First(), "%d", &id); err != nil {
				return fmt.Errorf("set id must be a number: %w", err)
			}

			client := osuapi.NewClient(cfg.API.ClientID, cfg.API.ClientSecret)
			set, err := client.GetBeatmapset(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("%s - %s by %s (%s)\n", set.Artist, set.Title, set.Creator, set.Status)
			for _, b := range set.Beatmaps {
				fmt.Printf("  [%s] %.2f stars, AR%.1f CS%.1f\n",
					b.Version, b.DifficultyRating, b.AR, b.CS)
			}
			return nil
		},
	}
}
