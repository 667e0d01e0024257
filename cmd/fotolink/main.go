package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"fotolink/internal/app"
	"fotolink/internal/config"

	"github.com/dustin/go-humanize/english"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var flagConfig string

// configPath resolves the configuration file location: the --config flag
// if set, otherwise the environment/default resolution.
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}

	defaults, err := app.GetDefaults()
	if err != nil {
		return "", fmt.Errorf("getting defaults: %w", err)
	}
	return defaults["config_path"], nil
}

// loadConfig reads the configuration file, pointing the user at
// 'config init' when none exists yet.
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.ReadFromFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no configuration at %s: run 'fotolink config init' first", path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// promptPasswords collects missing passwords for commands that contact the NAS.
func newApp(promptPasswords bool) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if promptPasswords {
		if err := app.FillPasswords(cfg); err != nil {
			return nil, err
		}
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "fotolink",
	Short: "Build album symlink trees from Synology Photos",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write a configuration template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) > 0 {
			path = args[0]
		} else {
			var err error
			path, err = configPath()
			if err != nil {
				return err
			}
		}

		// Generate a device ID so repeated logins reuse one session slot
		deviceID := uuid.New().String()

		cfg := config.DefaultConfig(deviceID)

		if err := config.Init(path, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration template written to %s\n", path)
		fmt.Printf("Device ID: %s\n", deviceID)
		fmt.Println("Edit host, users and photo_roots before running 'fotolink cache'.")
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}

		cfg, err := config.ReadFromFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Host:        %s:%d\n", cfg.Host, cfg.Port)
		fmt.Printf("Verify TLS:  %v\n", cfg.VerifyCertificate)
		fmt.Printf("Albums dir:  %s\n", cfg.AlbumsDir)
		fmt.Printf("Cache file:  %s\n", cfg.CacheFile)
		for _, u := range cfg.Users {
			password := "(will prompt)"
			if u.Password != "" {
				password = "(set)"
			}
			fmt.Printf("User:        %s %s\n", u.Username, password)
		}

		owners := make([]string, 0, len(cfg.PhotoRoots))
		for id := range cfg.PhotoRoots {
			owners = append(owners, id)
		}
		sort.Strings(owners)
		for _, id := range owners {
			fmt.Printf("Photo root:  %s -> %s\n", id, cfg.PhotoRoots[id])
		}
		return nil
	},
}

// cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Collect folder trees into the cache file",
	RunE: func(cmd *cobra.Command, args []string) error {
		workers, _ := cmd.Flags().GetInt("workers")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if workers > 0 {
			cfg.Workers = workers
		}

		if err := app.FillPasswords(cfg); err != nil {
			return err
		}

		a, err := app.NewApp(cfg)
		if err != nil {
			return fmt.Errorf("initializing app: %w", err)
		}
		defer a.Close()

		stats, err := a.CacheFolders(cmd.Context())
		if err != nil {
			return fmt.Errorf("caching folders: %w", err)
		}

		fmt.Printf("Cached %s for %s",
			english.Plural(stats.Folders, "folder", "folders"),
			english.Plural(stats.Users, "user", "users"))
		if stats.Warnings > 0 {
			fmt.Printf(" (%s)", english.Plural(stats.Warnings, "listing warning", "listing warnings"))
		}
		fmt.Println()
		return nil
	},
}

// link command
var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Build the album symlink tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.LinkAlbums(cmd.Context())
		if err != nil {
			return fmt.Errorf("linking albums: %w", err)
		}

		fmt.Printf("Linked %s: %d created, %d unchanged, %d failed\n",
			english.Plural(stats.Albums, "album", "albums"),
			stats.Created, stats.Skipped, stats.Failed)
		if stats.AlbumsFailed > 0 {
			fmt.Printf("Skipped %s\n",
				english.Plural(stats.AlbumsFailed, "unwritable album directory", "unwritable album directories"))
		}
		return nil
	},
}

// check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report broken links in the albums tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		prune, _ := cmd.Flags().GetBool("prune")

		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Check(prune)
		if err != nil {
			return err
		}

		if len(report.Broken) == 0 {
			fmt.Printf("All %s resolve.\n", english.Plural(report.Links, "link", "links"))
			return nil
		}

		for _, b := range report.Broken {
			fmt.Printf("broken: %s -> %s\n", b.Path, b.Target)
		}
		if prune {
			fmt.Printf("Removed %s and %s\n",
				english.Plural(report.Removed, "link", "links"),
				english.Plural(report.DirsRemoved, "empty directory", "empty directories"))
		} else {
			fmt.Printf("%s broken (re-run with --prune to remove)\n",
				english.Plural(len(report.Broken), "link", "links"))
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		runs, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		for _, r := range runs {
			duration := ""
			if r.FinishedAt.Valid {
				d := r.FinishedAt.Time.Sub(r.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-6s  %s  %-8s  %-12s  %s\n",
				r.ID,
				r.Operation,
				r.StartedAt.Format("2006-01-02 15:04:05"),
				r.Status,
				duration,
				r.Detail,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration file")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.Flags().IntP("workers", "w", 0, "Concurrent folder listings (0 uses the config value)")
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("prune", "p", false, "Remove broken links and empty directories")
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of runs to show")
}
