package main

import (
	"fmt"
	"log"
	"os"

	"leafslide/internal/scan"
	"leafslide/internal/settings"

	"github.com/spf13/cobra"
)

var (
	dbDirFlag     string
	store         *settings.Store
	skipFirstFlag bool
	patternFlag   string
	unmatchedFlag string
	verboseFlag   bool
)

func cliLogger(msg string) {
	log.Printf("[leafslide-cli] %s", msg)
}

// NewRootCmd creates the root command for the CLI application. It takes a
// function `openStore` responsible for opening the settings store, so tests
// can point it at a temporary database.
func NewRootCmd(openStore func(dbDir string, logger settings.LoggerFunc) (*settings.Store, error)) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "leafslide-cli",
		Short: "Leafslide CLI - preview discovery and manage settings",
	}

	// Scan command: run the discovery engine headlessly and print the
	// playback order it would produce.
	scanCmd := &cobra.Command{
		Use:   "scan [folder...]",
		Short: "List the images a slideshow over the given folders would play, in order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := scan.CompileFilter(patternFlag)
			if err != nil {
				return err
			}
			var logger scan.LoggerFunc
			if verboseFlag {
				logger = cliLogger
			}
			entries, err := scan.Discover(args, scan.Options{
				SkipFirst: skipFirstFlag,
				Filter:    filter,
				Unmatched: scan.ParsePolicy(unmatchedFlag),
				Logger:    logger,
			})
			if err != nil {
				return err
			}
			for i, e := range entries {
				cmd.Printf("%4d  %s | %s\n", i+1, e.Folder, e.Path)
			}
			cmd.Printf("%d images in %d folders\n", len(entries), countFolders(entries))
			return nil
		},
	}
	scanCmd.Flags().BoolVar(&skipFirstFlag, "skip-first", false, "Skip the first image of every leaf folder")
	scanCmd.Flags().StringVar(&patternFlag, "pattern", "", "Per-folder image count pattern containing {num}")
	scanCmd.Flags().StringVar(&unmatchedFlag, "unmatched", string(scan.ShowAll), "Policy for folders the pattern does not match: show_all or skip_folder")
	scanCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log skipped directories")
	rootCmd.AddCommand(scanCmd)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change the persisted slideshow settings",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			store, err = openStore(dbDirFlag, cliLogger)
			if err != nil {
				return fmt.Errorf("failed to open settings store: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if store != nil {
				store.Close()
			}
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.Load()
			if err != nil {
				return err
			}
			cmd.Printf("%s = %t\n", settings.KeyLooping, cfg.Looping)
			cmd.Printf("%s = %d\n", settings.KeyIntervalSeconds, cfg.IntervalSeconds)
			cmd.Printf("%s = %q\n", settings.KeyFilterPattern, cfg.FilterPattern)
			cmd.Printf("%s = %t\n", settings.KeySkipFirstImage, cfg.SkipFirstImage)
			cmd.Printf("%s = %q\n", settings.KeyUnmatchedPolicy, cfg.UnmatchedPolicy)
			return nil
		},
	}
	configCmd.AddCommand(showCmd)

	setCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.SetKey(args[0], args[1]); err != nil {
				return err
			}
			cmd.Printf("Set %s to %s\n", args[0], args[1])
			return nil
		},
	}
	configCmd.AddCommand(setCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().StringVar(&dbDirFlag, "dbdir", "", "Directory of the settings database")

	return rootCmd
}

// countFolders counts the distinct leaf folder names in the sequence. The
// same name can reappear non-adjacently when several roots hold a folder of
// the same name; it still counts once.
func countFolders(entries scan.Entries) int {
	seen := make(map[string]struct{})
	for _, e := range entries {
		seen[e.Folder] = struct{}{}
	}
	return len(seen)
}

func main() {
	rootCmd := NewRootCmd(settings.Open)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
