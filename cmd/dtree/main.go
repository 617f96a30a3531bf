package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/holgertkey/dtree/internal/app"
	"github.com/holgertkey/dtree/internal/config"
)

var (
	flagConfig  string
	flagHidden  bool
	flagFiles   bool
	flagFollow  bool
	flagDefault bool
)

var rootCmd = &cobra.Command{
	Use:   "dtree [path]",
	Short: "Interactive directory tree navigator",
	Long: `dtree browses a directory tree in the terminal with lazy loading,
fuzzy search across the whole tree, bookmarks, and file previews.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath := flagConfig
		if cfgPath == "" {
			var err error
			cfgPath, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}

		if flagDefault {
			if err := config.Default().Save(cfgPath); err != nil {
				return err
			}
			fmt.Printf("wrote default config to %s\n", cfgPath)
			return nil
		}

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("hidden") {
			cfg.Behavior.ShowHidden = flagHidden
		}
		if cmd.Flags().Changed("files") {
			cfg.Behavior.ShowFiles = flagFiles
		}
		if cmd.Flags().Changed("follow-symlinks") {
			cfg.Behavior.FollowSymlinks = flagFollow
		}

		startPath := "."
		if len(args) == 1 {
			startPath = args[0]
		}

		// UTF-8 fallback keeps non-ASCII names rendering on odd locales.
		tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

		application, err := app.New(cfg, startPath)
		if err != nil {
			return err
		}
		application.Run()
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default: user config dir)")
	rootCmd.Flags().BoolVar(&flagHidden, "hidden", false, "show hidden entries")
	rootCmd.Flags().BoolVar(&flagFiles, "files", false, "show files, not just directories")
	rootCmd.Flags().BoolVar(&flagFollow, "follow-symlinks", false, "treat symlinked directories as expandable")
	rootCmd.Flags().BoolVar(&flagDefault, "write-config", false, "write the default config file and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dtree:", err)
		os.Exit(1)
	}
}
