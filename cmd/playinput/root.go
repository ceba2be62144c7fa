package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/playinput/internal/app"
	"github.com/dshills/playinput/internal/config"
	"github.com/dshills/playinput/internal/input/key"
	"github.com/dshills/playinput/internal/input/keymap"
)

type rootFlags struct {
	configPath string
	keymapPath string
	logLevel   string
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "playinput",
		Short: "Map keyboard, mouse and gamepad input to on-screen touches",
		Long: `playinput turns keyboard, mouse and gamepad input into synthesized
touches laid out by a keymap file.

Press F2 to edit the keymap, alt to free the cursor and ctrl-c to quit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "settings file (default is "+defaultConfigHint()+")")
	pf.StringVarP(&flags.keymapPath, "keymap", "k", "", "keymap file, overriding the settings")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCmd(flags))
	rootCmd.AddCommand(newKeysCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newInitCmd())

	return rootCmd
}

func defaultConfigHint() string {
	if p := config.DefaultPath(); p != "" {
		return p
	}
	return "the user config directory"
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	var (
		logFile string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the remapper in this terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return app.ErrNotTerminal
			}

			var logOut io.Writer
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				logOut = f
			}

			application, err := app.New(app.Options{
				ConfigPath: flags.configPath,
				KeymapPath: flags.keymapPath,
				LogLevel:   flags.logLevel,
				LogOutput:  logOut,
				Watch:      !noWatch,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer application.Shutdown()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the keymap when its file changes")
	return cmd
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the key names a keymap can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range key.Names() {
				code, _ := key.CodeFor(name)
				if key.IsForbidden(code) {
					fmt.Fprintf(out, "%s\t(reserved)\n", name)
					continue
				}
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <keymap>",
		Short: "Check a keymap file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := keymap.Open(args[0])
			if err != nil {
				return err
			}
			km := store.Keymap()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: ok\n", args[0])
			fmt.Fprintf(out, "  buttons:           %d\n", len(km.Buttons))
			fmt.Fprintf(out, "  draggable buttons: %d\n", len(km.DraggableButtons))
			fmt.Fprintf(out, "  mouse areas:       %d\n", len(km.MouseAreas))
			fmt.Fprintf(out, "  joysticks:         %d\n", len(km.Joysticks))

			for _, name := range km.KeyNames() {
				if code, ok := key.CodeFor(name); ok && key.IsForbidden(code) {
					fmt.Fprintf(out, "  warning: %s cannot be rebound in the editor\n", name)
				}
			}
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <keymap>",
		Short: "Write the built-in keymap to a file",
		Long: `Write the built-in keymap to a file. The extension picks the format:
.yaml, .yml, .toml or .json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to replace it)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if _, err := keymap.Create(path, keymap.DefaultKeymap()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing file")
	return cmd
}
