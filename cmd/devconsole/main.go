// Package main provides the devconsole CLI application entry point.
// devconsole is an interactive command console over a small in-memory scene.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devconsole/internal/config"
	"devconsole/internal/console"
	"devconsole/internal/logger"
	"devconsole/internal/output"
	"devconsole/internal/scene"
	"devconsole/internal/shell"
	"devconsole/internal/testutils"
	"devconsole/internal/version"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "devconsole",
		Short: "devconsole - interactive command console",
		Long: `devconsole runs typed commands against a scene of objects.
Commands are resolved by name and argument count, arguments are converted from text,
and the shell completes command names and argument values.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
		RunE:              a.runShell, // Default behavior is to run the interactive shell
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Read settings from this file instead of searching for devconsole.yaml")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Bool("test-mode", false, "Run in deterministic test mode")
	flags.Bool("plain", false, "Disable colors and markdown rendering")
	flags.String("scene", "", "Load the scene from a YAML file instead of the built-in one")

	for key, flag := range map[string]string{
		config.KeyLogLevel: "log-level",
		config.KeyLogFile:  "log-file",
		config.KeyTestMode: "test-mode",
		config.KeyPlain:    "plain",
		config.KeyScene:    "scene",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start interactive shell mode",
			Args:  cobra.NoArgs,
			RunE:  a.runShell,
		},
		a.execCmd(),
		a.completeCmd(),
		a.versionCmd(),
	)
	return rootCmd
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	var opts []config.Option
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	cfg, err := config.NewLoader(a.v, opts...).Load()
	if err != nil {
		return err
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		return fmt.Errorf("error configuring logger: %w", err)
	}
	a.cfg = cfg
	return nil
}

// newConsole builds a console over the configured scene writing to printer.
func (a *app) newConsole(printer *output.Printer) (*console.Console, error) {
	c, err := console.New(a.cfg, console.WithPrinter(printer))
	if err != nil {
		return nil, err
	}

	sc, err := a.loadScene()
	if err != nil {
		return nil, err
	}
	if err := scene.Install(c.Converters(), c.Suggestions(), c.Commands(), sc); err != nil {
		return nil, fmt.Errorf("failed to install scene commands: %w", err)
	}

	if a.cfg.FreezeRegistries {
		c.Freeze()
	}
	return c, nil
}

// printer returns the configured console printer writing to out.
func (a *app) printer(out io.Writer) *output.Printer {
	p := console.NewPrinter(a.cfg)
	p.SetWriter(out)
	return p
}

// loadScene reads the configured scene file, or the built-in scene when none is set.
// Object IDs are deterministic in test mode.
func (a *app) loadScene() (*scene.Scene, error) {
	ids := scene.WithIDGenerator(func() uuid.UUID {
		return testutils.GenerateUUID(a.cfg.TestMode)
	})
	if a.cfg.Scene == "" {
		return scene.Default(ids)
	}
	logger.Debug("Loading scene", "component", "main", "path", a.cfg.Scene)
	return scene.LoadFile(a.cfg.Scene, ids)
}

func (a *app) runShell(cmd *cobra.Command, _ []string) error {
	logger.Info("Starting devconsole", "version", version.Version)

	c, err := a.newConsole(a.printer(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	return shell.New(c).Run()
}

func (a *app) execCmd() *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "exec [command line]",
		Short: "Execute one command line or a script without entering the shell",
		Long: `Execute a single command line, given as arguments, or every line of a script file.
Use "-f -" to read the script from standard input. Blank lines and lines starting with # are skipped.`,
		Example: `  devconsole exec move 1,0,0
  devconsole exec 'cubes-set-speed "Second Cube" 4'
  devconsole exec -f setup.dcs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var script io.Reader
			switch {
			case scriptPath == "-":
				script = cmd.InOrStdin()
			case scriptPath != "":
				f, err := os.Open(scriptPath)
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer func() { _ = f.Close() }()
				script = f
			case len(args) > 0:
				script = strings.NewReader(strings.Join(args, " "))
			default:
				return fmt.Errorf("nothing to execute: pass a command line or --file")
			}

			c, err := a.newConsole(a.printer(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			result, err := shell.RunScript(c, script)
			if err != nil {
				return err
			}
			if result.Failed > 0 {
				return fmt.Errorf("%d of %d command lines failed", result.Failed, result.Executed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&scriptPath, "file", "f", "", "Script file to execute")
	return cmd
}

func (a *app) completeCmd() *cobra.Command {
	var (
		cursor int
		apply  bool
	)

	cmd := &cobra.Command{
		Use:   "complete <input>",
		Short: "Print the suggestions for an input line",
		Long: `Print the suggestions for the token under the cursor, one per line.
The cursor defaults to the end of the input. With --apply the input is printed
rewritten with the first suggestion instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if cursor < 0 || cursor > len(input) {
				cursor = len(input)
			}

			// Suggestions are written directly; console messages are not part of the output.
			c, err := a.newConsole(output.NewPrinter(output.Silent()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if apply {
				completion, ok := c.Complete(input, cursor)
				if !ok {
					return fmt.Errorf("no completion for %q", input)
				}
				_, err := fmt.Fprintln(out, completion.Line)
				return err
			}
			for _, s := range c.Suggest(input, cursor) {
				if _, err := fmt.Fprintln(out, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cursor, "cursor", -1, "Cursor offset in bytes (default end of input)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Print the input completed with the first suggestion")
	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text := version.GetFormattedVersion()
			if detailed {
				text = version.GetDetailedVersion()
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Include build metadata")
	return cmd
}
