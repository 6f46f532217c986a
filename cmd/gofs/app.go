package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/desertwitch/gofs"
	"github.com/desertwitch/gofs/internal/configuration"
	"github.com/spf13/cobra"
)

// app holds the state shared by all commands of a single invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader

	configPath string
	logLevel   string
	cpuprofile string
	memprofile string

	config *configuration.AppConfiguration
	fsys   *gofs.Filesystem

	cpuProfiler   *cpuProfiler
	allocProfiler *allocProfiler
}

func newApp(stdout io.Writer, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		stdin:  os.Stdin,
	}
}

// setup loads the configuration, configures logging and the profilers and
// constructs the [gofs.Filesystem] used by the commands.
func (a *app) setup(cmd *cobra.Command) error {
	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	config, err := configHandler.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if a.logLevel != "" {
		if err := config.LogLevel.UnmarshalText([]byte(a.logLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", a.logLevel, err)
		}
	}
	a.config = config

	if f, ok := a.stderr.(*os.File); ok {
		setupLogging(f, config.LogLevel)
	}

	a.cpuProfiler = newCPUProfiler(cmd.Context(), a.cpuprofile)
	a.allocProfiler = newAllocProfiler(cmd.Context(), a.memprofile)

	fsys, err := gofs.New(
		gofs.WithFileMode(config.FileMode),
		gofs.WithDirMode(config.DirMode),
		gofs.WithMacro("lines", lineCountMacro),
		gofs.WithMacro("duplicates", duplicatesMacro),
		gofs.WithMacro("empty", emptyMacro),
	)
	if err != nil {
		return fmt.Errorf("failed to establish filesystem: %w", err)
	}
	a.fsys = fsys

	slog.Debug("Configuration loaded",
		"fileMode", fmt.Sprintf("%#o", config.FileMode),
		"dirMode", fmt.Sprintf("%#o", config.DirMode),
		"nameMatch", config.NameMatch,
		"followLinks", config.FollowLinks,
	)

	return nil
}

// close stops the profilers, writing out their profiles.
func (a *app) close() {
	if a.cpuProfiler != nil {
		a.cpuProfiler.Stop()
	}

	if a.allocProfiler != nil {
		a.allocProfiler.Stop()
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gofs",
		Short:         "Filesystem convenience operations and recursive search",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (default "+configuration.DefaultConfigFile+" if present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.cpuprofile, "cpuprofile", "", "write cpu profile to file")
	flags.StringVar(&a.memprofile, "memprofile", "", "write memory profile to file")

	root.AddCommand(
		a.findCmd(),
		a.statCmd(),
		a.hashCmd(),
		a.sizeCmd(),
		a.putCmd(),
		a.getCmd(),
		a.rmCmd(),
		a.cpCmd(),
		a.mvCmd(),
		a.chmodCmd(),
		a.mkdirCmd(),
		a.cleanCmd(),
		a.touchCmd(),
		a.macroCmd(),
		a.macrosCmd(),
	)

	return root
}
