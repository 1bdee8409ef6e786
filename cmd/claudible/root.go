package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qwertykeith/claudible/internal/audio"
	"github.com/qwertykeith/claudible/internal/config"
)

const defaultCommand = "claude"

const (
	exitOK     = 0
	exitError  = 1
	exitDevice = 2
)

type options struct {
	pipe           bool
	listCharacters bool
	demo           bool
	configPath     string
}

// app carries the streams and viper instance for one invocation so tests can
// drive the command without touching the process's own stdio.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	viper  *viper.Viper
	opts   options

	// exit is the wrapped command's status, when there is one.
	exit int
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr, viper: viper.New()}
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claudible [command]",
		Short: "Ambient sound for terminal output",
		Long: `claudible runs a command on a pseudo-terminal (default: claude) and plays
short crystalline grains while it prints. A chime marks the end of a burst
and a gentle reminder sounds when output has been idle for a while.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args)
		},
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	f := cmd.Flags()
	// Everything after the command name belongs to the command.
	f.SetInterspersed(false)

	def := config.Defaults()
	f.BoolVar(&a.opts.pipe, "pipe", false, "Read from stdin instead of wrapping a command")
	f.StringP(config.KeySet, "s", def.Set, "Sound set")
	f.StringP(config.KeyCharacter, "c", def.Character, "Sound character (default: random from the set)")
	f.Float64P(config.KeyVolume, "v", def.Volume, "Volume 0..1")
	f.Float64P(config.KeyAttention, "a", def.Attention, "Seconds of silence before the attention reminder")
	f.BoolP(config.KeyReverse, "r", def.Reverse, "Ambient while idle, quiet while output flows")
	f.BoolVar(&a.opts.listCharacters, "list-characters", false, "List sound sets and characters")
	f.BoolVar(&a.opts.demo, "demo", false, "Play every character of the set")
	f.String(config.KeyBackend, def.Backend, fmt.Sprintf("Audio backend %v", audio.Kinds()))
	f.String(config.KeyMaterials, def.Materials, "YAML file with custom sound sets")
	f.StringVar(&a.opts.configPath, "config", "", "Config file (default "+config.Dir()+"/config.yaml)")
	f.String(config.KeyLogLevel, def.LogLevel, "Log level: debug, info, warn, error")
	f.Bool(config.KeyMasterBus, def.MasterBus, "Compress and soft-clip the mix")

	for _, key := range []string{
		config.KeySet, config.KeyCharacter, config.KeyVolume, config.KeyAttention,
		config.KeyReverse, config.KeyBackend, config.KeyMaterials, config.KeyLogLevel,
		config.KeyMasterBus,
	} {
		// Only fails for a nil flag.
		_ = a.viper.BindPFlag(key, f.Lookup(key))
	}
	return cmd
}

// Execute runs the root command and maps the outcome to a process status.
func Execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newApp(os.Stdin, os.Stdout, os.Stderr).execute(ctx, args)
}

func (a *app) execute(ctx context.Context, args []string) int {
	cmd := a.command()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return a.report(err)
	}
	return a.exit
}

func (a *app) report(err error) int {
	if errors.Is(err, audio.ErrDeviceUnavailable) {
		fmt.Fprintf(a.stderr, "[claudible] no audio device available: %v\n", err)
		fmt.Fprintln(a.stderr, "[claudible] try --backend null to run silently, or another backend")
		return exitDevice
	}
	fmt.Fprintf(a.stderr, "[claudible] %v\n", err)
	return exitError
}
