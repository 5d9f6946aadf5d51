package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/uartship"
	"github.com/bft-labs/uartship/internal/adapters/progress"
	"github.com/bft-labs/uartship/internal/cliconfig"
	"github.com/bft-labs/uartship/internal/ports"
	logAdapter "github.com/bft-labs/uartship/pkg/log"
)

const helpDescription = `
Move a text file across a UART link and capture whatever comes back.

  send     write the file to the port in fixed-size chunks, then check for an echo
  receive  append everything arriving on the port to the output file until Ctrl-C
  run      send, pause, then receive on the same port
  ports    list serial devices

Configure via $HOME/.uartship/config.toml, UARTSHIP_* environment variables,
or flags (flags win).
`

var exampleUsage = strings.TrimSpace(`
  uartship send --port /dev/ttyUSB0 --file send.txt --baud 2400
  uartship receive --port COM4 --output received.txt
  uartship run --config $HOME/.uartship/config.toml
  uartship send --watch --progress-bar
`)

// reportedError marks an error the reporter has already shown.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger(cfg.LogLevel)

	// loadConfig layers file, env and flags into cfg.
	loadConfig := func(cmd *cobra.Command) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}

		// Environment variables override file config but are overridden by flags.
		if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
			return err
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		log = cliconfig.Logger(cfg.LogLevel)
		log.Debug().Interface("config", cfg).Msg("configuration")
		return nil
	}

	newUartship := func() (*uartship.Uartship, error) {
		logger := logAdapter.NewZerologAdapterWithLogger(log)
		var reporter ports.Reporter = progress.NewLogReporter(logger)
		if cfg.ProgressBar {
			reporter = progress.NewBarReporter(reporter)
		}
		return uartship.New(cfg,
			uartship.WithLogger(logger),
			uartship.WithReporter(reporter),
		)
	}

	root := &cobra.Command{
		Use:           "uartship",
		Short:         "Send and receive text files over a serial link",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "ports" {
				return nil
			}
			return loadConfig(cmd)
		},
	}

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Send the source file over the port",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := newUartship()
			if err != nil {
				return err
			}
			if cfg.Watch {
				return u.Watch(cmd.Context())
			}
			if _, err := u.Send(cmd.Context()); err != nil {
				return reportedError{err}
			}
			return nil
		},
	}

	receiveCmd := &cobra.Command{
		Use:   "receive",
		Short: "Append everything received on the port to the output file",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := newUartship()
			if err != nil {
				return err
			}
			if _, err := u.Receive(cmd.Context()); err != nil {
				return reportedError{err}
			}
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Send the source file, pause, then receive",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := newUartship()
			if err != nil {
				return err
			}
			if err := u.Run(cmd.Context()); err != nil {
				return reportedError{err}
			}
			return nil
		},
	}

	portsCmd := &cobra.Command{
		Use:   "ports",
		Short: "List serial devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := uartship.ListPorts()
			if err != nil {
				return fmt.Errorf("list ports: %w", err)
			}
			if len(names) == 0 {
				log.Info().Msg("no serial ports found")
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	// Flags
	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.uartship/config.toml)")
	pf.StringVar(&cfg.Port, "port", cfg.Port, "serial port name")
	pf.IntVar(&cfg.BaudRate, "baud", cfg.BaudRate, "baud rate")
	pf.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "read timeout")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	for _, c := range []*cobra.Command{sendCmd, runCmd} {
		c.Flags().StringVarP(&cfg.SourcePath, "file", "f", cfg.SourcePath, "file to send")
		c.Flags().IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "bytes per write")
		c.Flags().BoolVar(&cfg.ProgressBar, "progress-bar", cfg.ProgressBar, "show a progress bar while sending")
	}
	for _, c := range []*cobra.Command{receiveCmd, runCmd} {
		c.Flags().StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "file to append received data to")
	}
	sendCmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "send again whenever the file changes")
	runCmd.Flags().DurationVar(&cfg.Pause, "pause", cfg.Pause, "pause between sending and receiving")

	root.AddCommand(sendCmd, receiveCmd, runCmd, portsCmd)

	// Setup signal handling; cancelling stops the receiver and the watcher.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			log.Error().Err(err).Msg("uartship")
		}
		stop()
		os.Exit(1)
	}
}
