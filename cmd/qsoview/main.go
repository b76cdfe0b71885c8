package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/qsoview/internal/app"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "qsoview: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	rootCmd := &cobra.Command{
		Use:   "qsoview",
		Short: "Review your own FT8 exchanges from a WSJT-X ALL.TXT log",
		Long: `qsoview keeps the lines of a WSJT-X ALL.TXT log that mention your callsign,
collapses runs of your own CQ calls, writes the result to a file and opens a
terminal viewer that jumps between completed exchanges (RR73).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/qsoview/config.toml)")
	flags.StringVar(&opts.Callsign, "callsign", "", "own callsign (overrides config)")
	flags.StringVarP(&opts.InputPath, "input", "i", "", "WSJT-X ALL.TXT to read")
	flags.StringVarP(&opts.OutputPath, "output", "o", "", "file receiving the filtered lines")
	flags.StringVar(&opts.Encoding, "encoding", "", "input encoding label, e.g. windows-1252 (default utf-8)")
	flags.StringVar(&opts.DebugLog, "debug", "", "write a debug log to this file")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Filter the log and open the viewer (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	var (
		line  int
		quiet bool
	)
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter the log and write the output file without opening the viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Filter(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if line > 0 {
				text, ok := summary.Line(line)
				if !ok {
					return fmt.Errorf("line %d out of range (1-%d)", line, len(summary.Lines))
				}
				fmt.Fprintln(out, text)
				return nil
			}
			if !quiet {
				fmt.Fprintf(out, "%s: kept %d of %d lines (%d CQ collapsed) -> %s\n",
					summary.Callsign, len(summary.Lines), summary.Scanned, summary.Collapsed, summary.OutputPath)
			}
			return nil
		},
	}
	filterCmd.Flags().IntVar(&line, "line", 0, "print the N-th (1-based) filtered line instead of a summary")
	filterCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing on success")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of qsoview",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
