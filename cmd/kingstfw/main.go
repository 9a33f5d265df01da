// Command kingstfw extracts Kingst logic analyzer firmware from the KingstVIS
// vendor software for use with sigrok.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/moffa90/go-kingstfw/extract"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	verbose bool
	output  string
	strict  bool
	size    int

	log *zap.Logger
}

func (o *rootOptions) extractor(extra ...extract.Option) *extract.Extractor {
	opts := []extract.Option{
		extract.WithLogger(zapLogger{o.log.Sugar()}),
		extract.WithOutputDir(o.output),
		extract.WithStrict(o.strict),
		extract.WithImageSize(o.size),
		extract.WithProgressCallback(func(p extract.Progress) {
			o.log.Debug("progress",
				zap.String("phase", p.Phase),
				zap.Int("current", p.Current),
				zap.Int("total", p.Total),
				zap.Float64("percent", p.Percentage))
		}),
	}
	return extract.New(append(opts, extra...)...)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "kingstfw",
		Short:         "Extract Kingst LA firmware from KingstVIS for sigrok",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&opts.output, "output", "o", "", "output directory (default: current directory, or the library's directory)")
	flags.BoolVar(&opts.strict, "strict", false, "fail on malformed resource nodes instead of skipping them")
	flags.IntVar(&opts.size, "size", 0x4000, "size of generated .fw images")

	cmd.AddCommand(
		newResourcesCmd(opts),
		newLibraryCmd(opts),
		newHex2FwCmd(opts),
		newEncodeCmd(opts),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
