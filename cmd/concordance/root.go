package main

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hyperbolic-timechamber/concordance-go/src/concordance"
	"github.com/hyperbolic-timechamber/concordance-go/src/config"
	"github.com/hyperbolic-timechamber/concordance-go/src/hashtable"
	"github.com/hyperbolic-timechamber/concordance-go/src/report"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		watch      bool
	)
	flagCfg := config.Default()

	cmd := &cobra.Command{
		Use:          "concordance [flags] FILE...",
		Short:        "Count word occurrences using a chained hash table",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveConfig(cmd.Flags(), configPath, flagCfg)
			if err != nil {
				return err
			}
			level, _ := log.ParseLevel(c.LogLevel)
			log.SetLevel(level)
			if watch {
				return watchFiles(cmd.Context(), cmd.OutOrStdout(), c, args)
			}
			return run(cmd.Context(), cmd.OutOrStdout(), c, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML file with default settings")
	flags.BoolVarP(&watch, "watch", "w", false, "recount whenever an input file changes")
	flags.IntVarP(&flagCfg.Slots, "slots", "s", flagCfg.Slots, "initial number of hash table slots")
	flags.StringVar(&flagCfg.Hash, "hash", flagCfg.Hash, "hash function: additive or weighted")
	flags.Float64Var(&flagCfg.LoadFactor, "load-factor", flagCfg.LoadFactor, "grow the table when entries/slots would exceed this")
	flags.IntVar(&flagCfg.MaxSlots, "max-slots", flagCfg.MaxSlots, "upper bound on the number of slots")
	flags.IntVarP(&flagCfg.Workers, "workers", "j", flagCfg.Workers, "files tokenized in parallel")
	flags.BoolVarP(&flagCfg.Lowercase, "lowercase", "i", flagCfg.Lowercase, "fold words to lower case")
	flags.StringVarP(&flagCfg.Format, "format", "f", flagCfg.Format, "output format: text, json or yaml")
	flags.StringVar(&flagCfg.Sort, "sort", flagCfg.Sort, "listing order: table, alpha or count")
	flags.IntVarP(&flagCfg.Top, "top", "n", flagCfg.Top, "also list the N most frequent words")
	flags.BoolVarP(&flagCfg.Buckets, "buckets", "b", flagCfg.Buckets, "dump every non-empty bucket")
	flags.StringSliceVarP(&flagCfg.Remove, "remove", "r", flagCfg.Remove, "words to delete before reporting")
	flags.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "logrus level: debug, info, warn, error")
	return cmd
}

// resolveConfig starts from the config file, if any, and lets every flag
// given on the command line override it.
func resolveConfig(flags *pflag.FlagSet, path string, flagCfg *config.Config) (*config.Config, error) {
	if path == "" {
		if err := flagCfg.Validate(); err != nil {
			return nil, err
		}
		return flagCfg, nil
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "slots":
			c.Slots = flagCfg.Slots
		case "hash":
			c.Hash = flagCfg.Hash
		case "load-factor":
			c.LoadFactor = flagCfg.LoadFactor
		case "max-slots":
			c.MaxSlots = flagCfg.MaxSlots
		case "workers":
			c.Workers = flagCfg.Workers
		case "lowercase":
			c.Lowercase = flagCfg.Lowercase
		case "format":
			c.Format = flagCfg.Format
		case "sort":
			c.Sort = flagCfg.Sort
		case "top":
			c.Top = flagCfg.Top
		case "buckets":
			c.Buckets = flagCfg.Buckets
		case "remove":
			c.Remove = flagCfg.Remove
		case "log-level":
			c.LogLevel = flagCfg.LogLevel
		}
	})
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func run(ctx context.Context, w io.Writer, c *config.Config, paths []string) error {
	table, err := hashtable.New(c.Slots, c.TableOptions(log.StandardLogger())...)
	if err != nil {
		return errors.Wrap(err, "creating table")
	}
	defer table.Destroy()

	log.Infof("opening files: %s", strings.Join(paths, ", "))
	b := concordance.New(table)
	b.Workers = c.Workers
	b.Lowercase = c.Lowercase
	if err := b.AddFiles(ctx, paths...); err != nil {
		return err
	}
	if len(c.Remove) > 0 {
		n := b.Remove(c.Remove...)
		log.WithField("removed", n).Info("deleted keys")
	}
	return report.Write(w, table, b.Result(), c.ReportOptions())
}
