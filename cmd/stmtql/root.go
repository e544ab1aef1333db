package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/stmtql"
	"github.com/zoobzio/stmtql/config"
	"github.com/zoobzio/stmtql/dialects"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCmd creates the root command with its subcommands.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "stmtql",
		Short: "Render declarative SELECT statements as dialect SQL",
		Long: `stmtql validates SELECT statements described in YAML against a table
schema and renders them as SQL with ordered bind parameters.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./stmtql.yaml)")
	root.PersistentFlags().String("dialect", "", "target dialect")
	root.PersistentFlags().Bool("always-quote", false, "quote every identifier")
	root.PersistentFlags().Int("max-subquery-depth", 0, "maximum sub-query nesting")
	root.PersistentFlags().BoolP("verbose", "v", false, "debug logging to stderr")

	root.AddCommand(newRenderCmd(&cfgFile), newDialectsCmd())
	return root
}

func newRenderCmd(cfgFile *string) *cobra.Command {
	var tablesFile string

	cmd := &cobra.Command{
		Use:   "render <query.yaml>",
		Short: "Render a query schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if cfg.Verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}

			renderer, err := cfg.Renderer()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(tablesFile)
			if err != nil {
				return fmt.Errorf("failed to read tables: %w", err)
			}
			inst, err := stmtql.NewFromYAML(data)
			if err != nil {
				return err
			}

			data, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read query: %w", err)
			}
			schema, err := stmtql.ParseSchema(data)
			if err != nil {
				return err
			}
			st, err := inst.BuildFromSchema(schema)
			if err != nil {
				return err
			}

			result, err := st.Render(renderer)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, result.SQL)
			for i, p := range result.Params {
				_, _ = fmt.Fprintf(out, "-- %s = %v\n", renderer.Placeholder(i+1), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&tablesFile, "tables", "t", "tables.yaml", "table schema YAML")
	return cmd
}

func newDialectsCmd() *cobra.Command {
	var features bool

	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "List supported dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range dialects.Names() {
				if !features {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
					continue
				}
				r, err := dialects.Lookup(name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, describeCapabilities(r.Capabilities()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&features, "features", "f", false, "show optional SQL support per dialect")
	return cmd
}

func describeCapabilities(caps stmtql.Capabilities) string {
	yes := func(ok bool) string {
		if ok {
			return "yes"
		}
		return "no"
	}
	pagination := "limit-offset"
	if caps.Pagination == stmtql.PaginationOffsetFetch {
		pagination = "offset-fetch"
	}
	if caps.PaginationNeedsOrder {
		pagination += " (needs order by)"
	}
	return fmt.Sprintf("ilike=%s regex=%s concat=%s offset-only=%s pagination=%s",
		yes(caps.CaseInsensitiveLike), yes(caps.RegexOperators), yes(caps.ConcatOperator),
		yes(caps.OffsetWithoutLimit || caps.NoLimit != ""), pagination)
}
