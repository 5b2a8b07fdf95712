package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aescanero/dago-spec/internal/catalog"
	"github.com/aescanero/dago-spec/internal/config"
	"github.com/aescanero/dago-spec/internal/filter"
	"github.com/aescanero/dago-spec/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	threshold int
	logLevel  string
}

func (o *options) newFilter(reportTemplate string) (*filter.Filter, *zap.Logger, error) {
	if o.threshold < 0 {
		return nil, nil, fmt.Errorf("threshold must be non-negative")
	}
	if !config.IsValidLogLevel(o.logLevel) {
		return nil, nil, fmt.Errorf("log level must be one of: debug, info, warn, error")
	}

	logger, err := logging.NewConsole(o.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return filter.New(catalog.Specs(o.threshold), reportTemplate, logger), logger, nil
}

func specsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "specs",
		Short: "List registered specifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, logger, err := opts.newFilter("")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return printSpecs(cmd.OutOrStdout(), f)
		},
	}
}

func printSpecs(out io.Writer, f *filter.Filter) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEXPRESSION")
	for _, name := range f.SpecNames() {
		s, err := f.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%v\n", name, s)
	}
	return tw.Flush()
}

func filterCmd(opts *options) *cobra.Command {
	var (
		catalogPath    string
		specName       string
		reportTemplate string
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the products satisfying a specification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, logger, err := opts.newFilter(reportTemplate)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			products := catalog.Sample()
			if catalogPath != "" {
				products, err = catalog.LoadFile(catalogPath)
				if err != nil {
					return err
				}
			}

			result, err := f.Apply(context.Background(), &filter.Request{
				Spec:     specName,
				Products: products,
			})
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), result, asJSON)
		},
	}

	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "YAML catalog file")
	cmd.Flags().StringVarP(&specName, "spec", "s", catalog.SpecOriginalAndHighPrice, "specification name")
	cmd.Flags().StringVar(&reportTemplate, "report", "", "Handlebars template for the summary line")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")

	return cmd
}

func printResult(out io.Writer, result *filter.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(out, result.Summary)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, p := range result.Matched {
		fmt.Fprintf(tw, "%s\t%t\t%d\t%s\n", p.Name, p.IsNew, p.Price, p.Color)
	}
	return tw.Flush()
}
