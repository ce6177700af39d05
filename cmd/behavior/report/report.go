package report

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-leo/behavior/cmd/behavior/internal/cli"
	"github.com/go-leo/behavior/metrics"
	"github.com/go-leo/behavior/templatemethod"
	tmreport "github.com/go-leo/behavior/templatemethod/report"
)

var (
	format string
	file   string
	title  string
)

func init() {
	Cmd.Flags().StringVar(&format, "format", tmreport.FormatText,
		fmt.Sprintf("Output format, one of %v", tmreport.FormatNames()))
	Cmd.Flags().StringVar(&file, "file", "",
		"YAML file with a title and lines. Arguments are appended to its lines.")
	Cmd.Flags().StringVar(&title, "title", "", "Report title. Overrides the title of --file.")
}

// Cmd is the Cobra object representing the behavior report command.
var Cmd = &cobra.Command{
	Use:   "report [lines...]",
	Short: "Renders a report in one of the built-in formats",
	Long: `Renders a titled list of lines. Every format shares the same skeleton and only
supplies the start, head, body delimiters, line and end steps.
`,
	Example: `  behavior report --title Weekly a b
  behavior report --format html --file weekly.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := load(cmd, args)
		if err != nil {
			return err
		}
		logger := cli.Logger(cmd.ErrOrStderr())
		skeleton, err := tmreport.NewSkeleton(templatemethod.Logger(logger))
		if err != nil {
			return err
		}
		bindings, err := tmreport.Bindings(format)
		if err != nil {
			return err
		}

		var middlewares []templatemethod.BindingMiddleware[tmreport.Report]
		m, registry, err := cli.Metrics()
		if err != nil {
			return err
		}
		if cli.ShowMetrics {
			middlewares = append(middlewares, metrics.Binding[tmreport.Report](m, skeleton.Name(), format))
		}

		executor, err := skeleton.Bind(format, bindings.Decorate(middlewares...))
		if err != nil {
			return err
		}
		fragments, err := executor.Execute(cmd.Context(), rep)
		if err != nil {
			return err
		}
		for _, text := range templatemethod.Texts(fragments) {
			if text == "" {
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
		}
		if cli.ShowMetrics {
			return cli.WriteMetrics(cmd.ErrOrStderr(), registry)
		}
		return nil
	},
}

func load(cmd *cobra.Command, args []string) (tmreport.Report, error) {
	if file == "" {
		return tmreport.New(title, args...), nil
	}
	f, err := os.Open(file)
	if err != nil {
		return tmreport.Report{}, errors.Wrapf(err, "open %s", file)
	}
	defer f.Close()
	rep, err := tmreport.Load(f)
	if err != nil {
		return tmreport.Report{}, errors.Wrapf(err, "load %s", file)
	}
	if cmd.Flags().Changed("title") {
		rep.Title = title
	}
	rep.Lines = append(rep.Lines, args...)
	return rep, nil
}
