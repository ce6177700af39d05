package visit

import (
	"fmt"

	"github.com/go-leo/gox/slicex"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/go-leo/behavior/cmd/behavior/internal/cli"
	"github.com/go-leo/behavior/metrics"
	"github.com/go-leo/behavior/visitor"
	"github.com/go-leo/behavior/visitor/modem"
)

var (
	operation string
	async     bool
)

func init() {
	Cmd.Flags().StringVar(&operation, "operation", modem.OperationDos,
		fmt.Sprintf("Configurator applied to every modem, one of %v", operationNames()))
	Cmd.Flags().BoolVar(&async, "async", false, "Dispatch the modems concurrently. Output keeps argument order.")
}

// Cmd is the Cobra object representing the behavior visit command.
var Cmd = &cobra.Command{
	Use:   "visit [modems...]",
	Short: "Configures modems with a configurator operation",
	Long: `Dispatches every named modem to the chosen configurator. Without arguments every
modem type is configured once.
`,
	Example: `  behavior visit
  behavior visit --operation unix hayes zoom`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ops, err := modem.Operations()
		if err != nil {
			return err
		}
		op, ok := ops[operation]
		if !ok {
			return errors.Errorf("unknown operation %q, want one of %v", operation, operationNames())
		}

		elements := modem.All()
		if len(args) > 0 {
			elements, err = parse(args)
			if err != nil {
				return err
			}
		}

		m, registry, err := cli.Metrics()
		if err != nil {
			return err
		}
		dispatcher := modem.NewDispatcher(visitor.Logger(cli.Logger(cmd.ErrOrStderr())))
		if cli.ShowMetrics {
			dispatcher = dispatcher.Use(metrics.Handler[string](m))
		}
		if err := dispatcher.Validate(op); err != nil {
			return err
		}
		dispatchAll := dispatcher.DispatchAll
		if async {
			dispatchAll = dispatcher.AsyncDispatchAll
		}
		results, err := dispatchAll(cmd.Context(), elements, op)
		if err != nil {
			return err
		}
		for _, result := range results {
			fmt.Fprintln(cmd.OutOrStdout(), result)
		}
		if cli.ShowMetrics {
			return cli.WriteMetrics(cmd.ErrOrStderr(), registry)
		}
		return nil
	},
}

func parse(names []string) ([]visitor.Element, error) {
	var err error
	elements := slicex.Map[[]string, []visitor.Element](names, func(_ int, name string) visitor.Element {
		if err != nil {
			return nil
		}
		var e visitor.Element
		e, err = modem.Parse(name)
		return e
	})
	if err != nil {
		return nil, err
	}
	return elements, nil
}

func operationNames() []string {
	ops, err := modem.Operations()
	if err != nil {
		return nil
	}
	names := maps.Keys(ops)
	slices.Sort(names)
	return names
}
