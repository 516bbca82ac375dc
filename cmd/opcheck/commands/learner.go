package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/favbox/opchain/components/learner"
	"github.com/favbox/opchain/flow/definition"
	"github.com/favbox/opchain/internal/gslice"
)

var LearnerCmd = &cobra.Command{
	Use:   "learner [file]",
	Short: "Check learner capabilities against a dataset",
	Long: `Check every learner of a process definition against the attribute and label
types of a dataset description. With --only-warn, missing capabilities are logged
and the command succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		datasetPath, _ := cmd.Flags().GetString("dataset")
		if datasetPath == "" {
			return fmt.Errorf("--dataset is required")
		}

		logger := newLogger()
		defer func() { _ = logger.Sync() }()

		def, err := definition.LoadFile(args[0])
		if err != nil {
			return err
		}
		meta, err := loadDataset(datasetPath)
		if err != nil {
			return err
		}

		check := learner.NewCapabilityCheck(
			learner.WithOnlyWarn(viper.GetBool("only-warn")),
			learner.WithWeightCheck(true),
			learner.WithLogger(logger))

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "Learner\tRequired\tMissing")

		var firstErr error
		for _, op := range def.Learners() {
			caps, err := op.CapabilitySet()
			if err != nil {
				return fmt.Errorf("learner '%s': %w", op.Name, err)
			}

			r := check.Evaluate(caps, meta)
			missing := gslice.Map(r.Missing(), func(e *learner.CapabilityError) string {
				return e.Capability.String()
			})
			fmt.Fprintf(w, "%s\t%s\t%s\n", op.Name, joinCapabilities(r.Required), strings.Join(missing, ", "))

			if err = check.Check(op.Name, caps, meta); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if err = w.Flush(); err != nil {
			return err
		}
		return firstErr
	},
}

func init() {
	LearnerCmd.Flags().String("dataset", "", "dataset description (YAML)")
}

func joinCapabilities(caps []learner.Capability) string {
	return strings.Join(gslice.Map(caps, learner.Capability.String), ", ")
}
