package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/favbox/opchain/compose"
	"github.com/favbox/opchain/flow/definition"
)

var CheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check a process definition",
	Long:  `Build the process described in the file and check every operator's input and output types.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}

		logger := newLogger()
		defer func() { _ = logger.Sync() }()

		def, err := definition.LoadFile(args[0])
		if err != nil {
			return err
		}
		if disabled := disabledOperators(cmd); len(disabled) > 0 {
			if err = def.Disable(disabled...); err != nil {
				return err
			}
		}
		input, err := def.InputList()
		if err != nil {
			return err
		}
		p, err := def.Build(definition.WithProcessOptions(compose.WithLogger(logger)))
		if err != nil {
			return err
		}

		report, checkErr := p.Check(cmd.Context(), input)
		if report == nil {
			return checkErr
		}

		out := cmd.OutOrStdout()
		if format == formatJSON {
			if err = writeJSON(out, report); err != nil {
				return err
			}
		} else {
			fmt.Fprint(out, report.Text())
		}

		if checkErr != nil {
			return ErrCheckFailed
		}
		return nil
	},
}

// disabledOperators 解析 --disable，逗号分隔。
func disabledOperators(cmd *cobra.Command) []string {
	raw, _ := cmd.Flags().GetString("disable")
	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func init() {
	CheckCmd.Flags().String("disable", "", "comma-separated operator names to disable before checking")
}
