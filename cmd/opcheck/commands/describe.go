package commands

import (
	"strings"

	"github.com/eino-contrib/jsonschema"
	"github.com/spf13/cobra"

	"github.com/favbox/opchain/compose"
	"github.com/favbox/opchain/flow/definition"
)

// operatorDescription describe 命令输出的一项。
type operatorDescription struct {
	Path      string             `json:"path"`
	Component string             `json:"component"`
	Enabled   bool               `json:"enabled"`
	Condition string             `json:"condition,omitempty"`
	Contract  *jsonschema.Schema `json:"contract"`
}

var DescribeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Describe the operators of a process definition",
	Long:  `Print every operator with its condition description and IO contract as JSON schema.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := definition.LoadFile(args[0])
		if err != nil {
			return err
		}
		p, err := def.Build()
		if err != nil {
			return err
		}

		return writeJSON(cmd.OutOrStdout(), describeOperators(compose.Describe(p.Root())))
	},
}

func describeOperators(root *compose.OperatorInfo) []*operatorDescription {
	var (
		descs []*operatorDescription
		path  []string
	)
	root.Walk(func(info *compose.OperatorInfo, depth int) {
		path = append(path[:depth], info.Name)
		descs = append(descs, &operatorDescription{
			Path:      strings.Join(path, "/"),
			Component: string(info.Component),
			Enabled:   info.Enabled,
			Condition: info.Condition,
			Contract:  info.ContractSchema(),
		})
	})
	return descs
}
