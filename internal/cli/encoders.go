package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chocolatl/cocos-texture-packer/pkg/encoder"
)

var encoderDescriptions = map[string]string{
	"none":       "textures only, no descriptor",
	"cocos":      "Cocos2d-x plist, one per sheet",
	"json":       "TexturePacker JSON (hash), one per sheet",
	"json-array": "TexturePacker multi-pack JSON, one for all sheets",
}

// encodersCommand creates the encoders command.
func (c *CLI) encodersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encoders",
		Short: "List the available descriptor formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := encoder.Names()
			rows := make([][]string, len(names))
			for i, name := range names {
				rows[i] = []string{name, encoderDescriptions[name]}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Encoder", "Output"}, rows))
			return nil
		},
	}
}
