package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name><comparator><version>",
		Short: "Pin a package, e.g. pin add pytest==6.0.1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return c.app.Add(pinFilePath(cmd), args[0], force)
		},
	}
	cmd.Flags().Bool("force", false, "Replace an existing pin with a different constraint")
	return cmd
}
