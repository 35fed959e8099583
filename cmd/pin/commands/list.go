package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the pins in file order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pins, err := c.app.List(pinFilePath(cmd))
			if err != nil {
				return err
			}

			wide, _ := cmd.Flags().GetBool("wide")
			if !wide {
				for _, pin := range pins {
					cmd.Println(pin.String())
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, pin := range pins {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", pin.Line, pin.Name, pin.Comparator, pin.Version)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolP("wide", "w", false, "Include line numbers and comparators")
	return cmd
}
