package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pin/internal/core/domain"
)

func (c *CLI) newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite pin lines into canonical form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := pinFilePath(cmd)
			checkOnly, _ := cmd.Flags().GetBool("check")

			changed, err := c.app.Format(path, !checkOnly)
			if err != nil {
				return err
			}
			if changed == 0 {
				return nil
			}

			if checkOnly {
				cmd.Printf("%s: %d line(s) not in canonical form\n", path, changed)
				return domain.WithMeta(domain.ErrCheckFailed, "path", path)
			}
			cmd.Printf("%s: formatted %d line(s)\n", path, changed)
			return nil
		},
	}
	cmd.Flags().Bool("check", false, "Report non-canonical lines without rewriting the file")
	return cmd
}
