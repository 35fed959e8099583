package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pin/internal/core/domain"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Lint the pin file and report structural problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := pinFilePath(cmd)
			findings, err := c.app.Check(path)
			if err != nil {
				return err
			}

			for _, finding := range findings {
				cmd.Println(path + ":" + finding.String())
			}
			if domain.HasErrors(findings) {
				return domain.WithMeta(domain.ErrCheckFailed, "path", path)
			}
			return nil
		},
	}
}
