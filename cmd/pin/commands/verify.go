package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pin/internal/core/domain"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the lockfile against the current pin file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := pinFilePath(cmd)
			findings, err := c.app.Verify(path)
			if err != nil {
				return err
			}

			for _, finding := range findings {
				cmd.Println(path + ":" + finding.String())
			}
			if domain.HasErrors(findings) {
				return domain.WithMeta(domain.ErrVerifyFailed, "path", path)
			}
			return nil
		},
	}
}
