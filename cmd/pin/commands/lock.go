package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Resolve every pin against the package index and write a lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			parallel, _ := cmd.Flags().GetInt("parallel")
			return c.app.Lock(cmd.Context(), pinFilePath(cmd), output, parallel)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Lockfile path (defaults to the pin file plus .lock)")
	cmd.Flags().IntP("parallel", "p", 0, "Concurrent resolutions (0 means one per CPU)")
	return cmd
}
