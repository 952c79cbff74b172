package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed [text]...",
	Short: "Generate embeddings for one or more inputs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := buildClient()
		if err != nil {
			return err
		}

		vectors, err := c.Embed(cmd.Context(), args)
		if err != nil {
			return err
		}

		for i, vector := range vectors {
			preview := vector
			if len(preview) > 4 {
				preview = preview[:4]
			}
			fmt.Printf("%d: dim=%d %v...\n", i, len(vector), preview)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)
}
