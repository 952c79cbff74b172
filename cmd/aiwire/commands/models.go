package commands

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the endpoint advertises",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, endpoint, err := buildClient()
		if err != nil {
			return err
		}

		models, err := c.Models(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%d models @ %s", len(models), endpoint.BaseURL)))
		for _, model := range models {
			line := model.ID
			if model.OwnedBy != "" {
				line += "  " + mutedStyle.Render(model.OwnedBy)
			}
			if model.Created > 0 {
				line += "  " + mutedStyle.Render(time.Unix(model.Created, 0).Format("2006-01-02"))
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
