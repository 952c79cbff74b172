package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leofalp/aiwire/providers/ai"
)

var systemPrompt string

var thinkStyle = lipgloss.NewStyle().Faint(true).Italic(true)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Stream a completion, rendering reasoning spans dimmed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := buildClient()
		if err != nil {
			return err
		}
		if systemPrompt != "" {
			c.AddSystemPrompt(systemPrompt)
		}

		renderer := &thinkRenderer{}
		_, err = c.Generate(cmd.Context(), args[0], func(fragment, _ string) {
			fmt.Print(renderer.render(fragment))
		})
		fmt.Println()
		return err
	},
}

func init() {
	generateCmd.Flags().StringVarP(&systemPrompt, "system", "s", "", "system prompt")
	rootCmd.AddCommand(generateCmd)
}

// thinkRenderer styles the reasoning spans of a merged output stream.
// Fragments arrive with inline <think> markers; the renderer tracks span
// state across fragments so a span opened in one fragment and closed in a
// later one still renders consistently.
type thinkRenderer struct {
	inThink bool
}

func (r *thinkRenderer) render(fragment string) string {
	var out strings.Builder
	for fragment != "" {
		if r.inThink {
			end := strings.Index(fragment, ai.ThinkClose)
			if end < 0 {
				out.WriteString(thinkStyle.Render(fragment))
				return out.String()
			}
			out.WriteString(thinkStyle.Render(fragment[:end]))
			fragment = fragment[end+len(ai.ThinkClose):]
			r.inThink = false
			continue
		}

		open := strings.Index(fragment, ai.ThinkOpen)
		if open < 0 {
			out.WriteString(fragment)
			return out.String()
		}
		out.WriteString(fragment[:open])
		fragment = fragment[open+len(ai.ThinkOpen):]
		r.inThink = true
	}
	return out.String()
}
