package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sigil/pkg/core/patp"
	"github.com/matzehuels/sigil/pkg/core/seal"
)

// colorwaysCommand creates the colorways command for browsing the palette.
func (c *CLI) colorwaysCommand() *cobra.Command {
	var (
		forID string
		pick  bool
	)

	cmd := &cobra.Command{
		Use:   "colorways",
		Short: "List the canonical colorways",
		Long: `List the canonical colorways with their index.

With --for, the colorway an identifier selects is highlighted. With --pick,
an interactive list lets you choose one and prints the pour command that
uses it.`,
		Example: `  sigil colorways
  sigil colorways --for ~ridlur-figbud
  sigil colorways --pick --for ~zod`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := -1
			var id patp.Identifier
			if forID != "" {
				var err error
				if id, err = patp.Parse(forID); err != nil {
					return err
				}
				selected = seal.ColorwayIndex(id)
			}
			if pick {
				return c.runColorwayPicker(id, selected)
			}
			printColorways(seal.Colorways(), selected)
			if id != nil {
				printNewline()
				printKeyValue("Identifier", id.String())
				printKeyValue("Colorway", fmt.Sprintf("%d", selected))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&forID, "for", "", "highlight the colorway selected by an identifier")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose a colorway interactively")

	return cmd
}

// printColorways prints one line per colorway, marking selected.
func printColorways(colorways []seal.Colorway, selected int) {
	for i, cw := range colorways {
		marker := "  "
		index := StyleDim.Render(fmt.Sprintf("%2d", i))
		if i == selected {
			marker = StyleHighlight.Render(iconArrow + " ")
			index = StyleNumber.Render(fmt.Sprintf("%2d", i))
		}
		fmt.Fprintln(stdout, marker+index+" "+formatColorway(cw))
	}
}

// runColorwayPicker runs the interactive picker and prints the choice.
func (c *CLI) runColorwayPicker(id patp.Identifier, selected int) error {
	m := NewColorwayListModel(seal.Colorways(), max(selected, 0))
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return fmt.Errorf("colorway picker: %w", err)
	}
	result, ok := final.(ColorwayListModel)
	if !ok || result.Selected < 0 {
		printInfo("No colorway selected")
		return nil
	}

	cw := result.Colorways[result.Selected]
	printSuccess("Colorway %d", result.Selected)
	printDetail("%s", strings.Join(cw, ", "))
	printNewline()
	target := "<identifier>"
	if id != nil {
		target = id.String()
	}
	printNextStep("Pour", fmt.Sprintf("sigil pour %s --colorway %d", target, result.Selected))
	return nil
}
