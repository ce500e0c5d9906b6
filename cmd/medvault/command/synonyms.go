package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medvault-org/medvault/synonyms"
)

var synonymsCmd = &cobra.Command{
	Use:   "synonyms",
	Short: "Inspect the tag synonym dictionary",
}

var synonymsExpandCmd = &cobra.Command{
	Use:   "expand [term]",
	Short: "Expand a search term to its synonym group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return expandTerm(args[0])
	},
}

func expandTerm(term string) error {
	expander, err := synonyms.NewDefaultExpander()
	if err != nil {
		return err
	}

	expanded := expander.Expand(term)
	fmt.Println(strings.Join(expanded, "\n"))
	return nil
}

func init() {
	synonymsCmd.AddCommand(synonymsExpandCmd)
	rootCmd.AddCommand(synonymsCmd)
}
