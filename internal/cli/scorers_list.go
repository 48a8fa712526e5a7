package cli

import (
	"fmt"
	"io"

	"repovitals/internal/scoring"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var scorersListQuiet bool
var scorersCmd = &cobra.Command{
	Use:   "scorers",
	Short: "Manage and list scorers",
	Long: `Manage RepoVitals scorers.

This command group helps you discover which scorers exist and what each one
measures. Scorers run during assessments (see "repovitals assess --help").

Examples:
  # List all available scorers
  repovitals scorers list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var scorersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scorers",
	Long: `List all scorers currently registered in this build.

Scorers are sorted by scorer ID.

Examples:
  repovitals scorers list

Output:
  A vertical list of scorers:
    ----------------------------------------
    SCORER: {ID}
    ----------------------------------------
    {TITLE}
    {DESCRIPTION}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range scoring.List() {
			if scorersListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), s.ID())
			} else {
				printScorer(cmd.OutOrStdout(), s)
			}
		}
		return nil
	},
}

var scorersShowCmd = &cobra.Command{
	Use:   "show [scorer-id]",
	Short: "Show details of a specific scorer",
	Long: `Show details of a specific scorer by its ID.

Examples:
  repovitals scorers show infrastructure
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sList, err := scoring.Resolve(args[0])
		if err != nil {
			return err
		}
		if len(sList) == 0 {
			return fmt.Errorf("scorer not found: %s", args[0])
		}
		printScorer(cmd.OutOrStdout(), sList[0])
		return nil
	},
}

func printScorer(w io.Writer, s scoring.Scorer) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "SCORER: %s\n", s.ID())
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, s.Title())
	fmt.Fprintln(w, s.Description())
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(scorersCmd)
	scorersCmd.AddCommand(scorersListCmd)
	scorersListCmd.Flags().BoolVarP(&scorersListQuiet, "quiet", "q", false, "Only print scorer IDs")
	scorersCmd.AddCommand(scorersShowCmd)
}
