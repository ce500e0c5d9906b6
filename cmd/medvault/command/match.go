package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medvault-org/medvault/matching"
	"github.com/medvault-org/medvault/patients"
)

var matchUserId string

var matchCmd = &cobra.Command{
	Use:   "match [name]",
	Short: "Match a name against a user's patient roster",
	Long:  "The match command runs the fuzzy matcher against the stored roster and prints the ranked candidates with the resolution scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		return Run(func(service patients.Service, matcher *matching.Matcher, thresholds matching.Thresholds) error {
			return matchName(service, matcher, thresholds, matchUserId, name)
		})
	},
}

func matchName(service patients.Service, matcher *matching.Matcher, thresholds matching.Thresholds, userId string, name string) error {
	roster, err := service.Roster(context.TODO(), userId)
	if err != nil {
		return err
	}

	candidates, err := matcher.FindAllMatches(name, roster, thresholds.ReviewRequired)
	if err != nil {
		return err
	}

	for _, candidate := range candidates {
		fmt.Printf("%s %q (%s) %d%%\n", candidate.PatientId, candidate.MatchedName, candidate.MatchType, candidate.Confidence)
	}
	fmt.Printf("Scenario: %s\n", thresholds.Classify(candidates))

	return nil
}

func init() {
	matchCmd.Flags().StringVarP(&matchUserId, "user", "u", "", "User id owning the roster")
	_ = matchCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(matchCmd)
}
