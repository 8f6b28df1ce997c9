package main

import (
	"dungeon-master/internal/models"

	"github.com/spf13/cobra"
)

type options struct {
	saveDir       string
	model         string
	questionLimit int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "dungeon-master",
		Short: "Play a D&D adventure or Twenty Questions with an AI host",
		Long: "dungeon-master runs a persisted, turn-based game in the terminal.\n" +
			"Configuration is read from the environment (and an optional .env file).",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.saveDir, "save-dir", "", "directory for save files (overrides SAVE_DIR)")
	root.PersistentFlags().StringVar(&opts.model, "model", "", "chat model (overrides AI_MODEL)")

	root.AddCommand(
		&cobra.Command{
			Use:     "adventure",
			Aliases: []string{"dnd"},
			Short:   "Create a character and play a D&D 5e adventure",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), models.VariantAdventure, opts)
			},
		},
		newQuestionsCmd(opts),
	)
	return root
}

func newQuestionsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "questions",
		Aliases: []string{"20q"},
		Short:   "Guess the host's secret subject with yes/no questions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), models.VariantQuestions, opts)
		},
	}
	cmd.Flags().IntVar(&opts.questionLimit, "limit", 0, "number of questions (overrides QUESTION_LIMIT)")
	return cmd
}
