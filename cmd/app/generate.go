package main

import (
	"fmt"

	"storyteller/internal/config"
	"storyteller/internal/story"

	"github.com/spf13/cobra"
)

func newGenerateCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	var customInput, storyType, readerAge, writingStyle string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one story and print the raw model reply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a := newApp(cfg, cmd.ErrOrStderr())

			flags := cmd.Flags()
			req := story.Request{}
			if flags.Changed("custom-input") {
				req.CustomInput = story.String(customInput)
			}
			if flags.Changed("story-type") {
				req.StoryType = story.String(storyType)
			}
			if flags.Changed("reader-age") {
				req.ReaderAge = story.String(readerAge)
			}
			if flags.Changed("writing-style") {
				req.WritingStyle = story.String(writingStyle)
			}

			result, err := a.service.Generate(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("generate story: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Story)
			return nil
		},
	}

	cmd.Flags().StringVar(&customInput, "custom-input", "", "story idea")
	cmd.Flags().StringVar(&storyType, "story-type", "", "story type, e.g. fantasy")
	cmd.Flags().StringVar(&readerAge, "reader-age", "", "target reader age")
	cmd.Flags().StringVar(&writingStyle, "writing-style", "", "writing style")
	return cmd
}
