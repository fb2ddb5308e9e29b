package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	dreamsCmd := &cobra.Command{Use: "dreams", Short: "Dream operations"}

	// generate
	var description, style, mood string
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dream visualization (not persisted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"description": description,
				"style":       style,
				"mood":        mood,
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/dreams/generate", apiFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	generateCmd.Flags().StringVarP(&description, "description", "d", "", "Dream description (required)")
	generateCmd.Flags().StringVarP(&style, "style", "s", "artistic", "Art style")
	generateCmd.Flags().StringVarP(&mood, "mood", "m", "peaceful", "Mood")
	_ = generateCmd.MarkFlagRequired("description")
	dreamsCmd.AddCommand(generateCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your saved dreams",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/dreams", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	dreamsCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get DREAM_ID",
		Short: "Get a dream by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/dreams/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	dreamsCmd.AddCommand(getCmd)

	// favorite
	var unset bool
	favoriteCmd := &cobra.Command{
		Use:   "favorite DREAM_ID",
		Short: "Mark a dream as favorite (or unset with --unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"isFavorite": !unset}
			data, err := doPatchJSON(fmt.Sprintf("%s/api/dreams/%s/favorite", apiFlag, args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	favoriteCmd.Flags().BoolVar(&unset, "unset", false, "Remove the favorite flag instead of setting it")
	dreamsCmd.AddCommand(favoriteCmd)

	rootCmd.AddCommand(dreamsCmd)
}
