package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List your saved documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := client.NewSavedList()
		if err := list.Load(cmd.Context()); err != nil {
			return err
		}
		docs := list.Items()
		if len(docs) == 0 {
			fmt.Println("no saved documents")
			return nil
		}
		for _, doc := range docs {
			printDocument(doc)
		}
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <document-id>",
	Short: "Save a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.Favorites.Toggle(cmd.Context(), args[0], true); err != nil {
			return err
		}
		fmt.Printf("%s saved %s\n", color.GreenString("ok:"), args[0])
		return nil
	},
}

var unsaveCmd = &cobra.Command{
	Use:   "unsave <document-id>",
	Short: "Remove a document from your saved list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list := client.NewSavedList()
		if err := list.Load(cmd.Context()); err != nil {
			return err
		}
		if err := list.Unsave(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("%s unsaved %s (%d left)\n", color.GreenString("ok:"), args[0], list.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(savedCmd, saveCmd, unsaveCmd)
}
