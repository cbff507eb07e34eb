package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile, uploads, and view history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := client.Profile.Me(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%s", me.Username)
		if me.FullName != "" {
			fmt.Printf(" (%s)", me.FullName)
		}
		fmt.Println()
		if me.Points > 0 {
			fmt.Printf("points: %s\n", humanize.Comma(int64(me.Points)))
		}

		docs, err := client.Profile.MyDocuments(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("\nuploads (%d):\n", len(docs))
		for _, doc := range docs {
			printDocument(doc)
		}

		history, err := client.Profile.ViewHistory(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("\nrecently viewed (%d):\n", len(history))
		for _, doc := range history {
			fmt.Printf("  %s  %s", doc.Key(), doc.Title)
			if t, parseErr := time.Parse(time.RFC3339, doc.CreatedAt); parseErr == nil {
				fmt.Printf("  (%s)", humanize.Time(t))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
