package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var flagPassword string

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Authenticate and store the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := flagPassword
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return err
			}
			password = strings.TrimSpace(line)
		}

		result, err := client.Auth.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}

		// The backend may answer with a token but no user profile.
		name := args[0]
		if result.User != nil {
			if result.User.FullName != "" {
				name = result.User.FullName
			} else if result.User.Username != "" {
				name = result.User.Username
			}
		}
		fmt.Printf("%s logged in as %s\n", color.GreenString("ok:"), name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session (no network call)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.Auth.Logout(); err != nil {
			return err
		}
		fmt.Printf("%s session cleared\n", color.GreenString("ok:"))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the locally cached user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user := client.Auth.CurrentUser()
		if user == nil {
			fmt.Println("not logged in")
			return nil
		}
		fmt.Printf("%s", user.Username)
		if user.FullName != "" {
			fmt.Printf(" (%s)", user.FullName)
		}
		if user.Role != "" {
			fmt.Printf(" [%s]", user.Role)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
