package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(serverFlag *string) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify the access password against the gateway and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			if *serverFlag != "" && *serverFlag != env.Session.Server {
				if err := env.Session.SetServer(*serverFlag); err != nil {
					return err
				}
			}

			if password == "" {
				fmt.Print("Password: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimSpace(line)
			}

			ok, err := env.Store.Login(cmd.Context(), password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if !ok {
				return fmt.Errorf("wrong password")
			}

			fmt.Println("Logged in. Local data synced to the cloud.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "access password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved password",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := LoadSession()
			if err != nil {
				return err
			}
			if err := session.ClearToken(); err != nil {
				return err
			}
			fmt.Println("Logged out. Cloud data is untouched.")
			return nil
		},
	}
}

func newStatusCmd(serverFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session, sync state and data counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			mode := "offline (local only)"
			if env.Store.Authenticated() {
				mode = "online (syncing)"
			}

			fmt.Printf("Server:     %s\n", env.Session.Server)
			fmt.Printf("Mode:       %s\n", mode)
			fmt.Printf("Sync:       %s\n", env.Store.Status())
			fmt.Printf("Links:      %d\n", len(env.Store.Links()))
			fmt.Printf("Categories: %d\n", len(env.Store.Categories()))
			return nil
		},
	}
}
