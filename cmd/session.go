package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/maintenance-system/maintenance-service/pkg/client"
)

var (
	loginUsername string
	loginPassword string
)

// newClient builds the API client with the persisted session. The
// server URL comes from SERVER_URL; the credential pair lives under a
// single file in the user config dir.
func newClient() *client.Client {
	_ = godotenv.Load(".env")
	serverURL := os.Getenv("SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8000"
	}
	return client.New(serverURL, client.NewSession(credentialsPath()))
}

func credentialsPath() string {
	if p := os.Getenv("CREDENTIALS_FILE"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "maintenance-service", "credentials.json")
}

// requireIdentity is the CLI's route guard: no stored identity sends
// the user to login instead of the requested view.
func requireIdentity(c *client.Client) (*client.Identity, error) {
	identity := c.Session().Identity()
	if identity == nil {
		return nil, errors.New("not logged in, run 'maintenance-service login' first")
	}
	return identity, nil
}

// landingView mirrors the role-based landing after login. Exhaustive
// over the role set on purpose.
func landingView(role client.Role) string {
	switch role {
	case client.RoleMaintenance:
		return "maintenance panel (requests list)"
	case client.RoleOperator:
		return "new request form (requests create)"
	}
	return "login"
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and persist the credential pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		identity, err := c.Login(cmd.Context(), loginUsername, loginPassword)
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s (%s)\n", identity.Username, identity.Role)
		fmt.Printf("next: %s\n", landingView(identity.Role))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted credential pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		newClient().Logout()
		fmt.Println("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		identity, err := requireIdentity(c)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", identity.Username, identity.Role)
		fmt.Printf("landing view: %s\n", landingView(identity.Role))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}
