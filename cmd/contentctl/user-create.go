package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/gramsetu/contenthub/pkg/db"
	"github.com/gramsetu/contenthub/pkg/identity"
	"github.com/gramsetu/contenthub/pkg/server/store"
	gormstore "github.com/gramsetu/contenthub/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Create a user account directly in the database.

This is the only way to create an account with the admin role; the API only
registers user and entrepreneur accounts.

Example:
  contentctl user create --name Admin --email admin@example.org --password secret --role admin`,
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		roleName, _ := cmd.Flags().GetString("role")

		if err := createUser(name, email, password, roleName); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)

	userCreateCmd.Flags().String("name", "", "display name")
	userCreateCmd.Flags().String("email", "", "email address")
	userCreateCmd.Flags().String("password", "", "password")
	userCreateCmd.Flags().String("role", "admin", "account role (user, entrepreneur or admin)")
	_ = userCreateCmd.MarkFlagRequired("name")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
}

func createUser(name, email, password, roleName string) error {
	role, err := identity.RoleString(roleName)
	if err != nil {
		return fmt.Errorf("unknown role %q", roleName)
	}
	if name == "" || email == "" || len(password) < 8 {
		return fmt.Errorf("name, email and a password of at least 8 characters are required")
	}

	conn, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := gormstore.NewUsersStore(conn).CreateUser(name, email, string(digest), role)
	if errors.Is(err, store.ErrEmailTaken) {
		return fmt.Errorf("email %s is already registered", email)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Created %s account %s (%s)\n", user.Role, user.Email, user.ID)
	return nil
}
