// Command admin is the operator CLI. It talks to the same store through the
// same service path as the HTTP API, so accounts it creates behave exactly
// like signed-up ones.
package main

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"linkboard/internal/server/config"
	"linkboard/internal/server/repositories/repomanager"
	"linkboard/internal/server/services"
)

var (
	flagEmail string
	flagName  string
)

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "linkboard operator commands",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user, prompting for the password",
	RunE:  runUserCreate,
}

func init() {
	userCreateCmd.Flags().StringVar(&flagEmail, "email", "", "email of the new user")
	userCreateCmd.Flags().StringVar(&flagName, "name", "", "display name of the new user")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("name")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	db, err := repomanager.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	manager := &repomanager.PostgresRepositoryManager{}
	if err := manager.RunMigrations(cmd.Context(), db); err != nil {
		return err
	}

	svc := services.NewUserService(db, manager, cfg)
	payload, err := svc.Register(cmd.Context(), flagName, flagEmail, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created user %s <%s> id=%s\n",
		payload.User.Name, payload.User.Email, payload.User.ID)
	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	fmt.Fprint(os.Stderr, "Repeat password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("password must not be empty")
	}

	return string(first), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
