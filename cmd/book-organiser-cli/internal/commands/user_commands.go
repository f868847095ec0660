package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func createUserCmd(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	accountService, err := env.accountService()
	if err != nil {
		return err
	}

	user, err := accountService.Register(cmd.Context(), name, email, password)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", email, err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Email, user.ID)
	return err
}

func listUsersCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	accountService, err := env.accountService()
	if err != nil {
		return err
	}

	users, err := accountService.List(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tAI\tCATEGORIES\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d\t%s\n",
			u.ID, u.Email, u.FullName, u.AcceptedAIFeatures, len(u.UserCategories), u.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func initUserCommands(rootCmd *cobra.Command) {
	var usersCmd = &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE:  createUserCmd,
	}
	createCmd.Flags().String("name", "", "Full name of the user")
	createCmd.Flags().String("email", "", "Email address used to log in")
	createCmd.Flags().String("password", "", "Initial password")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(createCmd)

	usersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		Args:  cobra.NoArgs,
		RunE:  listUsersCmd,
	})

	rootCmd.AddCommand(usersCmd)
}
