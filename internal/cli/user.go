package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blogosphere/blog/internal/core/ports"
	"github.com/blogosphere/blog/internal/core/service"
	"github.com/blogosphere/blog/internal/infrastructure/db/sqlstore"
)

// UserOptions holds flags for the user create command.
type UserOptions struct {
	*RootOptions
	Username string
	Password string
}

// NewUserCommand creates the user command.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UserOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account without going through the register page",
		Example: `  blog user create --username alice --password s3cret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createUser(cmd, opts)
		},
	}
	create.Flags().StringVar(&opts.Username, "username", "", "account name (required)")
	create.Flags().StringVar(&opts.Password, "password", "", "account password (required)")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}

func createUser(cmd *cobra.Command, opts *UserOptions) error {
	ctx := cmd.Context()
	db, err := sqlstore.Open(ctx, storeConfig(opts.Config))
	if err != nil {
		return err
	}
	defer db.Close()

	auth := service.NewAuthService(sqlstore.NewUserRepository(db), nil, opts.Config.Session.Secret, opts.Config.Session.TTL)
	user, err := auth.Register(ctx, ports.Credentials{Username: opts.Username, Password: opts.Password})
	if err != nil {
		return fmt.Errorf("create user %s: %w", opts.Username, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", user.Username, user.ID)
	return nil
}
