package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/project/lms/config"
	"github.com/project/lms/db"
	"github.com/project/lms/internal/app"
	"github.com/project/lms/internal/entity"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func newRootCommand(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "library",
		Short:         "Library management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(cfg, logger),
		newMigrateCommand(cfg, logger),
		newSeedCommand(cfg, logger),
		newUserCommand(cfg, logger),
	)
	return root
}

func newServeCommand(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the gRPC health service and the metrics endpoint",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.Run(logger, cfg)
		},
	}
}

func newMigrateCommand(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down|status",
		Short:     "Apply, roll back or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(db.Up), string(db.Down), string(db.Status)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return db.Migrate(cmd.Context(), cfg.PG.DSN, db.Direction(args[0]), logger)
		},
	}
}

func newSeedCommand(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo users, books, borrow requests and reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			services, err := app.NewServices(ctx, logger, cfg)
			if err != nil {
				return err
			}
			defer services.Close()

			return app.NewSeeder(services.Library, services.Identity, seed, cmd.OutOrStdout()).Run(ctx)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed for generated data")
	return cmd
}

func newUserCommand(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	user.AddCommand(newUserCreateCommand(cfg, logger))
	return user
}

func newUserCreateCommand(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var username, email, role, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user with the given role; librarians can only be created here",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsedRole, err := entity.ParseRole(strings.ToUpper(role))
			if err != nil {
				return err
			}

			if password == "" {
				if password, err = readPassword(cmd); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			services, err := app.NewServices(ctx, logger, cfg)
			if err != nil {
				return err
			}
			defer services.Close()

			created, err := services.Identity.CreateUser(ctx, username, email, password, parsedRole)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s) with id %s\n", created.Username, created.Role, created.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&role, "role", string(entity.RoleLibrarian), "MEMBER or LIBRARIAN")
	cmd.Flags().StringVar(&password, "password", "", "password; prompted for when omitted")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// readPassword prompts twice without echo and requires both entries to match.
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("password flag is required when stdin is not a terminal")
	}

	read := func(prompt string) (string, error) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)
		raw, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	password, err := read("Password: ")
	if err != nil {
		return "", err
	}
	confirm, err := read("Repeat password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

