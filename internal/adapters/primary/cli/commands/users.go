package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/denchenko/userdir/internal/core/app"
	"github.com/denchenko/userdir/internal/core/domain"
	ascii "github.com/denchenko/userdir/internal/format/ascii"
	"github.com/denchenko/userdir/internal/log"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

var errNoAvatar = errors.New("user has no avatar")

// openURL is replaced in tests.
var openURL = open.Start

func Users(appInstance *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse the user directory",
	}

	cmd.AddCommand(
		newUsersListCommand(appInstance),
		newUsersGetCommand(appInstance),
		newUsersAvatarCommand(appInstance),
	)

	return cmd
}

func newUsersListCommand(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listUsers(cmd.Context(), cmd.OutOrStdout(), appInstance)
		},
	}
}

func newUsersGetCommand(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID [ID...]",
		Short: "Show users by ID",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			return getUsers(cmd.Context(), cmd.OutOrStdout(), appInstance, ids)
		},
	}
}

func newUsersAvatarCommand(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "avatar ID",
		Short: "Open user avatar in browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			return openAvatar(cmd.Context(), appInstance, ids[0])
		},
	}
}

func listUsers(ctx context.Context, w io.Writer, appInstance *app.App) error {
	var users []domain.User
	err := log.WithSpinner("Fetching users...", func() error {
		var err error
		users, err = appInstance.GetAllUsers(ctx)

		return err
	})
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	formatted, err := ascii.FormatUsers(users)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	_, err = fmt.Fprint(w, formatted)

	return err
}

func getUsers(ctx context.Context, w io.Writer, appInstance *app.App, ids []int) error {
	var lookups []domain.Lookup
	err := log.WithSpinner("Fetching users...", func() error {
		var err error
		lookups, err = appInstance.GetUsersByIDs(ctx, ids)

		return err
	})
	if err != nil {
		return fmt.Errorf("failed to get users: %w", err)
	}

	formatted, err := ascii.FormatLookups(lookups)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	_, err = fmt.Fprint(w, formatted)

	return err
}

func openAvatar(ctx context.Context, appInstance *app.App, id int) error {
	user, found, err := appInstance.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if !found {
		return fmt.Errorf("user %d not found", id)
	}

	if user.Avatar == "" {
		return fmt.Errorf("user %d: %w", id, errNoAvatar)
	}

	if err := openURL(user.Avatar); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))

	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: must be an integer", arg)
		}

		ids = append(ids, id)
	}

	return ids, nil
}
