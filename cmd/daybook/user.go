package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/journal"
	"github.com/daybook/daybook/internal/services"
	"github.com/daybook/daybook/internal/session"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the journal owner and PIN",
	}

	cmd.AddCommand(newUserRegisterCmd())
	cmd.AddCommand(newUserStatusCmd())
	cmd.AddCommand(newUserOTPCmd())
	cmd.AddCommand(newUserUnregisterCmd())

	return cmd
}

// withUsers opens the database and runs fn with a fresh user service. When
// skipUnlock is false a registered owner must unlock first.
func withUsers(cmd *cobra.Command, skipUnlock bool, fn func(ctx context.Context, users *services.UserService) error) error {
	dbCtx, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.CloseDatabase(dbCtx)
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	users := services.NewUserService(dbCtx, session.New())
	if !skipUnlock {
		if err := unlock(ctx, cmd, users); err != nil {
			return err
		}
	}
	return fn(ctx, users)
}

func newUserRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <name>",
		Short: "Register the journal owner with a 4-digit PIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUsers(cmd, true, func(ctx context.Context, users *services.UserService) error {
				if users.Exists(ctx) {
					return errors.New("a journal owner is already registered")
				}

				pin, err := readNewOTP(cmd)
				if err != nil {
					return err
				}
				if !users.Register(ctx, args[0], pin) {
					return errors.New("registration failed: name must not be blank and the PIN must be exactly 4 digits")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", args[0])
				return nil
			})
		},
	}
}

func newUserStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a journal owner is registered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUsers(cmd, true, func(ctx context.Context, users *services.UserService) error {
				user := users.Current(ctx)
				if user == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "No owner registered; the journal is unlocked")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered owner: %s (PIN protected)\n", user.Name)
				return nil
			})
		},
	}
}

func newUserOTPCmd() *cobra.Command {
	var newPIN string

	cmd := &cobra.Command{
		Use:   "otp",
		Short: "Change the PIN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUsers(cmd, false, func(ctx context.Context, users *services.UserService) error {
				pin := newPIN
				if pin == "" {
					var err error
					if pin, err = promptNewOTP(cmd); err != nil {
						return err
					}
				}
				if err := users.UpdateOTP(ctx, pin); err != nil {
					if errors.Is(err, database.ErrNotFound) {
						return errors.New("no journal owner registered")
					}
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "PIN updated")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&newPIN, "new", "", "New 4-digit PIN (prompted when omitted)")

	return cmd
}

func newUserUnregisterCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "unregister",
		Short: "Remove the journal owner; entries are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUsers(cmd, false, func(ctx context.Context, users *services.UserService) error {
				if !users.Exists(ctx) {
					return errors.New("no journal owner registered")
				}
				if !force {
					ok, err := confirm(cmd, "Remove the journal owner and PIN protection? (y/N) ")
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
						return nil
					}
				}
				if _, err := users.Delete(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Owner removed")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

// readNewOTP takes the PIN from --otp or the environment, or prompts twice.
func readNewOTP(cmd *cobra.Command) (string, error) {
	if opts.otp != "" {
		return opts.otp, nil
	}
	if v := lookupOTPEnv(); v != "" {
		return v, nil
	}
	return promptNewOTP(cmd)
}

func promptNewOTP(cmd *cobra.Command) (string, error) {
	pin, err := promptSecret(cmd, "New PIN (4 digits): ")
	if err != nil {
		return "", err
	}
	if err := journal.ValidateOTP(pin); err != nil {
		return "", err
	}
	again, err := promptSecret(cmd, "Repeat PIN: ")
	if err != nil {
		return "", err
	}
	if again != pin {
		return "", errors.New("PINs do not match")
	}
	return pin, nil
}
