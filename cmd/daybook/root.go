package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/daybook/daybook/internal/config"
	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/logging"
	"github.com/daybook/daybook/internal/services"
	"github.com/daybook/daybook/internal/session"
)

const otpEnv = "DAYBOOK_OTP"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	dbPath   string
	logLevel string
	otp      string

	cfg *config.Config
}

var opts globalOptions

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "daybook",
		Short:        "daybook - a private one-entry-per-day journal",
		Long:         "daybook keeps one journal entry per day with moods and tags in a local SQLite file.",
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := config.Load()
		if err != nil {
			return err
		}
		if opts.dbPath != "" {
			cfg.Database.Path = opts.dbPath
		}
		if opts.logLevel != "" {
			cfg.Log.Level = opts.logLevel
		}
		opts.cfg = cfg
		return logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	}

	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to the journal database file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&opts.otp, "otp", "", "PIN used to unlock the journal (or set "+otpEnv+")")

	cmd.AddCommand(newEntryCmd())
	cmd.AddCommand(newMoodCmd())
	cmd.AddCommand(newTagCmd())
	cmd.AddCommand(newUserCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newMCPCmd())

	return cmd
}

func databasePath() string {
	if opts.cfg != nil {
		return opts.cfg.Database.Path
	}
	return opts.dbPath
}

func openDatabase() (*database.Context, error) {
	return database.CreateDatabase(databasePath())
}

// withJournal opens the database, unlocks it when an owner is registered and
// runs fn. The database is closed afterwards.
func withJournal(cmd *cobra.Command, fn func(ctx context.Context, dbCtx *database.Context) error) error {
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
	if err := unlock(ctx, cmd, users); err != nil {
		return err
	}
	return fn(ctx, dbCtx)
}

func unlock(ctx context.Context, cmd *cobra.Command, users *services.UserService) error {
	if users.IsAuthenticated() {
		return nil
	}
	registered, err := users.Registered(ctx)
	if err != nil {
		return err
	}
	if !registered {
		return nil
	}

	pin, err := readOTP(cmd, "PIN: ")
	if err != nil {
		return err
	}
	if !users.ValidateOTP(ctx, pin) {
		return errors.New("invalid PIN")
	}
	return nil
}

// readOTP returns the PIN from --otp, the environment or a hidden prompt.
func readOTP(cmd *cobra.Command, prompt string) (string, error) {
	if opts.otp != "" {
		return opts.otp, nil
	}
	if v := lookupOTPEnv(); v != "" {
		return v, nil
	}
	return promptSecret(cmd, prompt)
}

func lookupOTPEnv() string {
	return os.Getenv(otpEnv)
}

func promptSecret(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := readLine(os.Stdin)
	if err != nil && line == "" {
		return "", fmt.Errorf("read PIN: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func confirm(cmd *cobra.Command, message string) (bool, error) {
	fmt.Fprint(cmd.ErrOrStderr(), message)
	answer, err := readLine(os.Stdin)
	if err != nil && answer == "" {
		return false, err
	}
	return strings.TrimSpace(strings.ToLower(answer)) == "y", nil
}

// readLine reads up to and excluding the next newline one byte at a time, so
// whatever follows the line stays unread in r.
func readLine(r io.Reader) (string, error) {
	var (
		line []byte
		buf  [1]byte
	)
	for {
		n, err := r.Read(buf[:])
		if n == 1 {
			if buf[0] == '\n' {
				return string(line), nil
			}
			line = append(line, buf[0])
		}
		if err != nil {
			return string(line), err
		}
	}
}
