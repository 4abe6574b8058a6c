// Command seed creates user accounts in the lantern database.
//
// With no flags it creates the two demo accounts:
//
//	test@example.com / password   (山田太郎)
//	user@example.com / secret123  (佐藤花子)
//
// With -email it creates one account and prompts for the password without
// echoing it:
//
//	go run ./cmd/seed -email hanako@example.com -name "佐藤花子"
//
// The question and recommendation catalog is not seeded here; migrations
// load it when the database is opened.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/auth"
	"github.com/sakif/mood-lantern/internal/model"
	"github.com/sakif/mood-lantern/internal/repository"
	"github.com/sakif/mood-lantern/internal/repository/sqlstore"
)

// readPassword is swapped out in tests so they never touch a terminal.
var readPassword = term.ReadPassword

type seedUser struct {
	Name       string
	Email      string
	Password   string
	Prefecture string
	Birthday   string
	Gender     string
}

var demoUsers = []seedUser{
	{Name: "山田太郎", Email: "test@example.com", Password: "password", Prefecture: "東京都", Birthday: "1990-01-01", Gender: "male"},
	{Name: "佐藤花子", Email: "user@example.com", Password: "secret123", Prefecture: "大阪府", Birthday: "1995-05-15", Gender: "female"},
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(out)
	driver := fs.String("driver", envOr("DB_DRIVER", "sqlite"), "database driver: sqlite or postgres")
	dsn := fs.String("dsn", envOr("DB_DSN", "data/lantern.db"), "database DSN")
	email := fs.String("email", "", "create this account instead of the demo users")
	name := fs.String("name", "", "display name for -email")
	cost := fs.Int("cost", auth.DefaultCost, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(out, nil))

	users := demoUsers
	if *email != "" {
		fmt.Fprintf(out, "Password for %s: ", *email)
		pw, err := readPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		users = []seedUser{{Name: *name, Email: *email, Password: string(pw)}}
	}

	db, err := sqlstore.New(ctx, sqlstore.Driver(*driver), *dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	return seed(ctx, db, auth.NewPasswordService(*cost), users, logger)
}

// seed creates each user. Existing emails are skipped, so running the
// command twice is harmless.
func seed(ctx context.Context, users repository.UserRepository, passwords *auth.PasswordService, list []seedUser, logger *slog.Logger) error {
	for _, u := range list {
		hash, err := passwords.Hash(u.Password)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", u.Email, err)
		}

		user := &model.User{
			Name:         u.Name,
			Email:        strings.ToLower(strings.TrimSpace(u.Email)),
			PasswordHash: hash,
			Prefecture:   u.Prefecture,
			Gender:       u.Gender,
		}
		if u.Birthday != "" {
			b, err := time.Parse(model.DateLayout, u.Birthday)
			if err != nil {
				return fmt.Errorf("birthday for %s: %w", u.Email, err)
			}
			user.Birthday = &b
		}

		err = users.CreateUser(ctx, user)
		switch {
		case errors.Is(err, apperror.ErrConflict):
			logger.Info("user exists, skipped", slog.String("email", user.Email))
		case err != nil:
			return fmt.Errorf("creating %s: %w", user.Email, err)
		default:
			logger.Info("user created", slog.String("email", user.Email), slog.String("id", user.ID))
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
