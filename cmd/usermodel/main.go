package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"lariskan-server/internal/domain"
	"lariskan-server/internal/infra"
	"lariskan-server/internal/sqlinline"
)

// usermodel switches a profile's AI backend preference from the command line,
// for support cases where the settings endpoint is not an option.
func main() {
	var (
		idFlag    string
		emailFlag string
		modelFlag string
	)

	flag.StringVar(&idFlag, "id", "", "external user ID to update")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.StringVar(&modelFlag, "model", "mistral", "model backend to assign (gemini, mistral)")
	flag.Parse()

	externalID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)
	model := domain.ModelID(strings.TrimSpace(strings.ToLower(modelFlag)))

	if externalID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	if !domain.KnownModel(model) {
		exitWithError(fmt.Errorf("%w: %q", domain.ErrUnsupportedModel, model))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "usermodel").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	lookupCtx, cancelLookup := context.WithTimeout(context.Background(), 5*time.Second)
	var profile domain.Profile
	var scanErr error
	if externalID != "" {
		row := runner.QueryRow(lookupCtx, sqlinline.QSelectProfileByExternalID, externalID)
		scanErr = row.Scan(&profile.ID, &profile.ExternalID, &profile.Email, &profile.FullName, &profile.AvatarURL, &profile.Model, &profile.LocalePref, &profile.CreatedAt, &profile.UpdatedAt)
	} else {
		row := runner.QueryRow(lookupCtx, sqlinline.QSelectProfileByEmail, email)
		scanErr = row.Scan(&profile.ID, &profile.ExternalID, &profile.Email, &profile.FullName, &profile.AvatarURL, &profile.Model, &profile.LocalePref, &profile.CreatedAt, &profile.UpdatedAt)
	}
	cancelLookup()
	if scanErr != nil {
		exitWithError(fmt.Errorf("failed to load profile: %w", scanErr))
	}

	updateCtx, cancelUpdate := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelUpdate()
	tag, err := runner.Exec(updateCtx, sqlinline.QUpdateProfileModel, profile.ExternalID, string(model))
	if err != nil {
		exitWithError(fmt.Errorf("failed to update model preference: %w", err))
	}
	if tag.RowsAffected() == 0 {
		exitWithError(fmt.Errorf("profile %s not found", profile.ExternalID))
	}

	fmt.Printf("Profile %s (%s) switched from %s to %s\n", profile.ExternalID, profile.Email, profile.Model, model)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
