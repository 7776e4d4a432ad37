package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gonotepad/internal/notes"
	"gonotepad/internal/notes/adapters/services"
)

const (
	flagSubject = "subject"
	flagTTL     = "ttl"

	ErrIssueToken = "failed to issue token"
)

// ErrAuthDisabled токен нельзя выпустить без секрета.
var ErrAuthDisabled = errors.New("auth secret key is not configured (NOTES_AUTH_SECRET_KEY)")

func (r *runner) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and gRPC health checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return notes.Serve(cmd.Context(), r.cfg)
		},
	}
}

func (r *runner) tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !r.cfg.Auth.Enabled() {
				return ErrAuthDisabled
			}

			token, err := services.NewJWT(r.cfg.Auth.SecretKey).IssueAccessToken(subject, ttl)
			if err != nil {
				return fmt.Errorf("%s: %w", ErrIssueToken, err)
			}

			_, err = fmt.Fprintln(r.out, token)
			return err
		},
	}

	cmd.Flags().StringVarP(&subject, flagSubject, "s", "", "token subject")
	cmd.Flags().DurationVar(&ttl, flagTTL, 24*time.Hour, "token lifetime, 0 for no expiry")
	_ = cmd.MarkFlagRequired(flagSubject)

	return cmd
}
