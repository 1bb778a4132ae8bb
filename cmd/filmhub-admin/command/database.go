package command

import (
	"errors"
	"fmt"

	"filmhub/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// OpenGorm migrates on connect
			db, err := database.OpenGorm(cfg, newLogger(cmd, cfg))
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newSeedAdminCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an administrator account, or grant the role to an existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if email == "" {
				email = cfg.AdminEmail
			}
			if password == "" {
				password = cfg.AdminPassword
			}
			if email == "" || password == "" {
				return errors.New("--email and --password are required when ADMIN_EMAIL/ADMIN_PASSWORD are unset")
			}

			logger := newLogger(cmd, cfg)
			db, err := database.OpenGorm(cfg, logger)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := database.SeedAdmin(cmd.Context(), db, email, password, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "administrator %s ready\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "administrator email (defaults to ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "administrator password (defaults to ADMIN_PASSWORD)")
	return cmd
}
