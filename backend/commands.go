package main

import (
	"encoding/json"
	"fmt"
	"os"

	"devtracker/backend/config"
	"devtracker/backend/leetcode"
	"devtracker/backend/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <username>",
		Short: "Fetch merged LeetCode stats for a username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			stats, err := a.deps.Merger.Fetch(cmd.Context(), leetcode.FetchRequest{Username: args[0]})
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	}
}

func newSyncCmd() *cobra.Command {
	var userID, username string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile recent LeetCode submissions into a user's problems",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user-id: %w", err)
			}
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			if username == "" {
				if username, err = a.deps.Store.Profiles.Username(cmd.Context(), id); err != nil {
					return err
				}
			}
			if username == "" {
				return leetcode.ErrEmptyUsername
			}
			changed := a.deps.Reconciler.Sync(cmd.Context(), id, username)
			return printJSON(map[string]interface{}{"username": username, "changed": changed})
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "user id (UUID)")
	cmd.Flags().StringVar(&username, "username", "", "LeetCode username, defaults to the remembered one")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func newStreakCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Recompute and store a user's streaks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user-id: %w", err)
			}
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.close()

			streak, err := a.deps.Scores.UpdateProfileStreaks(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(streak)
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "user id (UUID)")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for a user id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := uuid.New()
			if userID != "" {
				parsed, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid --user-id: %w", err)
				}
				id = parsed
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			token, err := utils.GenerateJWTToken(id, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintln(cmd.ErrOrStderr(), "user_id:", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "user id (UUID), random when empty")
	return cmd
}
