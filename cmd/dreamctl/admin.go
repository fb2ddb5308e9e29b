package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamcanvas/server/internal/config"
	"github.com/dreamcanvas/server/internal/factory"
	"github.com/dreamcanvas/server/internal/logger"
)

// Admin commands talk to the configured store directly instead of the
// REST API, so they work before a service is running.
func init() {
	bootstrapCmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the dreams schema on the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New("dreamctl")
			cfg, err := config.New()
			if err != nil {
				return err
			}
			// factory.NewStore runs the schema bootstrap before returning.
			if _, err := factory.NewStore(context.Background(), cfg, log); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "schema ready (%s)\n", cfg.DBDriver)
			return nil
		},
	}
	rootCmd.AddCommand(bootstrapCmd)

	var userID string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump a user's gallery from the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New("dreamctl")
			cfg, err := config.New()
			if err != nil {
				return err
			}
			st, err := factory.NewStore(context.Background(), cfg, log)
			if err != nil {
				return err
			}
			list, err := st.Dreams().List(context.Background(), userID)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		},
	}
	dumpCmd.Flags().StringVarP(&userID, "user", "u", "", "User ID (required)")
	_ = dumpCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(dumpCmd)
}
