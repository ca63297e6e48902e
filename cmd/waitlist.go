package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/headcheck/headcheck/internal/waitlist"
)

var waitlistCmd = &cobra.Command{
	Use:   "waitlist",
	Short: "Inspect collected waitlist signups",
}

var waitlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List waitlist signups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openWaitlistStore(cmd)
		if err != nil {
			return err
		}
		defer closeWaitlistStore(store)

		signups, err := store.ListSignups(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list signups: %w", err)
		}

		printSignupTable(signups)
		return nil
	},
}

var waitlistCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of waitlist signups",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openWaitlistStore(cmd)
		if err != nil {
			return err
		}
		defer closeWaitlistStore(store)

		count, err := store.CountSignups(cmd.Context())
		if err != nil {
			return fmt.Errorf("count signups: %w", err)
		}

		fmt.Println(count)
		return nil
	},
}

func openWaitlistStore(cmd *cobra.Command) (*waitlist.SQLiteStore, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		return nil, fmt.Errorf("--db is required (or set waitlist.db_path in the config file)")
	}
	store, err := waitlist.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open waitlist store: %w", err)
	}
	return store, nil
}

func closeWaitlistStore(store *waitlist.SQLiteStore) {
	if err := store.Close(); err != nil {
		logger.Warnw("failed to close waitlist store", "error", err)
	}
}

func printSignupTable(signups []waitlist.Signup) {
	if len(signups) == 0 {
		fmt.Println(colorWarn("No signups collected yet."))
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tSOURCE\tSIGNED UP")
	for _, signup := range signups {
		source := signup.SourceURL
		if source == "" {
			source = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", signup.ID, signup.Email, source, signup.CreatedAt.Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to flush signup table: %v\n", err)
	}
}

func init() {
	waitlistCmd.PersistentFlags().String("db", "", "SQLite database path for waitlist signups")
	waitlistListCmd.Flags().Int("limit", 50, "Maximum signups to list (0 = all)")
	waitlistCmd.AddCommand(waitlistListCmd)
	waitlistCmd.AddCommand(waitlistCountCmd)
}
