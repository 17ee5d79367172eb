package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema-verify/internal/dialect"
	"schema-verify/internal/schema"
	"schema-verify/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify every active target against the canonical schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Canonical snapshot: built exactly once, shared read-only
		// across all dialect runs.
		canonicalPath := viper.GetString("schema.file")
		canonical, err := schema.LoadCanonical(canonicalPath)
		if err != nil {
			return err
		}
		log.Printf("Canonical schema loaded from %s (%d columns, %d tables with keys)",
			canonicalPath, len(canonical.Columns), len(canonical.PrimaryKeys))

		configs, err := GetActiveTargets()
		if err != nil {
			return err
		}

		opts, err := GetVerifyOptions()
		if err != nil {
			return err
		}

		// 2. Open one connection pool per target. Each dialect run owns
		// its pool; nothing else is shared.
		var targets []verify.Target
		for _, c := range configs {
			d, err := dialect.GetDialect(dialect.ID(c.Driver))
			if err != nil {
				return err
			}

			db, err := sql.Open(dialect.DriverName(d.ID()), c.DSN)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", c.Name, err)
			}
			defer db.Close()
			if err := db.Ping(); err != nil {
				return fmt.Errorf("failed to connect to %s: %w", c.Name, err)
			}

			targets = append(targets, verify.Target{
				Name:    c.Name,
				Dialect: d,
				DB:      db,
				Schema:  c.Schema,
			})
			fmt.Printf("🔍 Connected to %s (%s)\n", c.Name, c.Driver)
		}

		objectCount := len(canonical.Columns) + len(canonical.PrimaryKeys) +
			len(canonical.ForeignKeys) + len(canonical.Uniques) + len(canonical.Indexes)

		log.Printf("Verifying %d targets against %d canonical objects...", len(targets), objectCount)
		start := time.Now()

		// 3. Progress Bar
		uiprogress.Start()
		bar := uiprogress.AddBar(objectCount * len(targets)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Checking:   "
		})

		// 4. Run all dialects concurrently
		reports := verify.RunAll(canonical, targets, opts, func() {
			bar.Incr()
		})

		uiprogress.Stop()
		elapsed := time.Since(start)

		// 5. Final Report
		fmt.Println("\n📊 Verification Report:")
		failedTargets := 0
		for _, rep := range reports {
			failures := rep.Failures()
			icon := "✓"
			if !rep.Passed() {
				icon = "!"
				failedTargets++
			}
			fmt.Printf("[%s] %-16s (%s): %d checks, %d failed\n",
				icon, rep.Target, rep.Dialect, len(rep.Results), len(failures))

			for _, f := range failures {
				fmt.Printf("    └ %s\n", f)
			}
			if rep.Err != nil {
				fmt.Printf("    └ Fatal: %v\n", rep.Err)
			}
		}
		fmt.Println("--------------------------------------------------")
		log.Printf("Verification Done! Time Elapsed: %s", elapsed)

		if failedTargets > 0 {
			return fmt.Errorf("%d of %d targets diverged from the canonical schema", failedTargets, len(reports))
		}
		fmt.Println("All targets match the canonical schema.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(verifyCmd)
}
