package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"schema-verify/internal/dialect"
	"schema-verify/internal/schema"
)

var inspectTarget string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the live snapshot of one target",
	RunE: func(cmd *cobra.Command, args []string) error {
		configs, err := GetActiveTargets()
		if err != nil {
			return err
		}

		var config *TargetConfig
		for i := range configs {
			if inspectTarget == "" || configs[i].Name == inspectTarget {
				config = &configs[i]
				break
			}
		}
		if config == nil {
			return fmt.Errorf("no matching target found for %q", inspectTarget)
		}

		d, err := dialect.GetDialect(dialect.ID(config.Driver))
		if err != nil {
			return err
		}

		db, err := sql.Open(dialect.DriverName(d.ID()), config.DSN)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		fmt.Printf("🔍 Connected to %s (%s)\n", config.Name, config.Driver)

		conn, err := schema.FetchConnInfo(db, d, config.Schema)
		if err != nil {
			return err
		}
		log.Printf("Engine: %s, major version %d", conn.Dialect, conn.MajorVersion)

		log.Println("Analyzing schema...")
		snap, err := schema.Analyze(db, d, config.Schema)
		if err != nil {
			return err
		}

		fmt.Printf("\nTables (%d):\n", len(snap.Tables))
		for _, name := range snap.Tables {
			fmt.Printf("  %s\n", name)
		}

		fmt.Println("\nColumns:")
		for _, c := range snap.Columns {
			size := ""
			if c.Size != 0 {
				size = fmt.Sprintf("(%d)", c.Size)
			}
			flags := []string{}
			if !c.Nullable {
				flags = append(flags, "NOT NULL")
			}
			if c.AutoInc {
				flags = append(flags, "AUTOINC")
			}
			if c.Default != "" {
				flags = append(flags, "DEFAULT "+c.Default)
			}
			fmt.Printf("  %-40s %s%s %s\n", c.Key(), c.Type, size, strings.Join(flags, " "))
		}

		fmt.Println("\nPrimary Keys:")
		for _, pk := range snap.PrimaryKeys {
			fmt.Printf("  %-40s (%s)\n", pk.Table, strings.Join(pk.Columns, ", "))
		}

		fmt.Println("\nForeign Keys:")
		for _, fk := range snap.ForeignKeys {
			fmt.Printf("  %-40s -> %s (on delete %s)\n", fk.Key(), fk.RefTable, fk.OnDelete)
		}

		fmt.Println("\nUnique Constraints:")
		for _, u := range snap.Uniques {
			fmt.Printf("  %-40s (%s)\n", u.Key(), strings.Join(u.Columns, ", "))
		}

		fmt.Println("\nIndexes:")
		for _, idx := range snap.Indexes {
			kind := ""
			if idx.Unique {
				kind = " UNIQUE"
			}
			if idx.Generated {
				kind += " (generated)"
			}
			fmt.Printf("  %-40s (%s)%s\n", idx.Key(), strings.Join(idx.Columns, ", "), kind)
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectTarget, "target", "t", "", "Target name to inspect (default: first active)")
}
