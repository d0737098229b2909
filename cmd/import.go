package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/areyou/internal/source"
)

var importDSN string

// importCmd copies the markdown content into a SQLite database.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Imports the content directory into a SQLite database",
	Long: `The import command loads the history records from './content/history/' and the
people from './data/people.yaml', and replaces the contents of the SQLite
database at --dsn with them. Build from it with source.driver: sqlite.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn := importDSN
		if dsn == "" {
			dsn = appConfig.Source.DSN
		}
		if dsn == "" {
			return fmt.Errorf("a database is required: pass --dsn or set source.dsn")
		}

		snapshot, err := newContentSource(appConfig).Load(cmd.Context())
		if err != nil {
			return err
		}
		db, err := source.OpenSQLite(dsn, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Save(cmd.Context(), snapshot)
	},
}

func init() {
	importCmd.Flags().StringVar(&importDSN, "dsn", "", "SQLite database to write (default is source.dsn)")
	rootCmd.AddCommand(importCmd)
}
