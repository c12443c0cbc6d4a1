package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gaurav-prasanna/clip-to-notion/config"
	"github.com/gaurav-prasanna/clip-to-notion/core/notion"
	"github.com/spf13/cobra"
)

var (
	flagDBTitle string
	flagDBSave  bool
)

// notionHTTPClient is the client used for database creation; nil means the
// notionapi default.
var notionHTTPClient *http.Client

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the clipping database",
}

var dbCreateCmd = &cobra.Command{
	Use:   "create <parent-page-id>",
	Short: "Create a database with the Name, URL, Tags and Description properties",
	Long: `Create makes a new Notion database under the given parent page with the
properties run writes to, and prints its ID. With --save the ID is stored in
the configuration file.`,
	Args: cobra.ExactArgs(1),
	RunE: runDBCreate,
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbCreateCmd)

	dbCreateCmd.Flags().StringVar(&flagDBTitle, "title", notion.DefaultDatabaseTitle, "Database title")
	dbCreateCmd.Flags().BoolVar(&flagDBSave, "save", false, "Store the new database ID in the config file")
}

func runDBCreate(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cfg.NotionAPIKey == "" {
		return fmt.Errorf("notion_api_key is empty in %s", path)
	}

	creator := notion.NewDatabaseCreator(cfg.NotionAPIKey, notionHTTPClient)
	id, err := creator.CreateDatabase(context.Background(), args[0], flagDBTitle)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)

	if flagDBSave {
		stored, err := config.Read(path)
		if err != nil {
			return err
		}
		stored.DatabaseID = id
		if err := config.Save(path, stored); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved database ID to %s\n", path)
	}
	return nil
}
