package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/clip-to-notion/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration file interactively",
	Long: `Init asks for a Notion integration API key and the ID of the database
pages should be created in, and stores both in the configuration file.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	prompter := config.NewPrompter(cmd.InOrStdin(), out)

	if config.Exists(path) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: config file already exists at %s\n", path)
		ok, err := prompter.Confirm("Do you want to overwrite it?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Aborting initialization.")
			return nil
		}
	}

	cfg, err := prompter.Collect()
	if err != nil {
		return err
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Configuration file created at: %s\n", path)
	return nil
}
