package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	programLoadMode string
	programSaveDest string
)

var programCmd = &cobra.Command{
	Use:   "program",
	Short: "Load and save RAPID programs on the controller",
}

var programLoadCmd = &cobra.Command{
	Use:   "load <progpath>",
	Short: "Load a stored program (.pgf) into the configured task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.Client().LoadProgram(cmd.Context(), flagTask, args[0], programLoadMode); err != nil {
			return err
		}
		fmt.Printf("loaded %s into %s\n", args[0], flagTask)
		return nil
	},
}

var programSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the loaded program to the controller file system",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := programSaveDest
		if dest == "" {
			dest = "data/rapid_programs/" + args[0]
		}

		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.Client().SaveProgram(cmd.Context(), flagTask, args[0], dest); err != nil {
			return err
		}
		fmt.Printf("saved %s to %s\n", args[0], dest)
		return nil
	},
}

func init() {
	programLoadCmd.Flags().StringVar(&programLoadMode, "mode", "replace", "load mode (replace or add)")
	programSaveCmd.Flags().StringVar(&programSaveDest, "dest", "", "destination path on the controller")
	programCmd.AddCommand(programLoadCmd, programSaveCmd)
	rootCmd.AddCommand(programCmd)
}
