package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rapidResetPP bool

var rapidCmd = &cobra.Command{
	Use:   "rapid",
	Short: "Control RAPID execution and variables",
}

var rapidStateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the RAPID execution state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		state, err := r.Client().ExecutionState(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(state)
		return nil
	},
}

var rapidStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start RAPID execution (requires motors on and AUTO mode)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.StartProgram(cmd.Context(), rapidResetPP); err != nil {
			return err
		}
		fmt.Println("RAPID execution started")
		return nil
	},
}

var rapidStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop RAPID execution",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.StopProgram(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("RAPID execution stopped")
		return nil
	},
}

var rapidResetCmd = &cobra.Command{
	Use:   "resetpp",
	Short: "Reset the program pointer to main",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.Client().ResetProgramPointer(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("program pointer reset to main")
		return nil
	},
}

var rapidVarCmd = &cobra.Command{
	Use:   "var",
	Short: "Read and write RAPID variables",
}

var rapidVarGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Read a RAPID variable from the configured task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		value, err := r.Variable(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

var rapidVarSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Write a RAPID variable (value in RAPID literal syntax)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.SetVariable(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

var rapidTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the RAPID tasks on the controller",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		tasks, err := r.Client().Tasks(cmd.Context())
		if err != nil {
			return err
		}
		for _, t := range tasks {
			active := " "
			if t.Active {
				active = "*"
			}
			fmt.Printf("%s %-16s %s\n", active, t.Name, t.ExecutionState)
		}
		return nil
	},
}

func init() {
	rapidStartCmd.Flags().BoolVar(&rapidResetPP, "resetpp", false, "reset the program pointer to main before starting")
	rapidVarCmd.AddCommand(rapidVarGetCmd, rapidVarSetCmd)
	rapidCmd.AddCommand(rapidStateCmd, rapidStartCmd, rapidStopCmd, rapidResetCmd, rapidVarCmd, rapidTasksCmd)
	rootCmd.AddCommand(rapidCmd)
}
