package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s3904419/go-rws/robot"
)

const consoleMenu = `
Choose what to do:
 0: Exit
 1: Turn motors on
 2: Turn motors off
 3: Start RAPID execution (from main)
 4: Stop RAPID execution
 5: Show execution state
 6: Get RAPID variable
 7: Set RAPID variable
 8: Show joint positions
 9: Show controller and operation mode`

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive menu for commanding the robot",
	Long: `Opens a controller session and presents a numbered menu of the
common operations, intended for people unfamiliar with RobotStudio or the
FlexPendant. Each menu entry issues the same requests as the matching
subcommand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		sys := r.System()
		fmt.Printf("connected to %q (RobotWare %s)\n", sys.Name, sys.RobotWareVersion)

		in := bufio.NewScanner(os.Stdin)
		for {
			fmt.Println(consoleMenu)
			choice, ok := prompt(in, "What should the robot do?")
			if !ok || choice == "0" {
				fmt.Println("bye")
				return nil
			}
			if err := runConsoleChoice(cmd.Context(), r, in, choice); err != nil {
				// Keep the console alive on operation errors; the controller
				// already said why.
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		}
	},
}

func runConsoleChoice(ctx context.Context, r *robot.Robot, in *bufio.Scanner, choice string) error {
	switch choice {
	case "1":
		if err := r.MotorsOn(ctx); err != nil {
			return err
		}
		fmt.Println("motors on")

	case "2":
		if err := r.MotorsOff(ctx); err != nil {
			return err
		}
		fmt.Println("motors off")

	case "3":
		if err := r.StartProgram(ctx, true); err != nil {
			return err
		}
		fmt.Println("RAPID execution started from main")

	case "4":
		if err := r.StopProgram(ctx); err != nil {
			return err
		}
		fmt.Println("RAPID execution stopped")

	case "5":
		state, err := r.Client().ExecutionState(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("execution state: %s\n", state)

	case "6":
		name, ok := prompt(in, "Variable name:")
		if !ok {
			return nil
		}
		value, err := r.Variable(ctx, name)
		if err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", name, value)

	case "7":
		name, ok := prompt(in, "Variable name:")
		if !ok {
			return nil
		}
		value, ok := prompt(in, "New value (RAPID literal):")
		if !ok {
			return nil
		}
		if err := r.SetVariable(ctx, name, value); err != nil {
			return err
		}
		readback, err := r.Variable(ctx, name)
		if err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", name, readback)

	case "8":
		joints, err := r.JointPositions(ctx)
		if err != nil {
			return err
		}
		for i, v := range joints {
			fmt.Printf("axis %d: %8.2f\n", i+1, v)
		}

	case "9":
		state, err := r.Client().ControllerState(ctx)
		if err != nil {
			return err
		}
		mode, err := r.Client().OperationMode(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("controller state: %s, operation mode: %s\n", state, mode)

	default:
		fmt.Printf("unknown choice %q\n", choice)
	}
	return nil
}

// prompt prints a prompt and reads one trimmed line; ok is false on EOF.
func prompt(in *bufio.Scanner, msg string) (string, bool) {
	fmt.Printf("%s ", msg)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
