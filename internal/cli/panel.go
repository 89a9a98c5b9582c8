package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Query and change controller panel state",
}

var panelMotorsOnCmd = &cobra.Command{
	Use:   "motors-on",
	Short: "Turn the robot motors on (requires AUTO mode)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.MotorsOn(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("motors on")
		return nil
	},
}

var panelMotorsOffCmd = &cobra.Command{
	Use:   "motors-off",
	Short: "Turn the robot motors off",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.MotorsOff(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("motors off")
		return nil
	},
}

var panelStateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the controller state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		state, err := r.Client().ControllerState(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(state)
		return nil
	},
}

var panelOpmodeCmd = &cobra.Command{
	Use:   "opmode",
	Short: "Show the operation mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		mode, err := r.Client().OperationMode(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(mode)
		return nil
	},
}

var panelSpeedCmd = &cobra.Command{
	Use:   "speed [percent]",
	Short: "Show or set the global speed ratio",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if len(args) == 0 {
			ratio, err := r.Client().SpeedRatio(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%d%%\n", ratio)
			return nil
		}

		ratio, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid speed ratio %q", args[0])
		}
		if err := r.Client().SetSpeedRatio(cmd.Context(), ratio); err != nil {
			return err
		}
		fmt.Printf("speed ratio set to %d%%\n", ratio)
		return nil
	},
}

func init() {
	panelCmd.AddCommand(panelMotorsOnCmd, panelMotorsOffCmd, panelStateCmd, panelOpmodeCmd, panelSpeedCmd)
	rootCmd.AddCommand(panelCmd)
}
