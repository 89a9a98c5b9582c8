package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	motionTool string
	motionWobj string
)

var motionCmd = &cobra.Command{
	Use:   "motion",
	Short: "Query the motion system",
}

var motionJointsCmd = &cobra.Command{
	Use:   "joints",
	Short: "Show the joint positions of the mechanical unit, in degrees",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		joints, err := r.JointPositions(cmd.Context())
		if err != nil {
			return err
		}
		for i, v := range joints {
			fmt.Printf("axis %d: %8.2f\n", i+1, v)
		}
		return nil
	},
}

var motionToolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Show the tool position relative to a work object",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		rt, err := r.ToolPosition(cmd.Context(), motionTool, motionWobj)
		if err != nil {
			return err
		}
		fmt.Printf("position:    [%.2f, %.2f, %.2f] mm\n", rt.Pos[0], rt.Pos[1], rt.Pos[2])
		fmt.Printf("orientation: [%.4f, %.4f, %.4f, %.4f]\n", rt.Orient[0], rt.Orient[1], rt.Orient[2], rt.Orient[3])
		fmt.Printf("config:      [%.0f, %.0f, %.0f, %.0f]\n", rt.Conf[0], rt.Conf[1], rt.Conf[2], rt.Conf[3])
		return nil
	},
}

var motionLeadThroughCmd = &cobra.Command{
	Use:   "lead-through <on|off>",
	Short: "Activate or deactivate lead-through mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var active bool
		switch args[0] {
		case "on":
			active = true
		case "off":
			active = false
		default:
			return fmt.Errorf("lead-through takes on or off, got %q", args[0])
		}

		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.LeadThrough(cmd.Context(), active); err != nil {
			return err
		}
		fmt.Printf("lead-through %s\n", args[0])
		return nil
	},
}

func init() {
	motionToolCmd.Flags().StringVar(&motionTool, "tool", "tool0", "tool name")
	motionToolCmd.Flags().StringVar(&motionWobj, "wobj", "wobj0", "work object name")
	motionCmd.AddCommand(motionJointsCmd, motionToolCmd, motionLeadThroughCmd)
	rootCmd.AddCommand(motionCmd)
}
