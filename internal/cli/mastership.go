package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mastershipCmd = &cobra.Command{
	Use:   "mastership",
	Short: "Request and release controller mastership",
}

var mastershipRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Take explicit mastership for this session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.Client().RequestMastership(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("mastership granted")
		return nil
	},
}

var mastershipReleaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Release explicit mastership",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.Client().ReleaseMastership(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("mastership released")
		return nil
	},
}

var rmmpCmd = &cobra.Command{
	Use:   "rmmp",
	Short: "Request or cancel manual mode privileges",
}

var rmmpPrivilege string

var rmmpRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Request manual mode privileges (operator must confirm)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.Client().RequestRMMP(cmd.Context(), rmmpPrivilege); err != nil {
			return err
		}
		fmt.Println("manual mode privileges requested")
		return nil
	},
}

var rmmpCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a manual mode privilege request",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.Client().CancelRMMP(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("manual mode privilege request cancelled")
		return nil
	},
}

func init() {
	rmmpRequestCmd.Flags().StringVar(&rmmpPrivilege, "privilege", "modify", "privilege to request (modify or exec)")
	rmmpCmd.AddCommand(rmmpRequestCmd, rmmpCancelCmd)
	mastershipCmd.AddCommand(mastershipRequestCmd, mastershipReleaseCmd)
	rootCmd.AddCommand(mastershipCmd, rmmpCmd)
}
