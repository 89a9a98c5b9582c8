package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Read and write I/O signals",
}

var signalGetCmd = &cobra.Command{
	Use:   "get <network/device/signal>",
	Short: "Read one I/O signal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		sig, err := r.Client().Signal(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s) = %s [%s]\n", sig.Name, sig.Type, formatValue(sig.Value), sig.Quality)
		return nil
	},
}

var signalSetCmd = &cobra.Command{
	Use:   "set <network/device/signal> <value>",
	Short: "Write one I/O signal (digital signals take 0 or 1)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid signal value %q", args[1])
		}

		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.Client().SetSignal(cmd.Context(), args[0], value); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", args[0], formatValue(value))
		return nil
	},
}

var signalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every signal in the I/O system",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		signals, err := r.Client().Signals(cmd.Context())
		if err != nil {
			return err
		}
		for _, sig := range signals {
			fmt.Printf("%-32s %-3s %s\n", sig.Path, sig.Type, formatValue(sig.Value))
		}
		return nil
	},
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func init() {
	signalCmd.AddCommand(signalGetCmd, signalSetCmd, signalListCmd)
	rootCmd.AddCommand(signalCmd)
}
