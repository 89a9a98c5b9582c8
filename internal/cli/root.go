// Package cli implements the rws command-line tool.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/PurpleSec/logx"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/s3904419/go-rws/robot"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagHost     string
	flagPort     int
	flagTLS      bool
	flagInsecure bool
	flagUser     string
	flagPass     string
	flagDigest   bool
	flagTask     string
	flagMechUnit string
	flagTimeout  time.Duration
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "rws",
	Short: "Command an ABB robot controller over Robot Web Services",
	Long: `rws talks to the web server of an ABB robot controller (IRC5 or
OmniCore) and exposes its Robot Web Services API: I/O signals, RAPID
variables and execution, panel state, mastership, files and event
subscriptions.

Password can be provided via:
  - --pass flag (least secure, visible in process list)
  - RWS_PASSWORD environment variable (recommended)
  - stdin prompt (when --user is set and neither flag nor env var is)

Without --user the vendor default account "Default User"/"robotics" is
used, which matches a freshly installed system or virtual controller.

Example:
  rws --host 192.168.125.1 signal get Local/DRV_1/DO1
  rws --host 192.168.125.1 rapid start --resetpp
  rws --host 192.168.125.1 console`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("rws version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagHost, "host", "127.0.0.1", "controller hostname or IP")
	pf.IntVar(&flagPort, "port", 0, "controller web server port (default: 80 for HTTP, 443 for HTTPS)")
	pf.BoolVar(&flagTLS, "tls", false, "use HTTPS")
	pf.BoolVar(&flagInsecure, "insecure", false, "skip TLS certificate verification (controllers use self-signed certificates)")
	pf.StringVar(&flagUser, "user", "", "UAS username (default: the vendor default account)")
	pf.StringVar(&flagPass, "pass", "", "password (use RWS_PASSWORD env var instead)")
	pf.BoolVar(&flagDigest, "digest", false, "use Digest authentication (RobotWare 6 / RWS 1.x controllers)")
	pf.StringVar(&flagTask, "task", "T_ROB1", "RAPID task for variable operations")
	pf.StringVar(&flagMechUnit, "mechunit", "ROB_1", "mechanical unit for motion queries")
	pf.DurationVar(&flagTimeout, "timeout", 30*time.Second, "per-request timeout")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log requests and operations")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// connect builds a Robot from the global flags and opens the controller
// session. Callers own the returned Robot and must Close it.
func connect(cmd *cobra.Command) (*robot.Robot, error) {
	cfg := robot.DefaultConfig()
	cfg.Port = flagPort
	cfg.UseTLS = flagTLS
	cfg.InsecureSkipVerify = flagInsecure
	cfg.Timeout = flagTimeout
	cfg.Task = flagTask
	cfg.MechUnit = flagMechUnit
	if flagDigest {
		cfg.AuthType = robot.AuthDigest
	}
	if flagVerbose {
		cfg.Log = logx.Console(logx.Debug)
	}

	if err := applyCredentials(&cfg); err != nil {
		return nil, err
	}

	r, err := robot.New(flagHost, cfg)
	if err != nil {
		return nil, err
	}
	if err := r.Connect(cmd.Context()); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", r.Endpoint(), err)
	}
	return r, nil
}

// applyCredentials fills cfg from the flags and the environment. The
// password is sourced from --pass, then RWS_PASSWORD, then an interactive
// prompt; the prompt only fires when a username was given explicitly, since
// the vendor default account keeps its well-known password.
func applyCredentials(cfg *robot.Config) error {
	if flagUser != "" {
		cfg.Username = flagUser
	}
	if flagPass != "" {
		cfg.Password = flagPass
		return nil
	}
	if env := os.Getenv("RWS_PASSWORD"); env != "" {
		cfg.Password = env
		return nil
	}
	if flagUser == "" {
		return nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	cfg.Password = string(pass)
	return nil
}
