package cli

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Transfer files to and from the controller",
}

var fileUploadCmd = &cobra.Command{
	Use:   "upload <local> <dir/name>",
	Short: "Upload a local file to the controller file system",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		dir, name, err := splitRemotePath(args[1])
		if err != nil {
			return err
		}

		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.Client().UploadFile(cmd.Context(), dir, name, data); err != nil {
			return err
		}
		fmt.Printf("uploaded %s (%d bytes)\n", args[1], len(data))
		return nil
	},
}

var fileDownloadCmd = &cobra.Command{
	Use:   "download <dir/name> [local]",
	Short: "Download a file from the controller file system",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, name, err := splitRemotePath(args[0])
		if err != nil {
			return err
		}
		local := name
		if len(args) == 2 {
			local = args[1]
		}

		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		data, err := r.Client().DownloadFile(cmd.Context(), dir, name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(local, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("downloaded %s to %s (%d bytes)\n", args[0], local, len(data))
		return nil
	},
}

var fileRemoveCmd = &cobra.Command{
	Use:   "remove <dir/name>",
	Short: "Delete a file from the controller file system",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, name, err := splitRemotePath(args[0])
		if err != nil {
			return err
		}

		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		if err := r.Client().RemoveFile(cmd.Context(), dir, name); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

// splitRemotePath splits "dir/sub/name.ext" into its directory and file
// parts for the file service endpoints.
func splitRemotePath(p string) (dir, name string, err error) {
	p = strings.Trim(p, "/")
	dir, name = path.Split(p)
	dir = strings.Trim(dir, "/")
	if dir == "" || name == "" {
		return "", "", fmt.Errorf("remote path must be dir/name, got %q", p)
	}
	return dir, name, nil
}

func init() {
	fileCmd.AddCommand(fileUploadCmd, fileDownloadCmd, fileRemoveCmd)
	rootCmd.AddCommand(fileCmd)
}
