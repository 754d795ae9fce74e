package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"searchui/internal/upload"
)

func newUploadCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a .csv or .json document for indexing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := upload.Validate(filepath.Base(path)); err != nil {
				return err
			}
			e, err := setup(flags)
			if err != nil {
				return err
			}
			defer e.Close()

			resp, err := e.client.UploadFile(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), upload.SuccessNotice(resp))
			return nil
		},
	}
}
