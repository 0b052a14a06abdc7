package cmd

import (
	"fmt"
	"os"

	"github.com/habitboard/habitboard/internal/service"
	"github.com/spf13/cobra"
)

func ExportCmd() *cobra.Command {
	var (
		email   string
		format  string
		output  string
		archive bool
	)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's tracking history",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := userByEmail(a, email)
			if err != nil {
				return err
			}

			if archive {
				url, err := a.ExportService.Archive(cmd.Context(), user.ID, format)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), url)
				return nil
			}

			export, err := a.ExportService.Export(user.ID, format)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(export.Data)
				return err
			}
			if err := os.WriteFile(output, export.Data, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", output, len(export.Data))
			return nil
		},
	}

	exportCmd.Flags().StringVar(&email, "email", "", "user email")
	exportCmd.Flags().StringVar(&format, "format", service.ExportJSON, "json, yaml or csv")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&archive, "archive", false, "upload to object storage and print a download link")
	_ = exportCmd.MarkFlagRequired("email")

	return exportCmd
}
