package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gonotepad/internal/notes"
	"gonotepad/pkg/notetext"
)

const (
	flagOutput = "output"
	stdioPath  = "-"

	ErrCreateExport = "failed to create export file"
	ErrCloseExport  = "failed to close export file"
	ErrOpenImport   = "failed to open import file"
)

func (r *runner) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all notes to a text file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.session(cmd.Context(), false, func(ctx context.Context, svc *notes.Service) error {
				if output == stdioPath {
					return svc.Controller.Export(ctx, r.out)
				}
				return exportToFile(ctx, svc, output)
			})
		},
	}

	cmd.Flags().StringVarP(&output, flagOutput, "o", notetext.FileName, `destination file, "-" for stdout`)

	return cmd
}

func exportToFile(ctx context.Context, svc *notes.Service, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrCreateExport, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%s: %w", ErrCloseExport, closeErr)
		}
	}()

	return svc.Controller.Export(ctx, file)
}

func (r *runner) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all notes with the contents of an export file",
		Long: `import replaces the whole collection with the notes in <file>.
Notes get new ids. Nothing changes if the file holds no valid notes.
Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source io.Reader = r.in
			if args[0] != stdioPath {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("%s: %w", ErrOpenImport, err)
				}
				defer file.Close()
				source = file
			}

			return r.session(cmd.Context(), true, func(ctx context.Context, svc *notes.Service) error {
				_, err := svc.Controller.Import(ctx, source)
				return err
			})
		},
	}
}
