package cli

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/spf13/cobra"
)

// newAttachCommand creates the attach command for attaching files to a task.
func newAttachCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach <id> <file>...",
		Short: "Attach files to a task",
		Long: `Attach one or more files to a task.

Only the file metadata (name, type, size) is recorded. Files must be at most
5 MB and of a supported type: images (jpeg, png, gif, webp), pdf, word,
excel, zip or plain text. If any file is rejected, none are attached.

Examples:
  flowsync attach t-3f2a design.png notes.txt`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			files := make([]domain.FileUpload, 0, len(args)-1)
			for _, path := range args[1:] {
				f, err := statUpload(path)
				if err != nil {
					return err
				}
				files = append(files, f)
			}

			out, err := c.AttachFilesUseCase().Execute(cmd.Context(), usecase.AttachFilesInput{
				TaskID: args[0],
				Files:  files,
			})
			if err != nil {
				return err
			}

			for _, a := range out.Attachments {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Attached %s %s (%s)\n",
					domain.ShortID(a.ID), a.Name, domain.FormatSize(a.Size))
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}

	return cmd
}

// statUpload describes a local file for attachment.
func statUpload(path string) (domain.FileUpload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileUpload{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return domain.FileUpload{}, domain.NewValidationError("file "+path, "is a directory", nil)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.FileUpload{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	mediaType, err := detectMediaType(abs)
	if err != nil {
		return domain.FileUpload{}, err
	}
	return domain.FileUpload{
		Name: filepath.Base(path),
		Type: mediaType,
		URL:  "file://" + abs,
		Size: info.Size(),
	}, nil
}

// detectMediaType guesses the media type from the extension, falling back to
// sniffing the first bytes. Parameters such as charset are dropped.
func detectMediaType(path string) (string, error) {
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mediaType == "" {
		f, err := os.Open(path) //nolint:gosec // user-supplied path is the point
		if err != nil {
			return "", fmt.Errorf("open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		buf := make([]byte, 512)
		n, _ := f.Read(buf)
		mediaType = http.DetectContentType(buf[:n])
	}
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	return mediaType, nil
}

// newDetachCommand creates the detach command for removing an attachment.
func newDetachCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detach <id> <attachment-id>",
		Short: "Remove an attachment from a task",
		Long: `Remove one attachment from a task. The attachment ID may be shortened
to any unique prefix; 'flowsync show' lists them.

Examples:
  flowsync detach t-3f2a att-0c44`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.DetachFileUseCase().Execute(cmd.Context(), usecase.DetachFileInput{
				TaskID:       args[0],
				AttachmentID: args[1],
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from task %s\n", out.Attachment.Name, domain.ShortID(out.Task.ID))
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}

	return cmd
}
