package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/streamworks/streamctl/streaming"
)

// uploadConcurrency limits parallel uploads so a batch doesn't saturate
// the link
const uploadConcurrency = 3

var (
	publishTitle       string
	publishDescription string
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload FILE...",
	Short: "Upload video files (admin)",
	Long: `Upload one or more video files and print the server-assigned path of
each. Multiple files are uploaded concurrently.

The returned paths can be passed to streamctl add.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish FILE",
	Short: "Upload a video and add it to the catalog (admin)",
	Long: `Upload a video file and register it as a content item in one step.

The upload runs first; the content item is only created once the server
has assigned a media path.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringVarP(&publishTitle, "title", "t", "", "content title (defaults to the file name)")
	publishCmd.Flags().StringVarP(&publishDescription, "description", "d", "", "content description")
}

// uploadFile streams one file to the server and returns its assigned path
func uploadFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	filePath, err := client.UploadVideo(ctx, f, filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %s", path, streaming.Message(err))
	}
	return filePath, nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	var mu sync.Mutex
	results := make(map[string]string, len(args))

	for _, path := range args {
		g.Go(func() error {
			filePath, err := uploadFile(ctx, path)
			if err != nil {
				return err
			}
			mu.Lock()
			results[path] = filePath
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, path := range args {
		fmt.Printf("%s -> %s\n", path, results[path])
	}
	return nil
}

func runPublish(cmd *cobra.Command, args []string) error {
	path := args[0]

	title := publishTitle
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}

	ctx := context.Background()

	// The content item references the server-assigned media path, so the
	// upload has to complete before add_content is issued.
	filePath, err := uploadFile(ctx, path)
	if err != nil {
		return err
	}
	logger.Info().Str("file_path", filePath).Msg("Upload complete")

	if err := client.AddContent(ctx, title, publishDescription, filePath); err != nil {
		return fmt.Errorf("uploaded to %s but failed to add content: %s", filePath, streaming.Message(err))
	}

	fmt.Printf("Published %q (%s)\n", title, filePath)
	return nil
}
