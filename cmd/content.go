package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"content-store/core/config"
	"content-store/feature/content"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	getOutput string
	putURL    string
)

// getCmd streams stored content to stdout or a file.
var getCmd = &cobra.Command{
	Use:   "get [locator]",
	Short: "Download stored content",
	Long:  `Resolves the locator, fetches the object and writes its content to stdout or --output.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, store := bootstrap(cmd.Context())
		defer logg.Sync()

		return getContent(cmd.Context(), store, args[0], getOutput, cmd.OutOrStdout(), logg)
	},
}

// getContent copies the content behind locator to output, or to stdout when
// output is empty. The output file is only created for existing content.
func getContent(ctx context.Context, store *content.Store, locator, output string, stdout io.Writer, logg *zap.Logger) error {
	r, err := store.GetReader(ctx, locator)
	if err != nil {
		return err
	}
	defer r.Close()

	if !r.Exists() {
		return fmt.Errorf("%w: %s", content.ErrContentUnavailable, locator)
	}

	out := stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return r.WithStream(func(body io.Reader) error {
		n, err := io.Copy(out, body)
		logg.Debug("Content downloaded", zap.String("url", locator), zap.Int64("bytes", n))
		return err
	})
}

// putCmd uploads a local file as new or replacement content.
var putCmd = &cobra.Command{
	Use:   "put [file]",
	Short: "Upload a file as content",
	Long:  `Stages the file, uploads it and prints the locator it is stored under. Use --url to overwrite existing content.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, store := bootstrap(cmd.Context())
		defer logg.Sync()

		in, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer in.Close()

		w, err := putContent(cmd.Context(), store, in, putURL)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", w.Locator(), w.Size())
		return nil
	},
}

// putContent stages in and uploads it under locator, or under a new locator
// when locator is empty. A failed copy discards the staged content.
func putContent(ctx context.Context, store *content.Store, in io.Reader, locator string) (*content.Writer, error) {
	var existing *content.Reader
	if locator != "" {
		var err error
		if existing, err = store.GetReader(ctx, locator); err != nil {
			return nil, err
		}
		defer existing.Close()
	}

	w, err := store.GetWriter(ctx, existing, locator)
	if err != nil {
		return nil, err
	}
	stream, err := w.OpenWritableStream()
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(stream, in); err != nil {
		return nil, stream.CloseWithError(err)
	}
	if err := stream.Close(); err != nil {
		return nil, err
	}
	return w, nil
}

// deleteCmd removes stored content.
var deleteCmd = &cobra.Command{
	Use:   "delete [locator]",
	Short: "Delete stored content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, store := bootstrap(cmd.Context())
		defer logg.Sync()

		deleted, err := store.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted: %v\n", deleted)
		return nil
	},
}

// locatorCmd prints a new locator without touching storage.
var locatorCmd = &cobra.Command{
	Use:   "locator",
	Short: "Print a new content locator",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), content.NewLocator(cfg.Content.Protocol))
		return nil
	},
}

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "", "write content to this file instead of stdout")
	putCmd.Flags().StringVar(&putURL, "url", "", "existing locator to overwrite")

	RootCmd.AddCommand(getCmd, putCmd, deleteCmd, locatorCmd)
}
