// Command pinresolve resolves a pin URL from the terminal and optionally
// saves the media next to the working directory. With -mcp it serves the
// resolve tool over stdin/stdout instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"PinResolver/internal/app"
	"PinResolver/internal/config"
	"PinResolver/internal/domain"
	"PinResolver/internal/logging"
	"PinResolver/internal/transport/mcptool"
)

var (
	label   = color.New(color.FgCyan, color.Bold).SprintFunc()
	success = color.New(color.FgGreen).SprintFunc()
	failure = color.New(color.FgRed, color.Bold).SprintFunc()
)

func main() {
	_ = godotenv.Load()

	download := flag.Bool("download", false, "save the resolved media")
	outDir := flag.String("o", ".", "directory to save downloads into")
	serveMCP := flag.Bool("mcp", false, "serve the resolve_pin MCP tool over stdio")
	flag.Usage = func() {
		name := filepath.Base(os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-download] [-o dir] <pin-url>\n       %s -mcp\n", name, name)
		flag.PrintDefaults()
	}
	flag.Parse()
	if (*serveMCP && flag.NArg() != 0) || (!*serveMCP && flag.NArg() != 1) {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Load()
	logger := logging.NewCLI(os.Stderr, cfg.Logging.Level)
	application, err := app.New(cfg, logger)
	if err != nil {
		fail(err)
	}

	if *serveMCP {
		tool := mcptool.New(application.Resolver(), app.Version)
		if err := tool.ServeStdio(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			fail(err)
		}
		return
	}

	result, err := application.Resolver().Resolve(ctx, flag.Arg(0))
	if err != nil {
		fail(err)
	}
	printResult(result)

	if !*download {
		return
	}
	path, err := save(ctx, application, result, *outDir)
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s %s\n", success("saved"), path)
}

func printResult(r domain.ResolveResult) {
	rows := [][2]string{
		{"type", string(r.Type)},
		{"title", r.Title},
		{"author", r.Author},
		{"video", r.VideoURL},
		{"image", r.ImageURL},
		{"thumbnail", r.Thumbnail},
		{"style", r.Style},
		{"description", r.Description},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Println(formatRow(row[0], row[1]))
	}
}

// formatRow pads the name before coloring it so escape codes do not skew columns.
func formatRow(name, value string) string {
	return label(fmt.Sprintf("%-12s", name)) + " " + value
}

func save(ctx context.Context, application *app.Application, r domain.ResolveResult, dir string) (string, error) {
	asset, err := application.Downloader().Download(ctx, domain.DownloadRequest{
		URL:    r.PrimaryURL(),
		Title:  r.Title,
		Author: r.Author,
	})
	if err != nil {
		return "", err
	}
	defer asset.Body.Close()

	path := filepath.Join(dir, asset.Filename)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(f, asset.Body); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func fail(err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		fmt.Fprintf(os.Stderr, "%s %v\n", failure("invalid:"), err)
		os.Exit(2)
	case errors.Is(err, domain.ErrNotFound):
		fmt.Fprintf(os.Stderr, "%s no public video or image at this URL\n", failure("not found:"))
	default:
		fmt.Fprintf(os.Stderr, "%s %v\n", failure("error:"), err)
	}
	os.Exit(1)
}
