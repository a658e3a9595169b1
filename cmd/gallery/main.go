package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilkin0/mediagw/internal/config"
	"github.com/ilkin0/mediagw/internal/logger"
	"github.com/joho/godotenv"
)

const usage = `usage: gallery <command> [flags] [args]

commands:
  list      [-placeholders]                      show stored files
  upload    [-type T] [-compress] [-level L] <file>
  copy      <name>                               copy a file link to the clipboard
  qr        <name>                               print a file link as a QR code
  download  [-o dir | -minio] <name>             save a file locally or into MinIO
  delete    [-yes] <name>                        delete a file
  mirror                                         copy every listed file into MinIO
`

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadGallery()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(logger.Init(cfg.Env, cfg.LogLevel))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(cfg, &http.Client{Timeout: 5 * time.Minute}, os.Stdin, os.Stdout)

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
