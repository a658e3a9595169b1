package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/ilkin0/mediagw/internal/config"
	"github.com/ilkin0/mediagw/internal/gallery"
	"github.com/ilkin0/mediagw/internal/storage"
	"github.com/skip2/go-qrcode"
	"golang.org/x/sync/errgroup"
)

var errUsage = errors.New("usage")

type app struct {
	cfg      config.Gallery
	client   *gallery.Client
	notifier gallery.Notifier
	in       *bufio.Reader
	out      io.Writer

	// replaced in tests
	clipboard gallery.Clipboard
	newMirror func(ctx context.Context) (gallery.Sink, error)
}

func newApp(cfg config.Gallery, httpClient *http.Client, in io.Reader, out io.Writer) *app {
	a := &app{
		cfg:       cfg,
		client:    gallery.NewClient(cfg.GatewayURL, httpClient),
		in:        bufio.NewReader(in),
		out:       out,
		clipboard: gallery.SystemClipboard{},
	}
	a.notifier = gallery.NotifierFunc(func(n gallery.Notice) {
		if n.Destructive {
			fmt.Fprintf(a.out, "! %s: %s\n", n.Title, n.Description)
			return
		}
		fmt.Fprintf(a.out, "%s: %s\n", n.Title, n.Description)
	})
	a.newMirror = func(ctx context.Context) (gallery.Sink, error) {
		mcfg, err := config.LoadMinIO()
		if err != nil {
			return nil, err
		}
		client, err := storage.NewMinIOClient(ctx, mcfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return a
}

func (a *app) gallery(placeholders bool) *gallery.Gallery {
	opts := []gallery.Option{
		gallery.WithNotifier(a.notifier),
		gallery.WithClipboard(a.clipboard),
	}
	if placeholders {
		opts = append(opts, gallery.WithPlaceholders(gallery.NewPlaceholderer(a.client, a.cfg.PlaceholderWorkers)))
	}
	return gallery.New(a.client, opts...)
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		return a.list(ctx, args)
	case "upload":
		return a.upload(ctx, args)
	case "copy":
		return a.copyLink(ctx, args)
	case "qr":
		return a.qr(ctx, args)
	case "download":
		return a.download(ctx, args)
	case "delete":
		return a.remove(ctx, args)
	case "mirror":
		return a.mirror(ctx, args)
	default:
		return errUsage
	}
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	placeholders := fs.Bool("placeholders", false, "compute blurred placeholders for images")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	g := a.gallery(*placeholders)
	if err := g.Refresh(ctx); err != nil {
		return err
	}

	items := g.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No files uploaded yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tSIZE\tURL")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.Name, item.ContentType, gallery.FormatMB(item.Size), item.URI)
		if item.Placeholder != "" {
			fmt.Fprintf(tw, "\tplaceholder\t%d chars\t\n", len(item.Placeholder))
		}
	}
	return tw.Flush()
}

func (a *app) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	category := fs.String("type", string(gallery.CategoryGeneral), "file category")
	compress := fs.Bool("compress", false, "compress the file (default: on for images)")
	level := fs.String("level", string(gallery.LevelMedium), "compression level: LOW, MEDIUM, HIGH")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	slot := gallery.NewUploadSlot(a.client, a.gallery(false), a.notifier)
	defer slot.Clear()

	if err := slot.Select(fs.Arg(0)); err != nil {
		return err
	}

	opts := slot.Options()
	c, err := gallery.ParseCategory(*category)
	if err != nil {
		return err
	}
	opts.Category = c
	l, err := gallery.ParseCompressionLevel(*level)
	if err != nil {
		return err
	}
	opts.Level = l
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "compress" {
			opts.Compress = *compress
		}
	})
	if err := slot.SetOptions(opts); err != nil {
		return err
	}

	fileURL, err := slot.Confirm(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, fileURL)
	return nil
}

// lookup refreshes the listing and finds name in it.
func (a *app) lookup(ctx context.Context, g *gallery.Gallery, name string) (gallery.FileDescriptor, error) {
	if err := g.Refresh(ctx); err != nil {
		return gallery.FileDescriptor{}, err
	}
	item, ok := g.Find(name)
	if !ok {
		return gallery.FileDescriptor{}, fmt.Errorf("file %q not found", name)
	}
	return item, nil
}

func (a *app) copyLink(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	g := a.gallery(false)
	item, err := a.lookup(ctx, g, args[0])
	if err != nil {
		return err
	}
	return g.CopyLink(item.Name, item.URI)
}

func (a *app) qr(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	item, err := a.lookup(ctx, a.gallery(false), args[0])
	if err != nil {
		return err
	}

	q, err := qrcode.New(item.URI, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("could not generate QR code: %w", err)
	}
	fmt.Fprintln(a.out, q.ToString(false))
	fmt.Fprintln(a.out, item.URI)
	return nil
}

func (a *app) download(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	dir := fs.String("o", a.cfg.DownloadDir, "output directory")
	toMinIO := fs.Bool("minio", false, "store into the configured MinIO bucket")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	var sink gallery.Sink = gallery.DirSink{Dir: *dir}
	if *toMinIO {
		s, err := a.newMirror(ctx)
		if err != nil {
			return err
		}
		sink = s
	}

	g := a.gallery(false)
	item, err := a.lookup(ctx, g, fs.Arg(0))
	if err != nil {
		return err
	}

	result, err := g.Download(ctx, item, sink)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\t%s\tsha256:%s\n", result.Location, gallery.HumanSize(result.Bytes), result.SHA256)
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	var confirmer gallery.Confirmer = gallery.ConfirmerFunc(a.prompt)
	if *yes {
		confirmer = gallery.ConfirmerFunc(func(context.Context, string) bool { return true })
	}

	err := a.gallery(false).Delete(ctx, fs.Arg(0), confirmer)
	if errors.Is(err, gallery.ErrDeleteCancelled) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	return err
}

func (a *app) prompt(_ context.Context, question string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", question)
	answer, err := a.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (a *app) mirror(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errUsage
	}

	sink, err := a.newMirror(ctx)
	if err != nil {
		return err
	}

	g := a.gallery(false)
	if err := g.Refresh(ctx); err != nil {
		return err
	}
	items := g.Items()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.cfg.PlaceholderWorkers)

	results := make([]gallery.DownloadResult, len(items))
	for i, item := range items {
		eg.Go(func() error {
			result, err := g.Download(egCtx, item, sink)
			if err != nil {
				return fmt.Errorf("mirror %s: %w", item.Name, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		fmt.Fprintf(a.out, "%s\tsha256:%s\n", r.Location, r.SHA256)
	}
	slog.Info("mirror complete", slog.Int("files", len(results)))
	return nil
}
