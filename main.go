package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coderr-web/config"
	"coderr-web/controller"
	"coderr-web/di"
	"coderr-web/logger"
	"coderr-web/models"
	"coderr-web/view"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		slog.Error("exiting with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck runs inside the container image and skips full initialization
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case CommandBrowse:
		logger.SetupDefault(os.Stderr)
		return runBrowse(ctx, w, args[1:])
	default:
		logger.SetupDefault(w)
		return runServe(ctx)
	}
}

func runServe(ctx context.Context) error {
	cfg := config.Load()
	slog.Info("starting application",
		slog.String("env", cfg.Env),
		slog.String("port", cfg.ServerPort),
		slog.String("api_base_url", cfg.APIBaseURL),
	)

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer container.Close()

	if warmed, err := container.CacheWarmerService.WarmCache(ctx); err != nil {
		slog.Warn("initial cache warm incomplete", slog.Int("warmed", warmed), slog.String("error", err.Error()))
	}
	container.CacheWarmerService.StartPeriodicJob(ctx, cfg.CacheWarmInterval)
	container.Registry.StartCleanup(ctx, cfg.SessionIdleTimeout/2)

	return container.HttpServer.Start(ctx)
}

// browseOptions are the flags of the browse subcommand.
type browseOptions struct {
	search          string
	page            int
	ordering        models.Ordering
	maxDeliveryTime string
	creds           models.Credentials
}

func parseBrowseFlags(args []string) (browseOptions, error) {
	var (
		opts     browseOptions
		ordering string
	)
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	fs.StringVar(&opts.search, "search", "", "search text")
	fs.IntVar(&opts.page, "page", 1, "page number")
	fs.StringVar(&ordering, "ordering", "", "ordering: -updated_at, updated_at, min_price or -min_price")
	fs.StringVar(&opts.maxDeliveryTime, "max-delivery-time", "", "maximum delivery time in days")
	fs.StringVar(&opts.creds.Token, "token", "", "API token")
	fs.IntVar(&opts.creds.UserID, "user", 0, "user id belonging to the token")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	var err error
	if opts.ordering, err = models.ParseOrdering(ordering); err != nil {
		return opts, err
	}
	if opts.maxDeliveryTime, err = models.ParseMaxDeliveryTime(opts.maxDeliveryTime); err != nil {
		return opts, err
	}
	if opts.creds.Empty() {
		opts.creds = models.Credentials{}
	}
	return opts, nil
}

// runBrowse drives one controller through the flags and prints the result.
func runBrowse(ctx context.Context, w io.Writer, args []string) error {
	opts, err := parseBrowseFlags(args)
	if err != nil {
		return err
	}

	cfg := config.Load()
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer container.Close()

	ctrl := controller.NewOfferListController(container.OfferService, opts.creds, nil)
	browseWith(ctx, ctrl, opts)

	v := view.BuildOfferListView(ctrl.Snapshot(), config.PAGE_SIZE)
	return view.NewTerminalRenderer().Render(w, v)
}

// browseWith applies opts in the order the page would. Failures end up in the
// controller state and are rendered.
func browseWith(ctx context.Context, ctrl *controller.OfferListController, opts browseOptions) {
	if err := ctrl.Initialize(ctx, opts.search); err != nil {
		return
	}
	if opts.ordering != models.OrderingNone {
		if err := ctrl.SetOrdering(ctx, opts.ordering); err != nil {
			return
		}
	}
	if opts.maxDeliveryTime != "" {
		_ = ctrl.SetPendingMaxDeliveryTime(opts.maxDeliveryTime)
		if err := ctrl.SetMaxDeliveryTime(ctx); err != nil {
			return
		}
	}
	if opts.page > 1 {
		_ = ctrl.GoToPage(ctx, opts.page)
	}
}

func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
