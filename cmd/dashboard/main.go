package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/dashboard"
)

// flagKeys binds command-line flags to the config keys they override.
var flagKeys = map[string]string{
	"proxy-url":     "dashboard.proxy_url",
	"city":          "dashboard.default_city",
	"lat":           "dashboard.latitude",
	"lon":           "dashboard.longitude",
	"fetch-timeout": "dashboard.fetch_timeout",
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
	fs.String("proxy-url", "", "weather proxy base URL (default from config)")
	fs.String("city", "", "city shown when no position is available")
	fs.Float64("lat", 0, "device latitude; with --lon enables coordinate lookup")
	fs.Float64("lon", 0, "device longitude")
	fs.String("fetch-timeout", "", "per-request timeout, e.g. 10s (0 disables)")
	fs.Bool("clear", true, "redraw the screen in place")
	return fs
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	fs := newFlagSet()
	fs.SetOutput(out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	for name, key := range flagKeys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	redraw, _ := fs.GetBool("clear")

	logger := config.GetLogger()
	lat, lon, located := config.GetDashboardPosition()
	proxyURL := config.GetDashboardProxyURL()

	dash := dashboard.New(dashboard.Options{
		Fetcher:      dashboard.NewProxyClient(proxyURL, &http.Client{}),
		Locator:      dashboard.NewLocator(lat, lon, located),
		Clock:        dashboard.NewCronClock(0),
		Renderer:     dashboard.NewTextRenderer(out, redraw),
		Logger:       logger,
		DefaultCity:  config.GetDashboardDefaultCity(),
		FetchTimeout: config.GetDashboardFetchTimeout(),
	})
	logger.Infow("Dashboard starting", "proxy", proxyURL, "located", located)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Each input line is a search; end of input quits.
	go func() {
		defer cancel()
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			dash.Search(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			logger.Warnw("Reading input failed", "error", err)
		}
	}()

	err := dash.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		config.GetLogger().Errorw("Dashboard failed", "error", err)
		os.Exit(1)
	}
}
