package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"mandelscope/hal"
	"mandelscope/internal/buildinfo"
	"mandelscope/viewer"
)

func main() {
	var cfg hal.HeadlessConfig
	var vcfg viewer.Config
	var width, height int
	var showVersion bool
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&width, "width", 512, "Render width in pixels.")
	flag.IntVar(&height, "height", 384, "Render height in pixels.")
	flag.IntVar(&vcfg.MaxIter, "iter", 0, "Initial iteration budget (0 = default).")
	flag.IntVar(&vcfg.Scheme, "scheme", 0, "Initial color scheme (0-4).")
	flag.Float64Var(&vcfg.Zoom, "zoom", 0, "Initial zoom level (0 = default).")
	flag.Float64Var(&vcfg.Offset, "offset", 0, "Initial horizontal center offset.")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit.")
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.Long())
		return
	}
	vcfg.LogPasses = cfg.Enabled

	newApp := func(h hal.HAL) func() error {
		return viewer.NewWithConfig(h, vcfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, width, height, cfg, newApp); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(width, height, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
