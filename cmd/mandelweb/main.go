// Command mandelweb serves the progressive renderer over HTTP: an inline
// page plus one websocket session per browser tab.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"mandelscope/internal/buildinfo"
	"mandelscope/web"
)

func main() {
	var opts web.Options
	var showVersion bool
	flag.StringVar(&opts.Addr, "addr", ":8080", "Listen address.")
	flag.IntVar(&opts.Width, "width", 768, "Render width in pixels.")
	flag.IntVar(&opts.Height, "height", 512, "Render height in pixels.")
	flag.IntVar(&opts.FPS, "fps", 30, "Render steps per second per connection.")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit.")
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.Long())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := web.Run(ctx, opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
