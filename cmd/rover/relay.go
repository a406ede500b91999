package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"github.com/gwillem/rover/pkg/config"
	"github.com/gwillem/rover/pkg/rover"
	"github.com/gwillem/rover/pkg/stream"
)

type RelayCommand struct {
	Addr string `long:"addr" description:"Listen address (default: config relay.addr)"`
	FPS  int    `long:"fps" description:"Snapshot polling rate (default: config stream.poll_fps)"`
	Args struct {
		URL string `positional-arg-name:"URL" description:"Camera address (default: saved camera)"`
	} `positional-args:"yes"`
}

func (c *RelayCommand) Execute(args []string) error {
	raw := c.Args.URL
	if raw == "" {
		settings, err := rover.OpenStore().Load()
		if err != nil {
			return err
		}
		raw = settings.StreamURL
	}
	if stream.Normalize(raw) == "" {
		fmt.Fprintln(os.Stderr, "No camera configured. Run 'rover setup' or pass a URL.")
		os.Exit(1)
	}

	addr := c.Addr
	if addr == "" {
		addr = viper.GetString(config.RelayAddr)
	}
	fps := c.FPS
	if fps <= 0 {
		fps = viper.GetInt(config.StreamPollFPS)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	relay := stream.NewRelay()
	player := stream.NewPlayer(stream.PlayerConfig{
		Resolver: newResolver(fps),
		Display:  relay,
		FPS:      fps,
		OnError: func(err error) {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Stream error: ")+err.Error())
		},
	})
	defer player.Stop()

	fmt.Printf("Probing %s...\n", stream.Normalize(raw))
	src, ok := player.Start(ctx, raw)
	if !ok {
		return ctx.Err()
	}
	fmt.Println(renderSource(src))
	fmt.Println()
	fmt.Println("Viewer at " + headerStyle.Render("http://"+addr) + dimStyle.Render("  (Ctrl-C to stop)"))

	return relay.ListenAndServe(ctx, addr)
}
