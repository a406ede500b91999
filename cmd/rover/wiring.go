package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/gwillem/rover/pkg/config"
	"github.com/gwillem/rover/pkg/rover"
	"github.com/gwillem/rover/pkg/stream"
)

// DeviceOptions selects the robot for one-shot commands.
type DeviceOptions struct {
	Base string `long:"base" short:"b" description:"Robot base URL (default: saved setting)"`
}

// client builds a device client from the flag or the saved base URL.
func (o DeviceOptions) client(store *rover.Store) *rover.Client {
	base := o.Base
	if base == "" {
		settings, err := store.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading settings: %v\n", err)
			os.Exit(1)
		}
		base = settings.BaseURL
	}
	if rover.NormalizeURL(base) == "" {
		fmt.Fprintln(os.Stderr, "No robot configured. Run 'rover setup' or pass --base.")
		os.Exit(1)
	}
	return newDeviceClient(base)
}

func newDeviceClient(base string) *rover.Client {
	return rover.NewClient(rover.ClientConfig{
		BaseURL:     base,
		PingTimeout: viper.GetDuration(config.PingTimeout),
	})
}

func newResolver(fps int) *stream.Resolver {
	if fps <= 0 {
		fps = viper.GetInt(config.StreamPollFPS)
	}
	return stream.NewResolver(stream.ResolverConfig{
		ProbeTimeout: viper.GetDuration(config.ProbeTimeout),
		FPS:          fps,
	})
}
