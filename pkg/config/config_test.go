package config

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/gwillem/rover/pkg/filesystem"
	"github.com/gwillem/rover/pkg/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config setup", t, func() {
		viper.Reset()

		Convey("works without a config file", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("populates defaults", func() {
			So(Setup(), ShouldBeNil)
			So(viper.GetDuration(ProbeTimeout), ShouldEqual, 1500*time.Millisecond)
			So(viper.GetDuration(DriveDebounce), ShouldEqual, 60*time.Millisecond)
			So(viper.GetDuration(ArmDebounce), ShouldEqual, 80*time.Millisecond)
			So(viper.GetInt(StreamPollFPS), ShouldEqual, 2)
			So(viper.GetString(RelayAddr), ShouldEqual, "127.0.0.1:8181")
		})

		Convey("reads rover.toml", func() {
			path := filepath.Join(where.Config(), "rover.toml")
			So(filesystem.API().WriteFile(path, []byte("[stream]\npoll_fps = 5\n"), 0o644), ShouldBeNil)
			defer filesystem.API().Remove(path)

			So(Setup(), ShouldBeNil)
			So(viper.GetInt(StreamPollFPS), ShouldEqual, 5)
		})

		Convey("env overrides defaults", func() {
			t.Setenv("ROVER_PING_INTERVAL", "10s")
			So(Setup(), ShouldBeNil)
			So(viper.GetDuration(PingInterval), ShouldEqual, 10*time.Second)
		})

		Convey("EnvKeyReplacer converts dots", func() {
			So(EnvKeyReplacer.Replace("relay.addr"), ShouldEqual, "relay_addr")
		})
	})
}
