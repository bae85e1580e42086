package main

import (
	"errors"
	"flag"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/fg/internal/application/game"
	"github.com/younwookim/fg/internal/application/replay"
	"github.com/younwookim/fg/internal/application/scene"
	"github.com/younwookim/fg/internal/application/scene/mainmenu"
	"github.com/younwookim/fg/internal/application/scene/online"
	"github.com/younwookim/fg/internal/application/scene/versus"
	"github.com/younwookim/fg/internal/infrastructure/config"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

func main() {
	configDir := flag.String("config", "", "load configs from this directory instead of the embedded ones")
	record := flag.String("record", "", "record local match inputs to this file")
	replayPath := flag.String("replay", "", "play a recorded match back instead of polling the keyboard")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	loader, err := newLoader(*configDir)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open config directory")
	}
	match, err := loader.LoadMatch()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configs")
	}

	recordPath := *record
	replayer := loadReplayer(*replayPath, match.Game.Version)
	if replayer != nil && recordPath != "" {
		logrus.Warn("ignoring -record while playing a replay")
		recordPath = ""
	}

	var menu *mainmenu.Menu
	menu = mainmenu.New(
		func() (scene.Scene, error) {
			if replayer != nil {
				replayer.Reset()
			}
			return versus.New(match, menu, recordPath, replayer), nil
		},
		func() (scene.Scene, error) {
			return online.NewMatching(match, menu)
		},
	)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Fighter")
	ebiten.SetTPS(game.TicksPerSecond)

	err = ebiten.RunGame(game.New(menu, screenWidth, screenHeight))
	if err != nil && !errors.Is(err, ebiten.Termination) {
		logrus.WithError(err).Fatal("game stopped")
	}
}

// newLoader picks the embedded configs unless a directory override is
// given.
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func loadReplayer(path, version string) *replay.Replayer {
	if path == "" {
		return nil
	}
	data, err := replay.LoadData(path)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load replay")
	}
	if data.Version != version {
		logrus.WithFields(logrus.Fields{
			"replay": data.Version,
			"game":   version,
		}).Warn("replay was recorded on a different game version")
	}
	return replay.NewReplayer(data)
}
