// Package versus runs a local match with both players on one
// keyboard. It can record the raw input streams to a replay file or
// play a recorded match back instead of polling the keyboard.
package versus

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/fg/internal/application/replay"
	"github.com/younwookim/fg/internal/application/scene"
	"github.com/younwookim/fg/internal/application/scene/gameplay"
	"github.com/younwookim/fg/internal/application/state"
	"github.com/younwookim/fg/internal/application/system"
	"github.com/younwookim/fg/internal/domain/input"
	"github.com/younwookim/fg/internal/infrastructure/config"
)

// Versus is the local play scene.
type Versus struct {
	menu scene.Scene

	session gameplay.Session
	game    state.GameState
	p1Hist  *input.History
	p2Hist  *input.History
	p1Keys  system.Keyboard
	p2Keys  system.Keyboard

	recorder   *replay.Recorder
	recordPath string
	replayer   *replay.Replayer
}

// New creates a local match from the loaded config. menu is returned
// to when the match ends. If recordPath is not empty the match's
// inputs are recorded there; if replayer is not nil it drives both
// players instead of the keyboard.
func New(match *config.Match, menu scene.Scene, recordPath string, replayer *replay.Replayer) *Versus {
	v := &Versus{
		menu:       menu,
		session:    gameplay.NewSession(match.P1, match.P2, match.Stage),
		game:       state.New(match.P1, match.P2),
		p1Hist:     input.NewHistory(0),
		p2Hist:     input.NewHistory(0),
		p1Keys:     system.NewKeyboard(system.Player1Keys()),
		p2Keys:     system.NewKeyboard(system.Player2Keys()),
		recordPath: recordPath,
		replayer:   replayer,
	}

	if recordPath != "" {
		v.recorder = replay.NewRecorder(match.Game.Version)
		logrus.WithField("path", recordPath).Info("recording inputs")
	}
	return v
}

// Update advances the match one tick.
func (v *Versus) Update() (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return v.menu, nil
	}

	if done := v.advanceInputs(); done {
		return v.menu, nil
	}

	v.game.P1Inputs.Update(v.p1Hist.Parse())
	v.game.P2Inputs.Update(v.p2Hist.Parse())
	v.session.Tick(&v.game)

	if v.session.Phase() == gameplay.PhaseExit {
		if winner, ok := v.session.Winner(); ok {
			logrus.WithField("winner", winner).Info("match over")
		}
		return v.menu, nil
	}
	return nil, nil
}

// advanceInputs feeds this tick's raw inputs into both histories and
// reports whether a replay ran out.
func (v *Versus) advanceInputs() bool {
	if v.replayer != nil {
		if !v.replayer.Advance(v.p1Hist, v.p2Hist) {
			logrus.Info("replay finished")
			return true
		}
		return false
	}

	v.p1Keys.Poll(v.p1Hist)
	v.p2Keys.Poll(v.p2Hist)
	v.p1Hist.Update()
	v.p2Hist.Update()

	if v.recorder != nil {
		v.recorder.Capture(v.p1Hist, v.p2Hist)
	}
	return false
}

// Draw renders the fight.
func (v *Versus) Draw(screen *ebiten.Image) {
	v.session.Draw(screen, &v.game)

	if v.replayer != nil {
		text := fmt.Sprintf("REPLAY %d/%d", v.replayer.CurrentFrame(), v.replayer.TotalFrames())
		ebitenutil.DebugPrintAt(screen, text, 8, 32)
		return
	}
	ebitenutil.DebugPrintAt(screen, "TAB: boxes  ESC: menu", 8, 32)
}

// OnEnter is called when entering this scene.
func (v *Versus) OnEnter() {
	// Already initialized in New.
}

// OnExit saves the recording if one was made.
func (v *Versus) OnExit() {
	v.saveRecording()
}

func (v *Versus) saveRecording() {
	if v.recorder == nil {
		return
	}

	if err := v.recorder.Save(v.recordPath); err != nil {
		logrus.WithError(err).Error("failed to save recording")
		return
	}
	logrus.WithFields(logrus.Fields{
		"path":   v.recordPath,
		"frames": v.recorder.FrameCount(),
	}).Info("recording saved")
}
