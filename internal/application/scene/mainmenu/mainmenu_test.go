package mainmenu

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/fg/internal/application/scene"
	"github.com/younwookim/fg/internal/domain/input"
)

type stubScene struct{}

func (s *stubScene) Update() (scene.Scene, error) { return nil, nil }
func (s *stubScene) Draw(*ebiten.Image)           {}
func (s *stubScene) OnEnter()                     {}
func (s *stubScene) OnExit()                      {}

func startStub(next scene.Scene) StartScene {
	return func() (scene.Scene, error) { return next, nil }
}

func TestMenu_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Menu)(nil)
}

// update runs one menu tick that must stay on the menu.
func update(t *testing.T, m *Menu) {
	t.Helper()
	next, err := m.Update()
	require.NoError(t, err)
	require.Nil(t, next)
}

func TestMenu_ConfirmsOnButtonRelease(t *testing.T) {
	local := &stubScene{}
	m := New(startStub(local), startStub(&stubScene{}))

	m.hist.PressButton(input.ButtonL)
	update(t, m)

	m.hist.ReleaseButton(input.ButtonL)
	next, err := m.Update()
	require.NoError(t, err)
	assert.Same(t, local, next, "releasing the light button confirms")
}

func TestMenu_NavigationMovesOnEdgesAndWraps(t *testing.T) {
	m := New(startStub(&stubScene{}), startStub(&stubScene{}))
	require.Equal(t, itemLocal, m.selected)

	m.hist.PressDirection(input.FlagDown)
	update(t, m)
	assert.Equal(t, itemOnline, m.selected)

	// Holding the direction does not keep scrolling.
	update(t, m)
	assert.Equal(t, itemOnline, m.selected)

	m.hist.ReleaseDirection(input.FlagDown)
	update(t, m)
	m.hist.PressDirection(input.FlagDown)
	update(t, m)
	assert.Equal(t, itemLocal, m.selected, "cursor wraps past the bottom")

	m.hist.ReleaseDirection(input.FlagDown)
	update(t, m)
	m.hist.PressDirection(input.FlagUp)
	update(t, m)
	assert.Equal(t, itemOnline, m.selected, "cursor wraps past the top")
}

func TestMenu_ConfirmRunsTheSelectedItem(t *testing.T) {
	local := &stubScene{}
	online := &stubScene{}
	m := New(startStub(local), startStub(online))

	m.hist.PressDirection(input.FlagDown)
	update(t, m)

	m.hist.PressButton(input.ButtonL)
	update(t, m)
	m.hist.ReleaseButton(input.ButtonL)
	next, err := m.Update()
	require.NoError(t, err)
	assert.Same(t, online, next)
}

func TestMenu_FailedStartKeepsTheMenu(t *testing.T) {
	m := New(startStub(&stubScene{}), func() (scene.Scene, error) {
		return nil, errors.New("bind: address already in use")
	})

	m.hist.PressDirection(input.FlagDown)
	update(t, m)

	m.hist.PressButton(input.ButtonL)
	update(t, m)
	m.hist.ReleaseButton(input.ButtonL)
	next, err := m.Update()
	require.NoError(t, err, "a failed start is not a scene error")
	assert.Nil(t, next, "the menu stays up")
}

func TestMenu_OnEnterIgnoresHeldButton(t *testing.T) {
	m := New(startStub(&stubScene{}), startStub(&stubScene{}))

	m.hist.PressButton(input.ButtonL)
	update(t, m)

	m.OnEnter()
	update(t, m)
}
