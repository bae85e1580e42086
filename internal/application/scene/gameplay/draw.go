package gameplay

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/fg/internal/application/state"
	"github.com/younwookim/fg/internal/domain/character"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorGround   = color.RGBA{40, 40, 60, 255}
	colorWall     = color.RGBA{80, 80, 100, 255}
	colorP1       = color.RGBA{100, 200, 100, 255}
	colorP2       = color.RGBA{100, 140, 220, 255}
	colorHitBox   = color.RGBA{200, 50, 50, 128}
	colorHurtBox  = color.RGBA{50, 200, 50, 128}
	colorPushBox  = color.RGBA{255, 255, 255, 128}
	colorHealthBG = color.RGBA{200, 50, 50, 255}
	colorHealthFG = color.RGBA{100, 200, 100, 255}
	colorScoreBox = color.RGBA{0, 0, 0, 255}
	colorScorePip = color.RGBA{255, 255, 255, 255}
)

// camera maps world space onto the screen. The world origin is the
// stage center at floor level, y grows upward, and the floor line
// sits at 90% of the screen height.
type camera struct {
	w, h float64
}

func newCamera(screen *ebiten.Image) camera {
	b := screen.Bounds()
	return camera{w: float64(b.Dx()), h: float64(b.Dy())}
}

func (c camera) x(worldX float64) float64 { return c.w/2 + worldX }
func (c camera) y(worldY float64) float64 { return c.h*0.9 - worldY }

// fillRect draws a center-based world rect.
func (c camera) fillRect(screen *ebiten.Image, r character.Rect, clr color.Color) {
	ebitenutil.DrawRect(screen, c.x(r.X-r.W/2), c.y(r.Y+r.H/2), r.W, r.H, clr)
}

// Draw renders the fight: the stage, both characters as flat boxes,
// the HUD and the round-start countdown. Hold Tab to see the hit,
// hurt and push boxes.
func (s *Session) Draw(screen *ebiten.Image, g *state.GameState) {
	screen.Fill(colorBG)
	cam := newCamera(screen)

	s.drawStage(screen, cam)
	drawPlayer(screen, cam, &g.P1, s.p1, colorP1)
	drawPlayer(screen, cam, &g.P2, s.p2, colorP2)
	if ebiten.IsKeyPressed(ebiten.KeyTab) {
		drawBoxes(screen, cam, &g.P1, s.p1)
		drawBoxes(screen, cam, &g.P2, s.p2)
	}

	s.drawHealthBars(screen, cam, g)
	s.drawScores(screen, cam)
	s.drawTimer(screen, cam)

	if s.phase == PhaseRoundStart {
		s.drawCountdown(screen, cam)
	}
}

func (s *Session) drawStage(screen *ebiten.Image, cam camera) {
	floorY := cam.y(0)
	ebitenutil.DrawRect(screen, 0, floorY, cam.w, cam.h-floorY, colorGround)

	// Stage walls
	half := s.stg.Width() / 2
	ebitenutil.DrawRect(screen, cam.x(-half)-2, 0, 2, floorY, colorWall)
	ebitenutil.DrawRect(screen, cam.x(half), 0, 2, floorY, colorWall)
}

// drawPlayer draws the character body as its push box.
func drawPlayer(screen *ebiten.Image, cam camera, st *character.State, ctx *character.Context, clr color.Color) {
	box := st.GetCollisionBox(ctx).OnSide(st.Side()).At(st.Pos())
	cam.fillRect(screen, box, clr)
}

func drawBoxes(screen *ebiten.Image, cam camera, st *character.State, ctx *character.Context) {
	side, pos := st.Side(), st.Pos()
	for _, hurt := range st.GetHurtBoxes(ctx) {
		cam.fillRect(screen, hurt.OnSide(side).At(pos), colorHurtBox)
	}
	for _, hb := range st.GetHitBoxes(ctx) {
		cam.fillRect(screen, hb.Rect.OnSide(side).At(pos), colorHitBox)
	}
	cam.fillRect(screen, st.GetCollisionBox(ctx).OnSide(side).At(pos), colorPushBox)
}

// drawHealthBars draws both bars along the top edge. They drain
// toward the screen edges, on a curve that makes early hits read
// bigger than they are.
func (s *Session) drawHealthBars(screen *ebiten.Image, cam camera, g *state.GameState) {
	barH := cam.h / 20
	barW := cam.w * 0.4

	hp1 := healthBarWidth(g.P1.HPPercent(s.p1), barW)
	ebitenutil.DrawRect(screen, 0, 0, barW, barH, colorHealthBG)
	ebitenutil.DrawRect(screen, barW-hp1, 0, hp1, barH, colorHealthFG)

	hp2 := healthBarWidth(g.P2.HPPercent(s.p2), barW)
	ebitenutil.DrawRect(screen, cam.w-barW, 0, barW, barH, colorHealthBG)
	ebitenutil.DrawRect(screen, cam.w-barW, 0, hp2, barH, colorHealthFG)
}

func healthBarWidth(hpPercent, barW float64) float64 {
	return math.Pow(hpPercent, 1.4) * barW
}

// drawScores draws one pip per round to win beside the timer, filling
// them inward as rounds are taken.
func (s *Session) drawScores(screen *ebiten.Image, cam camera) {
	y := cam.h / 15
	w := cam.w / 40
	h := cam.h / 22.5

	p1X := cam.w*0.5 - w*float64(2*ScoreToWin+3)
	p2X := cam.w*0.5 + w*4
	for i := 0; i < ScoreToWin; i++ {
		x := p1X + 2*float64(i)*w
		drawScorePip(screen, x, y, w, h, s.p1Score > i)

		x = p2X + 2*float64(i)*w
		drawScorePip(screen, x, y, w, h, s.p2Score >= ScoreToWin-i)
	}
}

func drawScorePip(screen *ebiten.Image, x, y, w, h float64, filled bool) {
	ebitenutil.DrawRect(screen, x, y, w, h, colorScoreBox)
	if filled {
		ebitenutil.DrawRect(screen, x+w*0.2, y+h*0.2, w*0.6, h*0.6, colorScorePip)
	}
}

func (s *Session) drawTimer(screen *ebiten.Image, cam camera) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%02d", s.TimeLeftSeconds()), int(cam.w/2)-6, 8)
}

// drawCountdown shows the round number for the first two seconds of
// the countdown and FIGHT for the last one.
func (s *Session) drawCountdown(screen *ebiten.Image, cam camera) {
	elapsed := PauseDuration - s.timer

	text := "FIGHT!"
	if elapsed < 2*framesPerSecond {
		round := s.p1Score + s.p2Score
		if round > ScoreToWin {
			round = ScoreToWin
		}
		text = fmt.Sprintf("ROUND %d", round+1)
	}
	ebitenutil.DebugPrintAt(screen, text, int(cam.w/2)-len(text)*3, int(cam.h/2)-20)
}
