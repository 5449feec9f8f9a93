package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/iburimskiy/note-circles/internal/config"
	"github.com/iburimskiy/note-circles/internal/media"
	"github.com/iburimskiy/note-circles/internal/playback"
	"github.com/iburimskiy/note-circles/internal/scene"
	"github.com/iburimskiy/note-circles/internal/spectrum"
	"github.com/ncruces/zenity"
)

// Loader turns file paths into playable tracks.
type Loader func(paths []string) []playback.Track

// Game is the ebiten frame loop: it applies control actions, runs the
// scene's per-frame pipeline and draws the result.
type Game struct {
	ctrl     *playback.Controller
	analyzer *spectrum.Analyzer
	scene    *scene.Scene
	load     Loader
	logger   *slog.Logger

	buttons []*button
	size    int

	// input edge detection
	prevKey map[ebiten.Key]bool

	lastErr error
}

// New wires a game around an existing controller and scene.
func New(ctrl *playback.Controller, analyzer *spectrum.Analyzer, sc *scene.Scene, load Loader, logger *slog.Logger) *Game {
	g := &Game{
		ctrl:     ctrl,
		analyzer: analyzer,
		scene:    sc,
		load:     load,
		logger:   logger,
		size:     int(sc.Size),
		prevKey:  map[ebiten.Key]bool{},
	}
	g.buttons = []*button{
		newButton("Prev", g.ctrl.Previous),
		newButton(playback.LabelPlay, g.ctrl.TogglePlay),
		newButton("Next", g.ctrl.Next),
		newButton("Add", g.addTracks),
	}
	g.placeButtons()
	return g
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	mouseX, mouseY := ebiten.CursorPosition()
	clicked := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	for _, b := range g.buttons {
		if b.update(mouseX, mouseY, pressed, clicked) {
			b.action()
		}
	}

	var (
		toggle = justPressed(ebiten.KeySpace)
		next   = justPressed(ebiten.KeyN)
		right  = justPressed(ebiten.KeyArrowRight)
		prev   = justPressed(ebiten.KeyP)
		left   = justPressed(ebiten.KeyArrowLeft)
		quit   = justPressed(ebiten.KeyEscape)
		q      = justPressed(ebiten.KeyQ)
	)
	if quit || q {
		return ebiten.Termination
	}
	if toggle {
		g.ctrl.TogglePlay()
	}
	if next || right {
		g.ctrl.Next()
	}
	if prev || left {
		g.ctrl.Previous()
	}
	g.buttons[1].label = g.ctrl.Label()

	g.scene.Tick(g.ctrl, g.analyzer)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(scene.Background)
	drawDots(screen, g.scene.Dots)
	drawLinks(screen, g.scene)
	for _, e := range g.scene.Elements {
		drawElement(screen, e)
	}
	for _, b := range g.buttons {
		b.draw(screen)
	}
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

func (g *Game) status() string {
	list := g.ctrl.Playlist()
	if list.Len() == 0 {
		status := "No tracks - click Add to open audio files"
		if g.lastErr != nil {
			status += " | Error: " + g.lastErr.Error()
		}
		return status
	}
	state := "Paused"
	if g.ctrl.Playing() {
		state = "Playing"
	}
	status := fmt.Sprintf("%s [%d/%d] %s - Space play/pause, N/P track, Q quit",
		state, list.Index()+1, list.Len(), list.Current().Title())
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

// Layout keeps a square canvas and re-lays the scene when its side changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := min(outsideWidth, outsideHeight)
	if size > 0 && size != g.size {
		g.size = size
		g.scene.Resize(float64(size))
		g.placeButtons()
	}
	return g.size, g.size
}

func (g *Game) placeButtons() {
	total := len(g.buttons)*config.ButtonWidth + (len(g.buttons)-1)*config.ButtonGap
	x := (g.size - total) / 2
	y := g.size - config.ButtonHeight - config.ButtonMargin
	for _, b := range g.buttons {
		b.place(x, y)
		x += config.ButtonWidth + config.ButtonGap
	}
}

func (g *Game) addTracks() {
	paths, err := zenity.SelectFileMultiple(
		zenity.Title("Add Audio Files"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: media.DialogPatterns(),
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			g.lastErr = err
			g.logger.Error("game: open dialog", "err", err)
		}
		return
	}

	paths, skipped, err := media.Collect(paths)
	if err != nil {
		g.lastErr = err
		return
	}
	tracks := g.load(paths)
	g.logger.Info("game: tracks added", "added", len(tracks), "skipped", skipped+len(paths)-len(tracks))
	if len(tracks) == 0 {
		g.lastErr = fmt.Errorf("could not load %d file(s)", len(paths))
		return
	}
	g.lastErr = nil
	g.ctrl.Append(tracks...)
}
