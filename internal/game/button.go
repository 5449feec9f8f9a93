package game

import (
	"image/color"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/note-circles/internal/config"
)

var (
	buttonNormal  = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	buttonHovered = color.RGBA{R: 190, G: 110, B: 45, A: 255}
	buttonPressed = color.RGBA{R: 100, G: 50, B: 15, A: 255}
	buttonBorder  = color.RGBA{R: 240, G: 230, B: 200, A: 255}
)

// button is a clickable rectangle whose hover highlight eases in and out on
// a spring.
type button struct {
	label  string
	action func()

	x, y    int
	hovered bool
	pressed bool

	spring harmonica.Spring
	glow   float64
	vel    float64
}

func newButton(label string, action func()) *button {
	return &button{
		label:  label,
		action: action,
		spring: harmonica.NewSpring(harmonica.FPS(ebiten.DefaultTPS), 8, 0.9),
	}
}

func (b *button) place(x, y int) {
	b.x, b.y = x, y
}

func (b *button) contains(mx, my int) bool {
	return mx >= b.x && mx <= b.x+config.ButtonWidth &&
		my >= b.y && my <= b.y+config.ButtonHeight
}

// update tracks hover and press state and reports a completed click.
func (b *button) update(mx, my int, down, released bool) bool {
	b.hovered = b.contains(mx, my)
	target := 0.0
	if b.hovered {
		target = 1
	}
	b.glow, b.vel = b.spring.Update(b.glow, b.vel, target)

	if b.hovered && down {
		b.pressed = true
	}
	if released {
		clicked := b.pressed && b.hovered
		b.pressed = false
		return clicked
	}
	if !down {
		b.pressed = false
	}
	return false
}

func (b *button) draw(screen *ebiten.Image) {
	bg := lerpColor(buttonNormal, buttonHovered, clamp01(b.glow))
	if b.pressed {
		bg = buttonPressed
	}
	x, y := float32(b.x), float32(b.y)
	w, h := float32(config.ButtonWidth), float32(config.ButtonHeight)
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, 2, buttonBorder, true)

	textWidth := len(b.label) * 6 // debug font glyph width
	ebitenutil.DebugPrintAt(screen, b.label, b.x+(config.ButtonWidth-textWidth)/2, b.y+(config.ButtonHeight-16)/2)
}
