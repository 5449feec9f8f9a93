package game

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/note-circles/internal/config"
	"github.com/iburimskiy/note-circles/internal/scene"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

	linkColor   = color.NRGBA{R: 240, G: 230, B: 200, A: 180}
	outlineInk  = color.NRGBA{R: 0, G: 0, B: 0, A: 50}
	glowRings   = 5
	circlePoint = 50
)

func init() {
	whiteImage.Fill(color.White)
}

func drawDots(screen *ebiten.Image, dots []scene.Dot) {
	for _, d := range dots {
		vector.DrawFilledCircle(screen, float32(d.X), float32(d.Y), float32(d.Size/2),
			color.NRGBA{R: 255, G: 255, B: 255, A: d.Alpha}, true)
	}
}

func drawLinks(screen *ebiten.Image, sc *scene.Scene) {
	for _, l := range sc.Links {
		a, b := sc.Elements[l[0]], sc.Elements[l[1]]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 10, linkColor, true)
	}
}

// pen draws in a circle's local frame: origin at its centre, scaled and
// rotated by its animation state.
type pen struct {
	dst      *ebiten.Image
	ox, oy   float64
	scale    float64
	cos, sin float64
	rng      *rand.Rand
}

func (p *pen) pt(x, y float64) (float32, float32) {
	return float32(p.ox + p.scale*(x*p.cos-y*p.sin)),
		float32(p.oy + p.scale*(x*p.sin+y*p.cos))
}

func (p *pen) polar(r, angle float64) (float32, float32) {
	return p.pt(math.Cos(angle)*r, math.Sin(angle)*r)
}

func (p *pen) jitter(amount float64) float64 {
	return (p.rng.Float64()*2 - 1) * amount
}

// handDrawn traces a closed circle of radius r with a slightly wobbly edge.
func (p *pen) handDrawn(r, wobble float64) *vector.Path {
	var path vector.Path
	for i := 0; i < circlePoint; i++ {
		angle := 2 * math.Pi * float64(i) / float64(circlePoint)
		x, y := p.polar(r+p.jitter(r*wobble), angle)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()
	return &path
}

func (p *pen) fill(path *vector.Path, clr color.Color) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	p.draw(vs, is, clr)
}

func (p *pen) stroke(path *vector.Path, width float64, clr color.Color) {
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    float32(width * p.scale),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	p.draw(vs, is, clr)
}

func (p *pen) draw(vs []ebiten.Vertex, is []uint16, clr color.Color) {
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	p.dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	})
}

func (p *pen) disc(r float64, clr color.Color) {
	p.fill(p.handDrawn(r, 0.01), clr)
}

func (p *pen) ring(r, width float64, clr color.Color) {
	p.stroke(p.handDrawn(r, 0.01), width, clr)
}

func (p *pen) line(r0, r1, angle, width float64, clr color.Color) {
	var path vector.Path
	path.MoveTo(p.polar(r0, angle))
	path.LineTo(p.polar(r1, angle))
	p.stroke(&path, width, clr)
}

// blob is an irregular dot of the given size at polar (rOffset, angle).
func (p *pen) blob(rOffset, angle, size float64, clr color.Color) {
	cx, cy := math.Cos(angle)*rOffset, math.Sin(angle)*rOffset
	spin := p.rng.Float64() * 2 * math.Pi
	var path vector.Path
	const points = 8
	for i := 0; i < points; i++ {
		a := spin + 2*math.Pi*float64(i)/points
		r := size * 0.5 * (0.85 + p.rng.Float64()*0.3)
		x, y := p.pt(cx+math.Cos(a)*r, cy+math.Sin(a)*r)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()
	p.fill(&path, clr)
}

func drawElement(screen *ebiten.Image, e *scene.Element) {
	scale, rotation := e.Transform()
	p := &pen{
		dst:   screen,
		ox:    e.X,
		oy:    e.Y,
		scale: scale,
		cos:   math.Cos(rotation),
		sin:   math.Sin(rotation),
		// Reseeded every frame so each circle keeps the same wobble.
		rng: rand.New(rand.NewSource(e.Seed)),
	}

	if e.Note != nil && e.Glow() > config.GlowVisible {
		drawGlow(p, e)
	}
	p.disc(e.R*1.05, scene.Background)

	drawOuter(p, e)
	drawMiddle(p, e)
	drawInner(p, e)
}

// drawGlow layers translucent rings that fade outward.
func drawGlow(p *pen, e *scene.Element) {
	intensity := e.Glow()
	for i := glowRings; i > 0; i-- {
		alpha := intensity * 60 / float64(i)
		p.disc(e.R*(1.1+float64(i)*0.08), withAlpha(e.Note.Color, uint8(math.Min(alpha, 255))))
	}
}

func drawOuter(p *pen, e *scene.Element) {
	r := e.R
	p.disc(r, e.Fill[0])
	p.ring(r, 2, outlineInk)
	ink := e.Ink[0]

	switch e.Outer {
	case scene.OuterDots:
		spacing := r * 0.09
		for radius := r * 0.65; radius < r*0.95; radius += spacing {
			count := int(2 * math.Pi * radius / spacing)
			for i := 0; i < count; i++ {
				p.blob(radius, 2*math.Pi*float64(i)/float64(count), r*0.07, ink)
			}
		}
	case scene.OuterRays:
		const rays = 40
		for i := 0; i < rays; i++ {
			angle := 2*math.Pi*float64(i)/rays + p.jitter(0.05)
			p.line(r*0.6, r*0.95, angle, r*0.015, ink)
			p.blob(r*0.95, angle, r*0.03, ink)
		}
	case scene.OuterStripes:
		for _, radius := range []float64{r * 0.65, r * 0.9} {
			p.ring(radius, r*0.025*(0.8+p.rng.Float64()*0.4), ink)
		}
	case scene.OuterWave:
		base := r * 0.73
		var path vector.Path
		const points = 240
		for j := 0; j < points; j++ {
			angle := 2 * math.Pi * float64(j) / points
			radius := base + math.Sin(angle*60)*base*0.3 + p.jitter(r*0.005)
			x, y := p.polar(radius, angle)
			if j == 0 {
				path.MoveTo(x, y)
			} else {
				path.LineTo(x, y)
			}
		}
		path.Close()
		p.stroke(&path, r*0.025, ink)
	}
}

func drawMiddle(p *pen, e *scene.Element) {
	r := e.R
	p.disc(r*0.55, e.Fill[1])
	ink := e.Ink[1]

	switch e.Middle {
	case scene.MiddleDots:
		size := r * 0.04
		for radius := r * 0.2; radius < r*0.5; radius += size * 1.5 {
			count := int(2 * math.Pi * radius / (size * 1.5))
			for i := 0; i < count; i++ {
				p.blob(radius, 2*math.Pi*float64(i)/float64(count), size, ink)
			}
		}
	case scene.MiddleArcs:
		const arcs = 8
		for i := 0; i < arcs; i++ {
			angle := 2 * math.Pi * float64(i) / arcs
			cx, cy := math.Cos(angle)*r*0.35, math.Sin(angle)*r*0.35
			var path vector.Path
			for k := 0; k <= 12; k++ {
				a := angle - math.Pi/2 + math.Pi*float64(k)/12
				x, y := p.pt(cx+math.Cos(a)*r*0.075, cy+math.Sin(a)*r*0.075)
				if k == 0 {
					path.MoveTo(x, y)
				} else {
					path.LineTo(x, y)
				}
			}
			p.stroke(&path, r*0.02, ink)
		}
	case scene.MiddleSolid:
		p.disc(r*0.45, ink)
		p.disc(r*0.3, e.Ink[3])
	case scene.MiddleRings:
		const rings = 5
		for j := 0; j < rings; j++ {
			radius := r*0.3 + (r*0.2)*float64(j)/(rings-1)
			p.stroke(p.handDrawn(radius, 0.05), r*0.01*(0.8+p.rng.Float64()*0.4), ink)
		}
	}
}

func drawInner(p *pen, e *scene.Element) {
	r := e.R
	p.disc(r*0.25, e.Fill[2])
	ink := e.Ink[2]

	switch e.Inner {
	case scene.InnerBlob:
		p.blob(0, 0, r*0.15, ink)
	case scene.InnerSpiral:
		var path vector.Path
		const points = 50
		for i := 0; i < points; i++ {
			x, y := p.polar(r*0.2*float64(i)/points, float64(i)*0.4)
			if i == 0 {
				path.MoveTo(x, y)
			} else {
				path.LineTo(x, y)
			}
		}
		p.stroke(&path, r*0.015, ink)
	}
}
