package mandel

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"sync"
	"time"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	textlang "golang.org/x/text/language"
	"golang.org/x/text/message"
)

// HUDFontSize is the HUD text size in pixels.
const HUDFontSize = 13

// hudMargin is the padding around the HUD text block.
const hudMargin = 4

// hudPlate darkens the area behind the text.
var hudPlate = color.NRGBA{A: 160}

// HUDLines formats the overlay text for a view.
// Numbers use English grouping so large iteration counts stay readable.
func HUDLines(view ViewState, maxIter int, stats Stats) []string {
	p := message.NewPrinter(textlang.English)
	return []string{
		p.Sprintf("zoom %.6g (x%.1f)", view.Zoom, view.Magnification()),
		p.Sprintf("center %.12f %+.12fi", real(view.Center), imag(view.Center)),
		p.Sprintf("iterations %d", maxIter),
		p.Sprintf("frame %d in %v", stats.Frames, stats.LastFrame.Round(time.Microsecond)),
	}
}

// hudFont is Go Regular, parsed once for shaping and once for drawing.
var hudFont = sync.OnceValues(func() (*hudFontData, error) {
	shapeFace, err := gotext.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	drawFont, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &hudFontData{shape: shapeFace.Font, draw: drawFont}, nil
})

type hudFontData struct {
	shape *gotext.Font
	draw  *opentype.Font
}

// shapedGlyph is one glyph of a shaped HUD line. Text is the cluster it
// starts, empty for the remaining glyphs of a multi-glyph cluster.
type shapedGlyph struct {
	X    fixed.Int26_6
	Y    fixed.Int26_6
	Text string
}

// shapeLine runs HarfBuzz shaping over line and returns positioned glyphs
// and the total advance.
func (f *hudFontData) shapeLine(line string) ([]shapedGlyph, fixed.Int26_6) {
	runes := []rune(line)
	if len(runes) == 0 {
		return nil, 0
	}
	var sh shaping.HarfbuzzShaper
	out := sh.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f.shape),
		Size:      fixed.I(HUDFontSize),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	})

	glyphs := make([]shapedGlyph, len(out.Glyphs))
	var pen fixed.Int26_6
	last := -1
	for i, g := range out.Glyphs {
		glyphs[i] = shapedGlyph{X: pen + g.XOffset, Y: -g.YOffset}
		if idx := g.TextIndex(); idx != last && idx < len(runes) {
			end := min(idx+max(g.RuneCount, 1), len(runes))
			glyphs[i].Text = string(runes[idx:end])
			last = idx
		}
		pen += g.Advance
	}
	return glyphs, pen
}

// MeasureHUD returns the pixel size of the HUD block for lines, plate
// margins included.
func MeasureHUD(lines []string) image.Point {
	f, err := hudFont()
	if err != nil || len(lines) == 0 {
		return image.Point{}
	}
	face, err := opentype.NewFace(f.draw, &opentype.FaceOptions{Size: HUDFontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return image.Point{}
	}
	defer func() { _ = face.Close() }()
	return measure(f, face, lines)
}

func measure(f *hudFontData, face font.Face, lines []string) image.Point {
	var width fixed.Int26_6
	for _, line := range lines {
		_, adv := f.shapeLine(line)
		width = max(width, adv)
	}
	lh := face.Metrics().Height.Ceil()
	return image.Pt(width.Ceil()+2*hudMargin, lh*len(lines)+2*hudMargin)
}

// DrawHUD writes lines into the top-left corner of pm.
func DrawHUD(pm *Pixmap, lines []string, c RGB) {
	if pm.width == 0 || pm.height == 0 {
		return
	}
	DrawHUDImage(&image.RGBA{
		Pix:    pm.data,
		Stride: pm.width * 4,
		Rect:   image.Rect(0, 0, pm.width, pm.height),
	}, lines, c)
}

// DrawHUDImage writes lines over a dark plate in the top-left corner of
// dst. The lines are shaped with Go Regular; if the font cannot be loaded
// the fixed 7x13 face is used instead.
func DrawHUDImage(dst draw.Image, lines []string, c RGB) {
	if len(lines) == 0 {
		return
	}
	f, err := hudFont()
	if err != nil {
		Logger().Warn("mandel: hud font unavailable", slog.String("err", err.Error()))
		drawBasicHUD(dst, lines, c)
		return
	}
	face, err := opentype.NewFace(f.draw, &opentype.FaceOptions{Size: HUDFontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		Logger().Warn("mandel: hud face unavailable", slog.String("err", err.Error()))
		drawBasicHUD(dst, lines, c)
		return
	}
	defer func() { _ = face.Close() }()

	size := measure(f, face, lines)
	plate := image.Rectangle{Max: size}.Intersect(dst.Bounds())
	draw.Draw(dst, plate, image.NewUniform(hudPlate), image.Point{}, draw.Over)

	m := face.Metrics()
	d := font.Drawer{Dst: dst, Src: image.NewUniform(c.Color()), Face: face}
	origin := fixed.I(hudMargin)
	for i, line := range lines {
		baseline := fixed.I(hudMargin) + m.Height*fixed.Int26_6(i) + m.Ascent
		glyphs, _ := f.shapeLine(line)
		for _, g := range glyphs {
			if g.Text == "" {
				continue
			}
			d.Dot = fixed.Point26_6{X: origin + g.X, Y: baseline + g.Y}
			d.DrawString(g.Text)
		}
	}
}

func drawBasicHUD(dst draw.Image, lines []string, c RGB) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.Color()),
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		d.Dot = fixed.P(hudMargin, hudMargin+basicfont.Face7x13.Height*(i+1))
		d.DrawString(line)
	}
}
