package core

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	hudAtlasSize    = 256
	hudAtlasPadding = 2
)

// HudVertex matches the vertex input of hud.wgsl.
type HudVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

// HudLine is one line of overlay text. Position is in pixels from the top-left corner.
type HudLine struct {
	Text     string
	Position [2]float32
	Scale    float32
	Color    [4]float32
}

type glyph struct {
	uvMin   [2]float32
	uvMax   [2]float32
	size    [2]float32
	offset  [2]float32
	advance float32
}

// GlyphAtlas rasterizes printable ASCII into a single alpha texture.
type GlyphAtlas struct {
	Image  *image.Alpha
	glyphs map[rune]glyph
	ascent float32
	height float32
}

// NewDefaultGlyphAtlas builds an atlas from the embedded Go Regular face.
func NewDefaultGlyphAtlas(size float64) (*GlyphAtlas, error) {
	return NewGlyphAtlas(goregular.TTF, size)
}

func NewGlyphAtlas(ttf []byte, size float64) (*GlyphAtlas, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	atlas := image.NewAlpha(image.Rect(0, 0, hudAtlasSize, hudAtlasSize))
	glyphs := make(map[rune]glyph)

	x, y := hudAtlasPadding, hudAtlasPadding
	rowHeight := 0
	for r := rune(32); r < 127; r++ {
		bounds, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := bounds.Dx(), bounds.Dy()
		if x+w+hudAtlasPadding >= hudAtlasSize {
			x = hudAtlasPadding
			y += rowHeight + hudAtlasPadding
			rowHeight = 0
		}
		if y+h+hudAtlasPadding >= hudAtlasSize {
			return nil, fmt.Errorf("glyph atlas overflow at %q (size %.0f)", r, size)
		}

		draw.Draw(atlas, image.Rect(x, y, x+w, y+h), mask, maskp, draw.Src)

		glyphs[r] = glyph{
			uvMin:   [2]float32{float32(x) / hudAtlasSize, float32(y) / hudAtlasSize},
			uvMax:   [2]float32{float32(x+w) / hudAtlasSize, float32(y+h) / hudAtlasSize},
			size:    [2]float32{float32(w), float32(h)},
			offset:  [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			advance: float32(adv) / 64.0,
		}

		x += w + hudAtlasPadding
		if h > rowHeight {
			rowHeight = h
		}
	}

	metrics := face.Metrics()
	return &GlyphAtlas{
		Image:  atlas,
		glyphs: glyphs,
		ascent: float32(metrics.Ascent.Ceil()),
		height: float32(metrics.Height.Ceil()),
	}, nil
}

func (a *GlyphAtlas) hasGlyph(r rune) bool {
	_, ok := a.glyphs[r]
	return ok
}

// Vertices lays out lines as two triangles per glyph in clip space for a
// screen of the given pixel size.
func (a *GlyphAtlas) Vertices(lines []HudLine, screenW, screenH uint32) []HudVertex {
	if a == nil || screenW == 0 || screenH == 0 {
		return nil
	}
	sw, sh := float32(screenW), float32(screenH)
	vertices := make([]HudVertex, 0, 64*6)

	for _, line := range lines {
		scale := line.Scale
		if scale <= 0 {
			scale = 1
		}
		penX := line.Position[0]
		penY := line.Position[1] + a.ascent*scale

		for _, r := range line.Text {
			if r == '\n' {
				penX = line.Position[0]
				penY += a.height * scale
				continue
			}
			g, ok := a.glyphs[r]
			if !ok {
				continue
			}

			x0 := (penX+g.offset[0]*scale)/sw*2 - 1
			y0 := 1 - (penY+g.offset[1]*scale)/sh*2
			x1 := (penX+(g.offset[0]+g.size[0])*scale)/sw*2 - 1
			y1 := 1 - (penY+(g.offset[1]+g.size[1])*scale)/sh*2

			tl := HudVertex{Pos: [2]float32{x0, y0}, UV: g.uvMin, Color: line.Color}
			tr := HudVertex{Pos: [2]float32{x1, y0}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: line.Color}
			bl := HudVertex{Pos: [2]float32{x0, y1}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: line.Color}
			br := HudVertex{Pos: [2]float32{x1, y1}, UV: g.uvMax, Color: line.Color}
			vertices = append(vertices, tl, tr, bl, tr, br, bl)

			penX += g.advance * scale
		}
	}
	return vertices
}

// Measure returns the pixel width of the widest line and the total height.
func (a *GlyphAtlas) Measure(text string, scale float32) (float32, float32) {
	if a == nil {
		return 0, 0
	}
	var maxW, w float32
	lines := 1
	for _, r := range text {
		if r == '\n' {
			maxW = max(maxW, w)
			w = 0
			lines++
			continue
		}
		if g, ok := a.glyphs[r]; ok {
			w += g.advance * scale
		}
	}
	return max(maxW, w), a.height * scale * float32(lines)
}
