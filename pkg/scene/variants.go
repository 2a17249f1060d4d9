package scene

import (
	"math"

	"github.com/fogleman/gg"
)

const (
	bgColor     = "#24273a"
	panelColor  = "#1e2030"
	textColor   = "#cad3f5"
	dimColor    = "#6e738d"
	headerScale = 0.09
	marginScale = 0.05
)

// drawChrome paints the background, title bar and element badges shared by
// all variants, and returns the content rectangle left for the variant.
func (b *baseScene) drawChrome(dc *gg.Context) (x, y, w, h float64) {
	width := float64(dc.Width())
	height := float64(dc.Height())
	margin := width * marginScale

	dc.SetHexColor(bgColor)
	dc.Clear()

	// Title bar with the kind accent
	headerH := height * headerScale
	dc.SetHexColor(b.kind.AccentHex())
	dc.DrawRectangle(0, 0, width, 4)
	dc.Fill()
	dc.SetHexColor(textColor)
	dc.DrawStringAnchored(b.title(), margin, headerH/2+4, 0, 0.5)

	// Element badges along the bottom
	badgeY := height - margin
	bx := margin
	for _, el := range b.kind.AffectedElements() {
		tw, th := dc.MeasureString(el)
		dc.SetHexColor(panelColor)
		dc.DrawRoundedRectangle(bx, badgeY-th-6, tw+16, th+12, 6)
		dc.Fill()
		dc.SetHexColor(dimColor)
		dc.DrawStringAnchored(el, bx+8+tw/2, badgeY-th/2, 0.5, 0.5)
		bx += tw + 24
	}

	x = margin
	y = headerH + margin/2
	w = width - 2*margin
	h = badgeY - y - margin
	return x, y, w, h
}

// drawCodePanel renders a code block inside the content rect, revealing the
// first visible lines and optionally emphasizing highlighted ones.
func (b *baseScene) drawCodePanel(dc *gg.Context, x, y, w, h float64, visible int, emphasis float64) {
	dc.SetHexColor(panelColor)
	dc.DrawRoundedRectangle(x, y, w, h, 8)
	dc.Fill()

	lines := b.codeLines()
	lineH := h / float64(len(lines)+1)
	if lineH > 24 {
		lineH = 24
	}

	highlighted := make(map[int]bool, len(b.params.HighlightLines))
	for _, n := range b.params.HighlightLines {
		highlighted[n] = true
	}

	for i, line := range lines {
		if i >= visible {
			break
		}
		ly := y + lineH*float64(i+1)
		if highlighted[i+1] && emphasis > 0 {
			dc.SetHexColor(b.kind.AccentHex())
			dc.DrawRectangle(x+4, ly-lineH/2, (w-8)*emphasis, lineH-2)
			dc.Fill()
			dc.SetHexColor(bgColor)
		} else {
			dc.SetHexColor(textColor)
		}
		dc.DrawString(line, x+16, ly+4)
	}
}

// typingScene reveals the code block line by line, like live typing.
// Used for general_coding and component_structure.
type typingScene struct {
	baseScene
}

func (s *typingScene) Render(dc *gg.Context, progress float64) {
	progress = clamp01(progress)
	x, y, w, h := s.drawChrome(dc)

	lines := s.codeLines()
	visible := int(math.Ceil(progress * float64(len(lines))))
	s.drawCodePanel(dc, x, y, w, h*0.8, visible, 0)

	if s.params.Explanation != "" {
		dc.SetHexColor(dimColor)
		dc.DrawString(s.params.Explanation, x, y+h*0.8+24)
	}
}

// highlightScene shows the full code block and grows an accent band across
// the highlighted lines. Used for state_management and side_effects.
type highlightScene struct {
	baseScene
}

func (s *highlightScene) Render(dc *gg.Context, progress float64) {
	progress = clamp01(progress)
	x, y, w, h := s.drawChrome(dc)
	s.drawCodePanel(dc, x, y, w, h*0.8, len(s.codeLines()), easeInOut(progress))
}

// rippleScene draws expanding rings around a tap point over the code block.
// Used for event_handling.
type rippleScene struct {
	baseScene
}

func (s *rippleScene) Render(dc *gg.Context, progress float64) {
	progress = clamp01(progress)
	x, y, w, h := s.drawChrome(dc)
	s.drawCodePanel(dc, x, y, w, h*0.8, len(s.codeLines()), 0)

	cx := x + w*0.7
	cy := y + h*0.4
	maxR := w * 0.15
	for ring := 0; ring < 3; ring++ {
		phase := progress - float64(ring)*0.15
		if phase <= 0 {
			continue
		}
		r := maxR * easeInOut(phase)
		dc.SetHexColor(s.kind.AccentHex())
		dc.SetLineWidth(3 * (1 - phase))
		dc.DrawCircle(cx, cy, r)
		dc.Stroke()
	}
}

// sweepScene wipes the accent color across the panel from left to right.
// Used for styling.
type sweepScene struct {
	baseScene
}

func (s *sweepScene) Render(dc *gg.Context, progress float64) {
	progress = clamp01(progress)
	x, y, w, h := s.drawChrome(dc)
	s.drawCodePanel(dc, x, y, w, h*0.8, len(s.codeLines()), 0)

	sweep := easeInOut(progress)
	dc.SetHexColor(s.kind.AccentHex())
	dc.DrawRectangle(x, y+h*0.82, w*sweep, 8)
	dc.Fill()
}
