package draw

import (
	"math"
	"unicode/utf8"

	"github.com/tomz197/meteors/internal/asset"
	"github.com/tomz197/meteors/internal/vec"
)

// Surface is an immediate-mode 2D drawing target with a save/restore
// transform stack. Coordinates are logical arena units.
type Surface interface {
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	// DrawImage draws img stretched into the w x h box at (x, y). A nil image is skipped.
	DrawImage(img *asset.Image, x, y, w, h float64)
	FillRect(x, y, w, h float64)
	StrokeLine(from, to vec.Vector2)
	// Text draws s starting at (x, y).
	Text(x, y float64, s string)
	// TextCentered draws s horizontally centered on x.
	TextCentered(x, y float64, s string)
}

// transform is a 2D affine matrix [a c e; b d f].
type transform struct {
	a, b, c, d, e, f float64
}

var identity = transform{a: 1, d: 1}

func (t transform) apply(p vec.Vector2) vec.Vector2 {
	return vec.New(t.a*p.X+t.c*p.Y+t.e, t.b*p.X+t.d*p.Y+t.f)
}

type textItem struct {
	col, row int
	s        string
}

// CanvasSurface draws onto a Canvas. Text is queued and written above the
// pixels by Present.
type CanvasSurface struct {
	canvas *Canvas
	cur    transform
	stack  []transform
	texts  []textItem
	quad   [4]vec.Vector2
}

// NewCanvasSurface wraps canvas.
func NewCanvasSurface(canvas *Canvas) *CanvasSurface {
	return &CanvasSurface{canvas: canvas, cur: identity}
}

// Canvas returns the underlying canvas.
func (s *CanvasSurface) Canvas() *Canvas {
	return s.canvas
}

// Begin clears the canvas and the transform stack for a new frame.
func (s *CanvasSurface) Begin() {
	s.canvas.Clear()
	s.cur = identity
	s.stack = s.stack[:0]
	s.texts = s.texts[:0]
}

// Present writes the frame to cw without flushing it.
func (s *CanvasSurface) Present(cw *ChunkWriter) error {
	if err := s.canvas.Render(cw); err != nil {
		return err
	}
	if err := s.canvas.RenderBorder(cw); err != nil {
		return err
	}
	for _, t := range s.texts {
		cw.WriteAt(t.col, t.row, t.s)
		s.canvas.MarkTextDirty(t.col, t.row, utf8.RuneCountInString(t.s))
	}
	return nil
}

func (s *CanvasSurface) Save() {
	s.stack = append(s.stack, s.cur)
}

// Restore pops the last saved transform. Unbalanced calls reset to identity.
func (s *CanvasSurface) Restore() {
	if len(s.stack) == 0 {
		s.cur = identity
		return
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *CanvasSurface) Translate(x, y float64) {
	t := &s.cur
	t.e += t.a*x + t.c*y
	t.f += t.b*x + t.d*y
}

func (s *CanvasSurface) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	t := s.cur
	s.cur.a = t.a*cos + t.c*sin
	s.cur.b = t.b*cos + t.d*sin
	s.cur.c = -t.a*sin + t.c*cos
	s.cur.d = -t.b*sin + t.d*cos
}

func (s *CanvasSurface) DrawImage(img *asset.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	at := func(p vec.Vector2) vec.Vector2 {
		return s.cur.apply(vec.New(x+p.X*w, y+p.Y*h))
	}
	for _, line := range img.Lines {
		for i := 1; i < len(line); i++ {
			s.canvas.DrawLine(at(line[i-1]), at(line[i]))
		}
	}
	for _, p := range img.Dots {
		q := at(p)
		s.canvas.SetFloat(q.X, q.Y)
	}
}

func (s *CanvasSurface) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s.quad[0] = s.cur.apply(vec.New(x, y))
	s.quad[1] = s.cur.apply(vec.New(x+w, y))
	s.quad[2] = s.cur.apply(vec.New(x+w, y+h))
	s.quad[3] = s.cur.apply(vec.New(x, y+h))
	s.canvas.DrawPolygon(s.quad[:], true)
}

func (s *CanvasSurface) StrokeLine(from, to vec.Vector2) {
	s.canvas.DrawLine(s.cur.apply(from), s.cur.apply(to))
}

func (s *CanvasSurface) Text(x, y float64, str string) {
	if str == "" {
		return
	}
	p := s.cur.apply(vec.New(x, y))
	col, row := s.canvas.LogicalToTerminal(p.X, p.Y)
	s.texts = append(s.texts, textItem{col: col, row: row, s: str})
}

func (s *CanvasSurface) TextCentered(x, y float64, str string) {
	half := s.canvas.ColumnsToLogical(utf8.RuneCountInString(str)) / 2
	s.Text(x-half, y, str)
}

var _ Surface = (*CanvasSurface)(nil)
