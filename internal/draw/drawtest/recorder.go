// Package drawtest provides a Surface that records calls for assertions.
package drawtest

import (
	"github.com/tomz197/meteors/internal/asset"
	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/vec"
)

// Call is one recorded Surface operation.
type Call struct {
	Op    string
	Image string
	Args  []float64
	Text  string
}

// Recorder implements draw.Surface by appending every call to Calls.
type Recorder struct {
	Calls []Call
	depth int
}

var _ draw.Surface = (*Recorder)(nil)

func (r *Recorder) add(c Call) { r.Calls = append(r.Calls, c) }

func (r *Recorder) Save() {
	r.depth++
	r.add(Call{Op: "save"})
}

func (r *Recorder) Restore() {
	r.depth--
	r.add(Call{Op: "restore"})
}

func (r *Recorder) Translate(x, y float64) {
	r.add(Call{Op: "translate", Args: []float64{x, y}})
}

func (r *Recorder) Rotate(angle float64) {
	r.add(Call{Op: "rotate", Args: []float64{angle}})
}

func (r *Recorder) DrawImage(img *asset.Image, x, y, w, h float64) {
	name := ""
	if img != nil {
		name = img.Name
	}
	r.add(Call{Op: "image", Image: name, Args: []float64{x, y, w, h}})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.add(Call{Op: "fill", Args: []float64{x, y, w, h}})
}

func (r *Recorder) StrokeLine(from, to vec.Vector2) {
	r.add(Call{Op: "line", Args: []float64{from.X, from.Y, to.X, to.Y}})
}

func (r *Recorder) Text(x, y float64, s string) {
	r.add(Call{Op: "text", Args: []float64{x, y}, Text: s})
}

func (r *Recorder) TextCentered(x, y float64, s string) {
	r.add(Call{Op: "text", Args: []float64{x, y}, Text: s})
}

// Balanced reports whether every Save was matched by a Restore.
func (r *Recorder) Balanced() bool {
	return r.depth == 0
}

// Count returns how many calls used op.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Images returns the names of all drawn images in order.
func (r *Recorder) Images() []string {
	var names []string
	for _, c := range r.Calls {
		if c.Op == "image" {
			names = append(names, c.Image)
		}
	}
	return names
}

// Texts returns all drawn strings in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Op == "text" {
			out = append(out, c.Text)
		}
	}
	return out
}
