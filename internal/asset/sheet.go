package asset

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/meteors/internal/vec"
)

// ErrUnknownSprite is returned for names missing from the sprite sheet.
var ErrUnknownSprite = errors.New("unknown sprite")

//go:embed sprites.yaml
var DefaultSheet []byte

type point [2]float64

type spriteDef struct {
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Lines  [][]point `yaml:"lines"`
	Dots   []point   `yaml:"dots"`
}

// animationDef derives frames from a base sprite by interpolating scale and
// adding a fixed spin per frame.
type animationDef struct {
	Sprite    string  `yaml:"sprite"`
	Frames    int     `yaml:"frames"`
	ScaleFrom float64 `yaml:"scale_from"`
	ScaleTo   float64 `yaml:"scale_to"`
	Spin      float64 `yaml:"spin"`
}

type sheetDef struct {
	Sprites    map[string]spriteDef    `yaml:"sprites"`
	Animations map[string]animationDef `yaml:"animations"`
}

// Sheet is a parsed sprite sheet.
type Sheet struct {
	Images     map[string]*Image
	Animations map[string][]*Image
}

// ParseSheet decodes a YAML sprite sheet.
func ParseSheet(data []byte) (*Sheet, error) {
	var def sheetDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode sprite sheet: %w", err)
	}

	sheet := &Sheet{
		Images:     make(map[string]*Image, len(def.Sprites)),
		Animations: make(map[string][]*Image, len(def.Animations)),
	}
	for name, sd := range def.Sprites {
		if sd.Width <= 0 || sd.Height <= 0 {
			return nil, fmt.Errorf("sprite %q: size must be positive", name)
		}
		img := &Image{Name: name, Width: sd.Width, Height: sd.Height}
		for _, line := range sd.Lines {
			pts := make([]vec.Vector2, len(line))
			for i, p := range line {
				pts[i] = vec.New(p[0], p[1])
			}
			img.Lines = append(img.Lines, pts)
		}
		for _, p := range sd.Dots {
			img.Dots = append(img.Dots, vec.New(p[0], p[1]))
		}
		sheet.Images[name] = img
	}

	for name, ad := range def.Animations {
		base, ok := sheet.Images[ad.Sprite]
		if !ok {
			return nil, fmt.Errorf("animation %q: %w %q", name, ErrUnknownSprite, ad.Sprite)
		}
		if ad.Frames <= 0 {
			return nil, fmt.Errorf("animation %q: frames must be positive", name)
		}
		from, to := ad.ScaleFrom, ad.ScaleTo
		if from == 0 && to == 0 {
			from, to = 1, 1
		}
		frames := make([]*Image, ad.Frames)
		for i := range frames {
			t := 0.0
			if ad.Frames > 1 {
				t = float64(i) / float64(ad.Frames-1)
			}
			frames[i] = base.transformed(fmt.Sprintf("%s_%d", name, i), from+(to-from)*t, ad.Spin*float64(i))
		}
		sheet.Animations[name] = frames
	}
	return sheet, nil
}
