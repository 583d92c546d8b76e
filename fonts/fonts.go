package fonts

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	HUD   FontName = "hud"
	Score FontName = "score"
	Small FontName = "small"
	Title FontName = "title"
)

func (f FontName) Get() font.Face {
	return getFont(f)
}

var (
	fonts = map[FontName]font.Face{}
)

// LoadDefaults registers the built-in faces from the Go regular font.
func LoadDefaults() {
	LoadFontWithSize(HUD, goregular.TTF, 16)
	LoadFontWithSize(Score, goregular.TTF, 32)
	LoadFontWithSize(Small, goregular.TTF, 11)
	LoadFontWithSize(Title, goregular.TTF, 40)
}

func LoadFont(name FontName, ttf []byte) {
	LoadFontWithSize(name, ttf, 10)
}

func LoadFontWithSize(name FontName, ttf []byte, size float64) {
	fontData, _ := truetype.Parse(ttf)
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
}

func getFont(name FontName) font.Face {
	f, ok := fonts[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}

var (
	uiSource     *text.GoTextFaceSource
	uiSourceOnce sync.Once
)

// UIFace returns a text/v2 face of the given size for widgets and scaled
// labels.
func UIFace(size float64) text.Face {
	uiSourceOnce.Do(func() {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic(err)
		}
		uiSource = src
	})
	return &text.GoTextFace{Source: uiSource, Size: size}
}
