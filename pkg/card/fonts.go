package card

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/goregular"
)

type fontKey struct {
	weight int
	italic bool
}

type faceKey struct {
	fontKey
	size float64
}

var (
	fontsOnce sync.Once
	fonts     map[fontKey]*truetype.Font
)

func loadFonts() {
	sources := map[fontKey][]byte{
		{400, false}: goregular.TTF,
		{400, true}:  goitalic.TTF,
		{500, false}: gomedium.TTF,
		{500, true}:  gomediumitalic.TTF,
		{700, false}: gobold.TTF,
		{700, true}:  gobolditalic.TTF,
	}
	fonts = make(map[fontKey]*truetype.Font, len(sources))
	for key, ttf := range sources {
		f, err := truetype.Parse(ttf)
		if err != nil {
			// bundled fonts always parse
			panic(err)
		}
		fonts[key] = f
	}
}

// bucket maps a CSS weight onto one of the bundled font weights.
func bucket(weight int) int {
	switch {
	case weight <= 450:
		return 400
	case weight <= 550:
		return 500
	default:
		return 700
	}
}

type faceCache struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func newFaceCache() *faceCache {
	fontsOnce.Do(loadFonts)
	return &faceCache{faces: make(map[faceKey]font.Face)}
}

func (c *faceCache) face(weight int, italic bool, size float64) font.Face {
	key := faceKey{fontKey{bucket(weight), italic}, size}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(fonts[key.fontKey], &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	c.faces[key] = f
	return f
}
