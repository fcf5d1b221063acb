package card

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

//Point sizes for each text role on the card
const (
	titleFontSize    float64 = 36
	subtitleFontSize float64 = 24
	bodyFontSize     float64 = 18
	fontDPI          float64 = 72
)

//FontConfig selects the faces used on cards. Empty paths select the bundled Go fonts.
type FontConfig struct {
	BoldPath    string
	RegularPath string
}

//typefaces holds the parsed preferred fonts. If either could not be loaded both are nil and every role falls back to
//the built-in bitmap face.
type typefaces struct {
	bold    *opentype.Font
	regular *opentype.Font
}

//faceSet holds the faces for a single render
type faceSet struct {
	title    font.Face
	subtitle font.Face
	body     font.Face
	closers  []font.Face
}

func loadTypefaces(cfg FontConfig) (typefaces, error) {
	bold, err := loadFont(cfg.BoldPath, gobold.TTF)
	if err != nil {
		return typefaces{}, fmt.Errorf("failed to load bold font: %w", err)
	}
	regular, err := loadFont(cfg.RegularPath, goregular.TTF)
	if err != nil {
		return typefaces{}, fmt.Errorf("failed to load regular font: %w", err)
	}
	return typefaces{bold: bold, regular: regular}, nil
}

func loadFont(path string, fallback []byte) (*opentype.Font, error) {
	data := fallback
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = fileData
	}
	return opentype.Parse(data)
}

//newFaceSet builds sized faces for one render. opentype faces are not safe for concurrent use, so each render gets
//its own. Any failure drops every role to the built-in face.
func (t typefaces) newFaceSet() faceSet {
	fallback := faceSet{title: basicfont.Face7x13, subtitle: basicfont.Face7x13, body: basicfont.Face7x13}
	if t.bold == nil || t.regular == nil {
		return fallback
	}
	var res faceSet
	sizes := []struct {
		dst  *font.Face
		font *opentype.Font
		size float64
	}{
		{&res.title, t.bold, titleFontSize},
		{&res.subtitle, t.regular, subtitleFontSize},
		{&res.body, t.regular, bodyFontSize},
	}
	for _, s := range sizes {
		face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
			Size:    s.size,
			DPI:     fontDPI,
			Hinting: font.HintingFull,
		})
		if err != nil {
			logrus.Warnf("Failed to create %vpt card font face due to error %v; falling back to built-in font", s.size, err)
			res.close()
			return fallback
		}
		*s.dst = face
		res.closers = append(res.closers, face)
	}
	return res
}

func (f faceSet) close() {
	for _, face := range f.closers {
		_ = face.Close()
	}
}
