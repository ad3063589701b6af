package render

import (
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// LoadFace opens the TTF at path at the given pixel size. A missing or
// unparsable font degrades to the built-in 7x13 face instead of failing
// startup. Returns the face and its nominal pixel height, which drives
// line spacing.
func LoadFace(path string, sizePx float64) (font.Face, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("font", path).Msg("font unavailable, using builtin face")
		return basicfont.Face7x13, basicfont.Face7x13.Height
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		log.Warn().Err(err).Str("font", path).Msg("font unparsable, using builtin face")
		return basicfont.Face7x13, basicfont.Face7x13.Height
	}

	// At 72 DPI the point size equals the pixel size.
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Warn().Err(err).Str("font", path).Msg("face creation failed, using builtin face")
		return basicfont.Face7x13, basicfont.Face7x13.Height
	}
	return face, int(sizePx)
}
