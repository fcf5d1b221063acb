package card

import (
	"bytes"
	"errors"
	"image"
	"image/color"

	//Decoders for the formats discord serves avatars in
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

func decodeAvatar(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, NewRenderError(FailureAvatarDecode, errors.New("no avatar data"))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, NewRenderError(FailureAvatarDecode, err)
	}
	return img, nil
}

//pasteAvatar scales the avatar to AvatarSize and draws it at origin, clipped to the inscribed circle
func pasteAvatar(dst draw.Image, avatar image.Image, origin image.Point) {
	scaled := resize.Resize(uint(AvatarSize), uint(AvatarSize), avatar, resize.Lanczos3)
	target := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(AvatarSize, AvatarSize))}
	draw.DrawMask(dst, target, scaled, scaled.Bounds().Min, circleMask{diameter: AvatarSize}, image.Point{}, draw.Over)
}

//circleMask is fully opaque inside the circle inscribed in a diameter×diameter square and transparent outside it
type circleMask struct {
	diameter int
}

func (c circleMask) ColorModel() color.Model {
	return color.AlphaModel
}

func (c circleMask) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.diameter, c.diameter)
}

func (c circleMask) At(x, y int) color.Color {
	r := float64(c.diameter) / 2
	dx := float64(x) + 0.5 - r
	dy := float64(y) + 0.5 - r
	if dx*dx+dy*dy <= r*r {
		return color.Alpha{A: 255}
	}
	return color.Alpha{A: 0}
}
