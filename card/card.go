package card

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/callummance/welcomer/guildmodels"
	"github.com/callummance/welcomer/templating"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

//AttachmentName is the filename cards are uploaded as
const AttachmentName = "profile_card.png"

//Card geometry
const (
	Width      int = 800
	Height     int = 400
	AvatarSize int = 150
	textLeft   int = 50
)

//AvatarOrigin is the top-left corner of the avatar on the card
var AvatarOrigin = image.Pt(Width-180, 30)

//Background is the fixed card background. The template colour is not used.
var Background = color.RGBA{R: 47, G: 49, B: 54, A: 255}

var (
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	lightGrey = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	grey      = color.RGBA{R: 180, G: 180, B: 180, A: 255}
)

//Renderer composes profile cards. It is safe for concurrent use.
type Renderer struct {
	fonts typefaces
}

//NewRenderer loads the preferred fonts, falling back to the built-in font if they cannot be loaded.
func NewRenderer(cfg FontConfig) *Renderer {
	fonts, err := loadTypefaces(cfg)
	if err != nil {
		logrus.Warnf("Falling back to built-in font for profile cards: %v", err)
	}
	return &Renderer{fonts: fonts}
}

//Render produces a PNG encoded card for a member. member.AvatarBytes must hold an encoded image.
func (r *Renderer) Render(member guildmodels.MemberProfile, tmpl guildmodels.CardTemplate) ([]byte, error) {
	img, err := r.Compose(member, tmpl)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, NewRenderError(FailureEncode, err)
	}
	return buf.Bytes(), nil
}

//Compose draws a card for a member without encoding it
func (r *Renderer) Compose(member guildmodels.MemberProfile, tmpl guildmodels.CardTemplate) (res *image.RGBA, err error) {
	avatar, err := decodeAvatar(member.AvatarBytes)
	if err != nil {
		return nil, err
	}

	//Glyph rasterisation on a bad font can panic; report it as a failed card instead
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = NewRenderError(FailureDraw, fmt.Errorf("panic while drawing card: %v", p))
		}
	}()

	canvas := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	faces := r.fonts.newFaceSet()
	defer faces.close()

	title := templating.Render(tmpl.Title, templating.Fields{templating.Server: member.CommunityName})
	drawText(canvas, faces.title, white, textLeft, 30, title)
	drawText(canvas, faces.subtitle, lightGrey, textLeft, 80, tmpl.Subtitle)
	drawText(canvas, faces.body, grey, textLeft, 130, tmpl.Description)

	drawText(canvas, faces.body, white, textLeft, 200, "Member: "+member.DisplayName)
	drawText(canvas, faces.body, white, textLeft, 230, "ID: "+member.ID)
	drawText(canvas, faces.body, lightGrey, textLeft, 260, "Account Created: "+templating.FormatTimestamp(member.AccountCreatedAt))
	drawText(canvas, faces.body, lightGrey, textLeft, 290, "Join Date: "+templating.FormatTimestamp(member.JoinedAt))

	pasteAvatar(canvas, avatar, AvatarOrigin)
	return canvas, nil
}

//drawText draws text with its top-left corner at (x, y). Explicit newlines start a new line; nothing is wrapped.
func drawText(dst draw.Image, face font.Face, c color.Color, x, y int, text string) {
	metrics := face.Metrics()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	dot := fixed.P(x, y)
	dot.Y += metrics.Ascent
	for _, line := range strings.Split(text, "\n") {
		d.Dot = dot
		d.DrawString(line)
		dot.Y += metrics.Height
	}
}
