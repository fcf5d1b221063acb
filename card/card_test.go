package card

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/callummance/welcomer/guildmodels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var avatarRed = color.RGBA{R: 220, G: 20, B: 20, A: 255}

func solidPNG(t *testing.T, size int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testMember(t *testing.T) guildmodels.MemberProfile {
	return guildmodels.MemberProfile{
		DisplayName:          "bob",
		Mention:              "<@42>",
		ID:                   "42",
		AvatarBytes:          solidPNG(t, 64, avatarRed),
		AccountCreatedAt:     time.Date(2019, time.May, 1, 12, 0, 0, 0, time.UTC),
		JoinedAt:             time.Date(2021, time.March, 4, 17, 5, 0, 0, time.UTC),
		CommunityName:        "Acme",
		CommunityMemberCount: 10,
	}
}

func assertRGB(t *testing.T, img image.Image, x, y int, want color.RGBA) {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	assert.Equal(t, [3]uint8{want.R, want.G, want.B}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}, "pixel (%d, %d)", x, y)
}

func TestRenderProducesFixedSizePNG(t *testing.T) {
	r := NewRenderer(FontConfig{})
	out, err := r.Render(testMember(t), guildmodels.DefaultCardTemplate())
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, Width, Height), img.Bounds())
}

func TestAvatarIsCircular(t *testing.T) {
	r := NewRenderer(FontConfig{})
	img, err := r.Compose(testMember(t), guildmodels.DefaultCardTemplate())
	require.NoError(t, err)

	minX, minY := AvatarOrigin.X, AvatarOrigin.Y
	maxX, maxY := minX+AvatarSize-1, minY+AvatarSize-1

	//Corners of the avatar square lie outside the circle and must show the background
	for _, p := range []image.Point{{minX, minY}, {maxX, minY}, {minX, maxY}, {maxX, maxY}, {minX + 10, minY + 10}} {
		assertRGB(t, img, p.X, p.Y, Background)
	}

	centre := img.RGBAAt(minX+AvatarSize/2, minY+AvatarSize/2)
	assert.InDelta(t, avatarRed.R, centre.R, 2)
	assert.InDelta(t, avatarRed.G, centre.G, 2)
	assert.InDelta(t, avatarRed.B, centre.B, 2)
}

func TestBackgroundIgnoresTemplateColor(t *testing.T) {
	r := NewRenderer(FontConfig{})
	tmpl := guildmodels.DefaultCardTemplate()
	tmpl.Color = 0xff0000
	img, err := r.Compose(testMember(t), tmpl)
	require.NoError(t, err)
	assertRGB(t, img, Width-1, Height-1, Background)
	assertRGB(t, img, 0, 0, Background)
}

func TestTextIsDrawn(t *testing.T) {
	r := NewRenderer(FontConfig{})
	img, err := r.Compose(testMember(t), guildmodels.DefaultCardTemplate())
	require.NoError(t, err)

	changed := 0
	for y := 30; y < 70; y++ {
		for x := textLeft; x < textLeft+200; x++ {
			if img.RGBAAt(x, y) != Background {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 0, "expected title glyphs in the title region")
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewRenderer(FontConfig{})
	member := testMember(t)
	first, err := r.Render(member, guildmodels.DefaultCardTemplate())
	require.NoError(t, err)
	second, err := r.Render(member, guildmodels.DefaultCardTemplate())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMissingFontsFallBack(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "arialbd.ttf")
	r := NewRenderer(FontConfig{BoldPath: missing, RegularPath: missing})

	out, err := r.Render(testMember(t), guildmodels.DefaultCardTemplate())
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, Width, cfg.Width)
	assert.Equal(t, Height, cfg.Height)
}

func TestUndecodableAvatarFails(t *testing.T) {
	r := NewRenderer(FontConfig{})
	member := testMember(t)

	member.AvatarBytes = []byte("definitely not an image")
	out, err := r.Render(member, guildmodels.DefaultCardTemplate())
	assert.Nil(t, out)
	assert.True(t, IsFailure(err, FailureAvatarDecode))

	member.AvatarBytes = nil
	_, err = r.Render(member, guildmodels.DefaultCardTemplate())
	assert.True(t, IsFailure(err, FailureAvatarDecode))
	assert.False(t, IsFailure(err, FailureEncode))
}

func TestCircleMask(t *testing.T) {
	m := circleMask{diameter: 10}
	assert.Equal(t, color.Alpha{A: 255}, m.At(5, 5))
	assert.Equal(t, color.Alpha{A: 0}, m.At(0, 0))
	assert.Equal(t, color.Alpha{A: 0}, m.At(9, 9))
	assert.Equal(t, color.Alpha{A: 255}, m.At(0, 5))
}
