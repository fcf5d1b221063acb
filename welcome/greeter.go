package welcome

import (
	"context"
	"errors"

	"github.com/callummance/welcomer/card"
	"github.com/callummance/welcomer/guildmodels"
	"github.com/callummance/welcomer/settings"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//AvatarFetcher downloads the encoded avatar image at a URL
type AvatarFetcher interface {
	FetchAvatar(ctx context.Context, avatarURL string) ([]byte, error)
}

//Outbox delivers welcome output to a chat channel
type Outbox interface {
	SendAnnouncement(ctx context.Context, channelID string, a Announcement) error
	SendCard(ctx context.Context, channelID string, filename string, png []byte) error
}

//Outcome describes what a call to Greet did
type Outcome struct {
	//ChannelID is where output was sent, or "" if Skipped
	ChannelID string
	//Skipped is true if there was nowhere to send the welcome
	Skipped bool
	//AnnouncementErr is set if the announcement could not be sent
	AnnouncementErr error
	//CardErr is set if no card was sent. It wraps a *card.RenderError when the card could not be produced.
	CardErr error
}

//Greeter sends the announcement and profile card for new members
type Greeter struct {
	assembler *Assembler
	renderer  *card.Renderer
	avatars  AvatarFetcher
	out      Outbox
}

//NewGreeter creates a Greeter
func NewGreeter(store *settings.Store, renderer *card.Renderer, avatars AvatarFetcher, out Outbox) *Greeter {
	return &Greeter{
		assembler: NewAssembler(store),
		renderer:  renderer,
		avatars:   avatars,
		out:       out,
	}
}

//Greet welcomes a member to a guild using the announcement from the Assembler, sent to the guild's welcome channel.
//Member joins pass no fallbackChannelID, so guilds without a welcome channel are skipped. The test command passes
//the invoking channel, which receives the same announcement built from the current settings.
//The announcement and the card are produced and sent independently, so a card failure never prevents the announcement.
func (g *Greeter) Greet(ctx context.Context, guildID string, fallbackChannelID string, member guildmodels.MemberProfile) Outcome {
	log := logrus.WithFields(logrus.Fields{
		"guild":  guildID,
		"member": member.ID,
	})
	cs, announcement := g.assembler.assemble(guildID, member)
	channelID := cs.WelcomeChannel
	if announcement == nil {
		if fallbackChannelID == "" {
			log.Debug("No welcome channel configured; skipping welcome.")
			return Outcome{Skipped: true}
		}
		built := Build(cs, member)
		announcement, channelID = &built, fallbackChannelID
	}

	res := Outcome{ChannelID: channelID}
	var group errgroup.Group
	group.Go(func() error {
		err := g.out.SendAnnouncement(ctx, channelID, *announcement)
		if err != nil {
			log.Errorf("Failed to send welcome announcement to channel %v due to error %v", channelID, err)
		}
		return err
	})
	group.Go(func() error {
		//Card failures stay local to the card path
		res.CardErr = g.sendCard(ctx, channelID, cs.CardTemplate, member)
		if res.CardErr != nil {
			log.Warnf("No profile card sent to channel %v: %v", channelID, res.CardErr)
		}
		return nil
	})
	res.AnnouncementErr = group.Wait()
	return res
}

func (g *Greeter) sendCard(ctx context.Context, channelID string, tmpl guildmodels.CardTemplate, member guildmodels.MemberProfile) error {
	if len(member.AvatarBytes) == 0 {
		if g.avatars == nil || member.AvatarURL == "" {
			return card.NewRenderError(card.FailureAvatarFetch, errors.New("no avatar available"))
		}
		avatar, err := g.avatars.FetchAvatar(ctx, member.AvatarURL)
		if err != nil {
			return card.NewRenderError(card.FailureAvatarFetch, err)
		}
		member.AvatarBytes = avatar
	}
	png, err := g.renderer.Render(member, tmpl)
	if err != nil {
		return err
	}
	return g.out.SendCard(ctx, channelID, card.AttachmentName, png)
}
