package bot

import (
	"bytes"
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/callummance/welcomer/welcome"
)

//discordOutbox posts welcome output to discord channels
type discordOutbox struct {
	bot *WelcomeBot
}

//SendAnnouncement posts an announcement as an embed
func (o discordOutbox) SendAnnouncement(ctx context.Context, channelID string, a welcome.Announcement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := o.bot.DiscordSession().ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embed: announcementEmbed(a),
	})
	return err
}

//SendCard uploads a rendered card as an attachment
func (o discordOutbox) SendCard(ctx context.Context, channelID string, filename string, png []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := o.bot.DiscordSession().ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Files: []*discordgo.File{{
			Name:        filename,
			ContentType: "image/png",
			Reader:      bytes.NewReader(png),
		}},
	})
	return err
}

func announcementEmbed(a welcome.Announcement) *discordgo.MessageEmbed {
	embed := discordgo.MessageEmbed{
		Title:       a.Title,
		Type:        discordgo.EmbedTypeRich,
		Description: a.Description,
		Color:       a.Color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: a.Footer,
		},
	}
	if a.Banner != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: a.Banner}
	}
	return &embed
}
