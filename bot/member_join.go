package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/callummance/welcomer/discord"
	"github.com/callummance/welcomer/guildmodels"
	"github.com/sirupsen/logrus"
)

//HandleMemberJoin sends the welcome announcement and profile card for a member who has just joined a guild
func (b *WelcomeBot) HandleMemberJoin(m *discordgo.GuildMemberAdd) {
	profile, err := b.memberProfile(m.GuildID, m.User, m.Member)
	if err != nil {
		logrus.Errorf("Not welcoming member %v to guild %v as the guild could not be looked up: %v", m.User.ID, m.GuildID, err)
		return
	}
	outcome := b.Greeter.Greet(context.Background(), m.GuildID, "", profile)
	if outcome.Skipped {
		return
	}
	logrus.WithFields(logrus.Fields{
		"guild":        m.GuildID,
		"member":       m.User.ID,
		"channel":      outcome.ChannelID,
		"announcement": outcome.AnnouncementErr == nil,
		"card":         outcome.CardErr == nil,
	}).Info("Welcomed new member.")
}

//memberProfile takes a snapshot of a guild member for the welcome flow. The avatar itself is fetched later.
func (b *WelcomeBot) memberProfile(guildID string, user *discordgo.User, member *discordgo.Member) (guildmodels.MemberProfile, error) {
	guild, err := b.DiscordConnection.GuildInfo(guildID)
	if err != nil {
		return guildmodels.MemberProfile{}, err
	}
	return newMemberProfile(guild, user, member), nil
}

func newMemberProfile(guild discord.GuildInfo, user *discordgo.User, member *discordgo.Member) guildmodels.MemberProfile {
	return guildmodels.MemberProfile{
		DisplayName:          user.Username,
		Mention:              user.Mention(),
		ID:                   user.ID,
		AvatarURL:            discord.AvatarURL(user),
		AccountCreatedAt:     discord.AccountCreated(user),
		JoinedAt:             discord.JoinedAt(member),
		CommunityName:        guild.Name,
		CommunityMemberCount: guild.MemberCount,
	}
}
