package discord

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

//avatarSize is the edge length requested from the discord CDN; the card scales it down further
const avatarSize string = "256"

//maxAvatarBytes caps how much of an avatar response is read
const maxAvatarBytes int64 = 8 << 20

//GuildInfo is the guild data needed to welcome a member
type GuildInfo struct {
	Name        string
	MemberCount int
	OwnerID     string
}

//GuildInfo returns the name and size of a guild, preferring the gateway state cache over a REST lookup
func (e *EventSource) GuildInfo(guildID string) (GuildInfo, error) {
	s := e.Session()
	guild, err := s.State.Guild(guildID)
	if err != nil {
		logrus.Debugf("Guild %v not in state cache (%v), fetching from discord api", guildID, err)
		guild, err = s.Guild(guildID)
		if err != nil {
			logrus.Warnf("Failed to fetch guild %v from discord api: %v", guildID, err)
			return GuildInfo{}, err
		}
	}
	return GuildInfo{
		Name:        guild.Name,
		MemberCount: guild.MemberCount,
		OwnerID:     guild.OwnerID,
	}, nil
}

//GuildChannels returns the channels of a guild
func (e *EventSource) GuildChannels(guildID string) ([]*discordgo.Channel, error) {
	s := e.Session()
	if guild, err := s.State.Guild(guildID); err == nil && len(guild.Channels) > 0 {
		return guild.Channels, nil
	}
	return s.GuildChannels(guildID)
}

//AvatarURL returns the CDN URL of a user's avatar, or of their default avatar if they have not set one
func AvatarURL(user *discordgo.User) string {
	return user.AvatarURL(avatarSize)
}

//AccountCreated returns the time a user account was created, derived from its snowflake ID
func AccountCreated(user *discordgo.User) time.Time {
	created, err := discordgo.SnowflakeTimestamp(user.ID)
	if err != nil {
		logrus.Warnf("Failed to read creation time from user id %v: %v", user.ID, err)
		return time.Time{}
	}
	return created
}

//JoinedAt returns the time a member joined their guild
func JoinedAt(member *discordgo.Member) time.Time {
	if member == nil || member.JoinedAt == "" {
		return time.Now()
	}
	joined, err := member.JoinedAt.Parse()
	if err != nil {
		logrus.Warnf("Failed to parse join time %q: %v", member.JoinedAt, err)
		return time.Now()
	}
	return joined
}

//FetchAvatar downloads the encoded avatar image at avatarURL using the session's HTTP client
func (e *EventSource) FetchAvatar(ctx context.Context, avatarURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, avatarURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.Session().Client.Do(req)
	if err != nil {
		logrus.Warnf("Failed to fetch avatar %v: %v", avatarURL, err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching avatar %v returned status %v", avatarURL, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxAvatarBytes))
}
