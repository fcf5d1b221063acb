package bot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

//Matches `;command args` or `/command args`, with args possibly spanning several lines
var commandRegex = regexp.MustCompile(`(?s)^\s*[;/](\w+)(?:\s+(.*?))?\s*$`)

//parseCommand splits a message into its lower-cased command name and argument string
func parseCommand(content string) (string, string, bool) {
	matches := commandRegex.FindStringSubmatch(content)
	if matches == nil {
		return "", "", false
	}
	return strings.ToLower(matches[1]), matches[2], true
}

//Allows #mentions, raw channel IDs or channel names with or without a leading #
var channelRegex = regexp.MustCompile(`^\s*(?:<#(\d+)>|(\d{17,20})|#?([\w-]+))\s*$`)

//ResolveChannel finds the text channel within a guild that a channel string refers to
func (b *WelcomeBot) ResolveChannel(guildID string, channelStr string) (string, error) {
	matches := channelRegex.FindStringSubmatch(channelStr)
	if matches == nil {
		return "", fmt.Errorf("`%v` is not a channel mention, ID or name", channelStr)
	}
	guildChannels, err := b.DiscordConnection.GuildChannels(guildID)
	if err != nil {
		logrus.Warnf("Failed to fetch guild channels for guild id %v", guildID)
		return "", fmt.Errorf("could not look up channels: %w", err)
	}
	channel := matchChannel(guildChannels, matches)
	if channel == nil {
		return "", fmt.Errorf("no text channel matching `%v` exists in this server", strings.TrimSpace(channelStr))
	}
	return channel.ID, nil
}

func matchChannel(guildChannels []*discordgo.Channel, matches []string) *discordgo.Channel {
	for _, ch := range guildChannels {
		if ch.Type != discordgo.ChannelTypeGuildText && ch.Type != discordgo.ChannelTypeGuildNews {
			continue
		}
		switch {
		case matches[1] != "":
			//We have a channel mention
			if ch.ID == matches[1] {
				return ch
			}
		case matches[2] != "":
			//We have a channel id, though a channel could also be named with digits
			if ch.ID == matches[2] || ch.Name == matches[2] {
				return ch
			}
		case matches[3] != "":
			//We have a channel name
			if strings.EqualFold(ch.Name, matches[3]) {
				return ch
			}
		}
	}
	return nil
}
