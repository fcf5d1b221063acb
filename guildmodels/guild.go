package guildmodels

//CommunitySettings contains the welcome configuration for a discord guild managed by this bot.
//All fields are value types, so copying the struct produces a complete, independent record.
type CommunitySettings struct {
	GuildID            string       `json:"guild_id" gorethink:"id"`
	WelcomeChannel     string       `json:"welcome_channel" gorethink:"welcome_channel"`
	WelcomeTitle       string       `json:"welcome_title" gorethink:"welcome_title"`
	WelcomeDescription string       `json:"welcome_description" gorethink:"welcome_description"`
	WelcomeBanner      string       `json:"welcome_banner" gorethink:"welcome_banner"`
	WelcomeFooter      string       `json:"welcome_footer" gorethink:"welcome_footer"`
	WelcomeColor       int          `json:"welcome_color" gorethink:"welcome_color"`
	CardTemplate       CardTemplate `json:"profile_template" gorethink:"profile_template"`
}

//MaxColor is the largest value a 24-bit RGB colour may take
const MaxColor int = 0xFFFFFF

//DefaultSettings returns the settings used by any guild which has not overridden them. A fresh value is returned on
//every call so the defaults themselves can never be modified.
func DefaultSettings() CommunitySettings {
	return CommunitySettings{
		WelcomeChannel:     "",
		WelcomeTitle:       "Welcome to {server}",
		WelcomeDescription: "Enjoy your stay!",
		WelcomeBanner:      "",
		WelcomeFooter:      "Member #{member_count}",
		WelcomeColor:       0x00ff00,
		CardTemplate:       DefaultCardTemplate(),
	}
}

//DefaultGuild returns the default settings attached to a given guild ID
func DefaultGuild(gid string) CommunitySettings {
	res := DefaultSettings()
	res.GuildID = gid
	return res
}

//HasWelcomeChannel returns true iff announcements should be sent for this guild
func (s *CommunitySettings) HasWelcomeChannel() bool {
	return s.WelcomeChannel != ""
}
