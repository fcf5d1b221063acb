package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/callummance/welcomer/guildmodels"
	"github.com/callummance/welcomer/settings"
	"github.com/callummance/welcomer/templating"
	"github.com/sirupsen/logrus"
)

const discordDevUIDEnvVar string = "WELCOMER_DISCORD_DEV_UID"

const (
	setWelcomeChannelSyntax     string = "`/setwelcomechannel #channel`"
	setWelcomeTitleSyntax       string = "`/setwelcometitle Welcome to {server}`"
	setWelcomeDescriptionSyntax string = "`/setwelcomedescription Say hi to {member}!`"
	setWelcomeBannerSyntax      string = "`/setwelcomebanner https://example.com/banner.png` or `/setwelcomebanner none`"
	setWelcomeFooterSyntax      string = "`/setwelcomefooter Member #{member_count}`"
	setWelcomeColorSyntax       string = "`/setwelcomecolor #00ff00`"
	setProfileTemplateSyntax    string = "`/setprofiletemplate <element> <content>`\n" +
		"<element> is one of: title, subtitle, description, banner, footer, color"
)

//setterFunc is the signature shared by the settings store's single-value setters
type setterFunc func(ctx context.Context, guildID string, value string) (guildmodels.CommunitySettings, error)

//runSetter validates the presence of an argument, applies a setter and converts the outcome into a Response.
//If checkPlaceholders is set, placeholders which will never be substituted are reported as a partial success.
func (b *WelcomeBot) runSetter(ctx context.Context, msg *discordgo.Message, command string, syntax string, args string, setter setterFunc, checkPlaceholders bool, describe func(guildmodels.CommunitySettings) string) Response {
	if strings.TrimSpace(args) == "" {
		return ResponseSyntaxError{
			command:     command,
			commandMsg:  msg.Content,
			description: "You need to provide a value",
			syntax:      syntax,
			timestamp:   time.Now(),
		}
	}
	updated, err := setter(ctx, msg.GuildID, args)
	if err != nil {
		return settingErrorResponse(command, msg.Content, err)
	}
	description := describe(updated)
	if checkPlaceholders {
		if unknown := templating.UnknownPlaceholders(args); len(unknown) > 0 {
			return ResponsePartialSuccess{
				command:     command,
				commandMsg:  msg.Content,
				description: description + "\nSome placeholders aren't recognised and will be shown as written.",
				data: []embedField{
					{"Unrecognised placeholders", strings.Join(unknown, ", ")},
					{"Available placeholders", placeholderList()},
				},
				timestamp: time.Now(),
			}
		}
	}
	return ResponseSuccess{
		command:     command,
		commandMsg:  msg.Content,
		description: description,
		timestamp:   time.Now(),
	}
}

func settingErrorResponse(command string, commandMsg string, err error) Response {
	var validationErr *settings.ValidationError
	if errors.As(err, &validationErr) {
		return ResponseValidationError{
			command:    command,
			commandMsg: commandMsg,
			err:        validationErr,
			timestamp:  time.Now(),
		}
	}
	return ResponseInternalError{
		command:     command,
		commandMsg:  commandMsg,
		description: err.Error(),
		timestamp:   time.Now(),
	}
}

func placeholderList() string {
	names := make([]string, len(templating.Placeholders))
	for i, p := range templating.Placeholders {
		names[i] = fmt.Sprintf("{%v}", p)
	}
	return strings.Join(names, ", ")
}

//syntax: /setwelcomechannel #channel
func (b *WelcomeBot) setWelcomeChannel(ctx context.Context, msg *discordgo.Message, args string) Response {
	return b.runSetter(ctx, msg, "setwelcomechannel", setWelcomeChannelSyntax, args, b.Settings.SetWelcomeChannel, false,
		func(cs guildmodels.CommunitySettings) string {
			return fmt.Sprintf("Welcome channel set to <#%v>", cs.WelcomeChannel)
		})
}

//syntax: /setwelcometitle <title>
func (b *WelcomeBot) setWelcomeTitle(ctx context.Context, msg *discordgo.Message, args string) Response {
	return b.runSetter(ctx, msg, "setwelcometitle", setWelcomeTitleSyntax, args, b.Settings.SetWelcomeTitle, true,
		func(cs guildmodels.CommunitySettings) string {
			return fmt.Sprintf("Welcome title set to: %v", cs.WelcomeTitle)
		})
}

//syntax: /setwelcomedescription <description>
func (b *WelcomeBot) setWelcomeDescription(ctx context.Context, msg *discordgo.Message, args string) Response {
	return b.runSetter(ctx, msg, "setwelcomedescription", setWelcomeDescriptionSyntax, args, b.Settings.SetWelcomeDescription, true,
		func(cs guildmodels.CommunitySettings) string {
			return fmt.Sprintf("Welcome description set to: %v", cs.WelcomeDescription)
		})
}

//syntax: /setwelcomebanner <url|none>
func (b *WelcomeBot) setWelcomeBanner(ctx context.Context, msg *discordgo.Message, args string) Response {
	return b.runSetter(ctx, msg, "setwelcomebanner", setWelcomeBannerSyntax, args, b.Settings.SetWelcomeBanner, false,
		func(cs guildmodels.CommunitySettings) string {
			if cs.WelcomeBanner == "" {
				return "Welcome banner removed"
			}
			return "Welcome banner set to the provided URL"
		})
}

//syntax: /setwelcomefooter <footer>
func (b *WelcomeBot) setWelcomeFooter(ctx context.Context, msg *discordgo.Message, args string) Response {
	return b.runSetter(ctx, msg, "setwelcomefooter", setWelcomeFooterSyntax, args, b.Settings.SetWelcomeFooter, true,
		func(cs guildmodels.CommunitySettings) string {
			return fmt.Sprintf("Welcome footer set to: %v", cs.WelcomeFooter)
		})
}

//syntax: /setwelcomecolor <#hex>
func (b *WelcomeBot) setWelcomeColor(ctx context.Context, msg *discordgo.Message, args string) Response {
	return b.runSetter(ctx, msg, "setwelcomecolor", setWelcomeColorSyntax, args, b.Settings.SetWelcomeColor, false,
		func(cs guildmodels.CommunitySettings) string {
			return fmt.Sprintf("Welcome color set to: %v", settings.FormatHexColor(cs.WelcomeColor))
		})
}

//syntax: /setprofiletemplate <element> <content>
func (b *WelcomeBot) setProfileTemplate(ctx context.Context, msg *discordgo.Message, args string) Response {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return ResponseSyntaxError{
			command:     "setprofiletemplate",
			commandMsg:  msg.Content,
			description: "You need to provide both an element and its content",
			syntax:      setProfileTemplateSyntax,
			timestamp:   time.Now(),
		}
	}
	element, content := parts[0], strings.TrimSpace(parts[1])
	setter := func(ctx context.Context, guildID string, value string) (guildmodels.CommunitySettings, error) {
		return b.Settings.SetCardField(ctx, guildID, element, value)
	}
	return b.runSetter(ctx, msg, "setprofiletemplate", setProfileTemplateSyntax, content, setter, true,
		func(guildmodels.CommunitySettings) string {
			return fmt.Sprintf("Profile %v set to: %v", strings.ToLower(element), content)
		})
}

func (b *WelcomeBot) showConfig(msg *discordgo.Message) Response {
	return ResponseConfig{
		settings:    b.Settings.GetOrDefault(msg.GuildID),
		hasOverride: b.Settings.HasOverride(msg.GuildID),
		timestamp:   time.Now(),
	}
}

//welcomeTest runs the welcome flow for the sender of the message
func (b *WelcomeBot) welcomeTest(ctx context.Context, msg *discordgo.Message) Response {
	profile, err := b.memberProfile(msg.GuildID, msg.Author, msg.Member)
	if err != nil {
		return ResponseInternalError{
			command:     "welcometest",
			commandMsg:  msg.Content,
			description: "Could not look up this server",
			data:        []embedField{{"Error", err.Error()}},
			timestamp:   time.Now(),
		}
	}
	outcome := b.Greeter.Greet(ctx, msg.GuildID, msg.ChannelID, profile)
	if outcome.AnnouncementErr != nil {
		return ResponseInternalError{
			command:     "welcometest",
			commandMsg:  msg.Content,
			description: "Failed to send the welcome announcement",
			data:        []embedField{{"Error", outcome.AnnouncementErr.Error()}},
			timestamp:   time.Now(),
		}
	} else if outcome.CardErr != nil {
		return ResponsePartialSuccess{
			command:     "welcometest",
			commandMsg:  msg.Content,
			description: fmt.Sprintf("Sent the welcome announcement to <#%v>, but no profile card could be made.", outcome.ChannelID),
			data:        []embedField{{"Card error", outcome.CardErr.Error()}},
			timestamp:   time.Now(),
		}
	}
	return ResponseSuccess{
		command:     "welcometest",
		commandMsg:  msg.Content,
		description: fmt.Sprintf("Sent a test welcome to <#%v>", outcome.ChannelID),
		timestamp:   time.Now(),
	}
}

/**************************
/     Utility Functions
/**************************/

func (b *WelcomeBot) isFromAdmin(user *discordgo.User, guildID string, channelID string) (bool, error) {
	//Works if from dev
	if isDev(user.ID) {
		return true, nil
	}
	//Works if from server owner
	guild, err := b.DiscordConnection.GuildInfo(guildID)
	if err != nil {
		logrus.Warnf("Failed to fetch guild object from Discord API when checking if user %v is admin for server %v", user.ID, guildID)
		return false, err
	} else if guild.OwnerID == user.ID {
		return true, nil
	}
	//Works if user has the administrator permission
	perms, err := b.DiscordSession().UserChannelPermissions(user.ID, channelID)
	if err != nil {
		logrus.Warnf("Failed to fetch permissions of user %v in channel %v", user.ID, channelID)
		return false, err
	}
	return perms&discordgo.PermissionAdministrator != 0, nil
}

func isDev(userID string) bool {
	devUID, exists := os.LookupEnv(discordDevUIDEnvVar)
	if !exists {
		return false
	}
	return userID == devUID
}
