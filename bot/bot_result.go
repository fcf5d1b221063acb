package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/callummance/welcomer/guildmodels"
	"github.com/callummance/welcomer/settings"
	"github.com/sirupsen/logrus"
)

const (
	successMessageColour int = 0x28bd00
	warnMessageColour    int = 0xbdb900
	errorMessageColour   int = 0xbd1b00
	infoMessageColour    int = 0x3498db
)

//notSet is shown in place of optional settings which have no value
const notSet string = "Not set"

//Response represents the result of a command which can be both communicated over discord and written to the log.
type Response interface {
	DiscordResponse() *discordgo.MessageSend
	WriteToLog()
}

//ResponseSuccess will be returned when a command has been successfully completed
type ResponseSuccess struct {
	//The base command name
	command string
	//The entire text contents of the message
	commandMsg string
	//A human-readable description of what was done
	description string
	//The time the success was logged at
	timestamp time.Time
}

//DiscordResponse builds a MessageSend object which can be sent back to whoever sent a command message.
func (r ResponseSuccess) DiscordResponse() *discordgo.MessageSend {
	description := r.description
	if description == "" {
		description = fmt.Sprintf("Completed %v command successfully!", r.command)
	}
	embed := discordgo.MessageEmbed{
		Title:       "Success! \\o/",
		Type:        discordgo.EmbedTypeRich,
		Description: description,
		Timestamp:   r.timestamp.Format(time.RFC3339),
		Color:       successMessageColour,
		Footer:      logIDFooter(r.timestamp),
	}
	return &discordgo.MessageSend{Embed: &embed}
}

//WriteToLog dumps data on a discord command response to the log
func (r ResponseSuccess) WriteToLog() {
	logrus.Infof("%v Completed command %v successfully.", logLineLabel(r.timestamp), r.commandMsg)
}

//ResponsePartialSuccess will be returned when a command has executed but with issues
type ResponsePartialSuccess struct {
	//The base command name
	command string
	//The entire text contents of the message
	commandMsg string
	//A human-readable description of the issue
	description string
	//Fields which should be included in the embed
	data []embedField
	//The time the success was logged at
	timestamp time.Time
}

//DiscordResponse builds a MessageSend object which can be sent back to whoever sent a command message.
func (r ResponsePartialSuccess) DiscordResponse() *discordgo.MessageSend {
	description := fmt.Sprintf("Completed %v command but with issues: \n%v", r.command, r.description)
	embed := discordgo.MessageEmbed{
		Title:       "Partial success...",
		Type:        discordgo.EmbedTypeRich,
		Description: description,
		Timestamp:   r.timestamp.Format(time.RFC3339),
		Color:       warnMessageColour,
		Footer:      logIDFooter(r.timestamp),
		Fields:      toEmbedFields(r.data),
	}
	return &discordgo.MessageSend{Embed: &embed}
}

//WriteToLog dumps data on a discord command response to the log
func (r ResponsePartialSuccess) WriteToLog() {
	logrus.Infof("%v Completed command %v but with issues: %v %v.", logLineLabel(r.timestamp), r.commandMsg, r.description, r.data)
}

//ResponseSyntaxError will be returned when the user's command could not be understood
type ResponseSyntaxError struct {
	//The base command name
	command string
	//The entire text contents of the message
	commandMsg string
	//A human-readable description of the issue
	description string
	//A description of the correct syntax
	syntax string
	//The time the error was logged at
	timestamp time.Time
}

//DiscordResponse builds a MessageSend object which can be sent back to whoever sent a command message.
func (r ResponseSyntaxError) DiscordResponse() *discordgo.MessageSend {
	description := fmt.Sprintf("Sorry, but there was a problem with the data you supplied for the %v command: \n%v", r.command, r.description)
	embed := discordgo.MessageEmbed{
		Title:       "Uh-oh, there was something wrong with that command",
		Type:        discordgo.EmbedTypeRich,
		Description: description,
		Timestamp:   r.timestamp.Format(time.RFC3339),
		Color:       errorMessageColour,
		Footer:      logIDFooter(r.timestamp),
		Fields: toEmbedFields([]embedField{
			{"Your command", r.commandMsg},
			{"Correct syntax", r.syntax},
		}),
	}
	return &discordgo.MessageSend{Embed: &embed}
}

//WriteToLog dumps data on a discord command response to the log
func (r ResponseSyntaxError) WriteToLog() {
	logrus.Infof("%v Syntax error in command %v: %v", logLineLabel(r.timestamp), r.commandMsg, r.description)
}

//ResponseValidationError will be returned when a setting was rejected. Nothing will have been changed.
type ResponseValidationError struct {
	//The base command name
	command string
	//The entire text contents of the message
	commandMsg string
	//The rejected input
	err *settings.ValidationError
	//The time the error was logged at
	timestamp time.Time
}

//DiscordResponse builds a MessageSend object which can be sent back to whoever sent a command message.
func (r ResponseValidationError) DiscordResponse() *discordgo.MessageSend {
	description := fmt.Sprintf("I couldn't use `%v` as the %v: %v\nNothing has been changed.", r.err.Value, r.err.Field, r.err.Reason)
	embed := discordgo.MessageEmbed{
		Title:       "Uh-oh, that setting isn't valid",
		Type:        discordgo.EmbedTypeRich,
		Description: description,
		Timestamp:   r.timestamp.Format(time.RFC3339),
		Color:       errorMessageColour,
		Footer:      logIDFooter(r.timestamp),
	}
	return &discordgo.MessageSend{Embed: &embed}
}

//WriteToLog dumps data on a discord command response to the log
func (r ResponseValidationError) WriteToLog() {
	logrus.Infof("%v Rejected setting in command %v: %v", logLineLabel(r.timestamp), r.commandMsg, r.err)
}

//ResponseInternalError will be returned when there was some kind of error within the bot or when communicating with
//APIs
type ResponseInternalError struct {
	//The base command name
	command string
	//The entire text contents of the message
	commandMsg string
	//A human-readable description of the issue
	description string
	//Fields which should be included in the embed
	data []embedField
	//The time the error was logged at
	timestamp time.Time
}

//DiscordResponse builds a MessageSend object which can be sent back to whoever sent a command message.
func (r ResponseInternalError) DiscordResponse() *discordgo.MessageSend {
	description := fmt.Sprintf("Oops! I encountered an unexpected error whilst running your %v command. Please try again later or file a bug report.", r.command)
	fields := append([]embedField{{"Error", r.description}}, r.data...)
	embed := discordgo.MessageEmbed{
		Title:       "Oops, something went wrong ;w;",
		Type:        discordgo.EmbedTypeRich,
		Description: description,
		Timestamp:   r.timestamp.Format(time.RFC3339),
		Color:       errorMessageColour,
		Footer:      logIDFooter(r.timestamp),
		Fields:      toEmbedFields(fields),
	}
	return &discordgo.MessageSend{Embed: &embed}
}

//WriteToLog dumps data on a discord command response to the log
func (r ResponseInternalError) WriteToLog() {
	logrus.Errorf("%v Internal error whilst executing command %v: %v | data: %v", logLineLabel(r.timestamp), r.commandMsg, r.description, r.data)
}

//ResponseNotAllowed will be returned when a user tried to run a command without administrator permissions
type ResponseNotAllowed struct {
	//The base command name
	command string
	//The entire text contents of the message
	commandMsg string
	//A human-readable description of the issue
	description string
	//The time the error was logged at
	timestamp time.Time
}

//DiscordResponse builds a MessageSend object which can be sent back to whoever sent a command message.
func (r ResponseNotAllowed) DiscordResponse() *discordgo.MessageSend {
	embed := discordgo.MessageEmbed{
		Title:       "That's illegal m8",
		Type:        discordgo.EmbedTypeRich,
		Description: "I'm sorry Dave, I can't let you do that...",
		Timestamp:   r.timestamp.Format(time.RFC3339),
		Color:       errorMessageColour,
		Footer:      logIDFooter(r.timestamp),
		Fields: toEmbedFields([]embedField{
			{"Reason", r.description},
			{"Command", r.commandMsg},
		}),
	}
	return &discordgo.MessageSend{Embed: &embed}
}

//WriteToLog dumps data on a discord command response to the log
func (r ResponseNotAllowed) WriteToLog() {
	logrus.Infof("%v Rejected command `%v` as the sender did not have the correct priveliges | description: %v", logLineLabel(r.timestamp), r.commandMsg, r.description)
}

//ResponseConfig shows a guild's current welcome settings
type ResponseConfig struct {
	settings    guildmodels.CommunitySettings
	hasOverride bool
	timestamp   time.Time
}

//DiscordResponse builds a MessageSend object which can be sent back to whoever sent a command message.
func (r ResponseConfig) DiscordResponse() *discordgo.MessageSend {
	cs := r.settings
	channel := notSet
	if cs.HasWelcomeChannel() {
		channel = fmt.Sprintf("<#%v>", cs.WelcomeChannel)
	}
	fields := []embedField{
		{"Welcome Channel", channel},
		{"Welcome Title", cs.WelcomeTitle},
		{"Welcome Description", cs.WelcomeDescription},
		{"Welcome Banner", orNotSet(cs.WelcomeBanner)},
		{"Welcome Footer", cs.WelcomeFooter},
		{"Welcome Color", settings.FormatHexColor(cs.WelcomeColor)},
		{"Profile Title", cs.CardTemplate.Title},
		{"Profile Subtitle", cs.CardTemplate.Subtitle},
		{"Profile Description", cs.CardTemplate.Description},
		{"Profile Footer", cs.CardTemplate.Footer},
	}
	footer := "Using default settings"
	if r.hasOverride {
		footer = "Using custom settings"
	}
	embed := discordgo.MessageEmbed{
		Title:     "Current Welcome Bot Configuration",
		Type:      discordgo.EmbedTypeRich,
		Timestamp: r.timestamp.Format(time.RFC3339),
		Color:     infoMessageColour,
		Footer:    &discordgo.MessageEmbedFooter{Text: footer},
		Fields:    toEmbedFields(fields),
	}
	return &discordgo.MessageSend{Embed: &embed}
}

//WriteToLog dumps data on a discord command response to the log
func (r ResponseConfig) WriteToLog() {
	logrus.Debugf("%v Showed configuration for guild %v", logLineLabel(r.timestamp), r.settings.GuildID)
}

const helpConfigCommands string = "" +
	"`/setwelcomechannel #channel` - Set the welcome channel\n" +
	"`/setwelcometitle Your Title` - Set welcome message title\n" +
	"`/setwelcomedescription Your description` - Set welcome description\n" +
	"`/setwelcomebanner URL` - Set welcome banner image (`none` to remove)\n" +
	"`/setwelcomefooter Your footer` - Set welcome footer\n" +
	"`/setwelcomecolor #hexcolor` - Set welcome color\n" +
	"`/setprofiletemplate element content` - Set profile template elements\n" +
	"  (elements: title, subtitle, description, banner, footer, color)\n" +
	"Placeholders: `{server}`, `{member}`, `{member_count}`"

const helpUtilityCommands string = "" +
	"`/showconfig` - Show current configuration\n" +
	"`/welcometest` - Test the welcome message\n" +
	"`/welcomehelp` - Show this help message"

//ResponseHelp lists the available commands
type ResponseHelp struct {
	timestamp time.Time
}

//DiscordResponse builds a MessageSend object which can be sent back to whoever sent a command message.
func (r ResponseHelp) DiscordResponse() *discordgo.MessageSend {
	embed := discordgo.MessageEmbed{
		Title: "Welcome Bot Help",
		Type:  discordgo.EmbedTypeRich,
		Color: infoMessageColour,
		Fields: toEmbedFields([]embedField{
			{"Configuration Commands (Admin Only)", helpConfigCommands},
			{"Utility Commands", helpUtilityCommands},
		}),
		Footer: &discordgo.MessageEmbedFooter{Text: "Use / or ; prefix for commands"},
	}
	return &discordgo.MessageSend{Embed: &embed}
}

//WriteToLog dumps data on a discord command response to the log
func (r ResponseHelp) WriteToLog() {
	logrus.Debugf("%v Showed help", logLineLabel(r.timestamp))
}

/////////////////////
//Utility Functions//
/////////////////////

//embedField is a single name/value pair shown in a response embed. A slice keeps the fields in order.
type embedField struct {
	name  string
	value string
}

func (f embedField) String() string {
	return fmt.Sprintf("%v=%q", f.name, f.value)
}

func logLineLabel(t time.Time) string {
	return fmt.Sprintf("#%v# | ", t.UnixNano())
}

func logIDFooter(t time.Time) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Log ID: %d", t.UnixNano()),
	}
}

//maxEmbedFieldValue is the longest value, in characters, discord accepts in an embed field
const maxEmbedFieldValue int = 1024

func toEmbedFields(fields []embedField) []*discordgo.MessageEmbedField {
	var res []*discordgo.MessageEmbedField
	for _, f := range fields {
		value := f.value
		if strings.TrimSpace(value) == "" {
			value = notSet
		} else if runes := []rune(value); len(runes) > maxEmbedFieldValue {
			value = string(runes[:maxEmbedFieldValue-3]) + "..."
		}
		res = append(res, &discordgo.MessageEmbedField{
			Name:   f.name,
			Value:  value,
			Inline: false,
		})
	}
	return res
}

func orNotSet(s string) string {
	if s == "" {
		return notSet
	}
	return s
}
