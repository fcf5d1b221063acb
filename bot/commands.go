package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

//HandleMessage is called upon every recieved message. It checks if the message is a command, and executes it.
func (b *WelcomeBot) HandleMessage(msg *discordgo.MessageCreate) {
	command, args, ok := parseCommand(msg.Content)
	if !ok || msg.GuildID == "" {
		return
	}
	ctx := context.Background()

	var result Response
	switch command {
	case "welcomehelp":
		result = ResponseHelp{timestamp: time.Now()}
	case "setwelcomechannel", "setwelcometitle", "setwelcomedescription", "setwelcomebanner", "setwelcomefooter",
		"setwelcomecolor", "setprofiletemplate", "showconfig", "welcometest":
		result = b.runAdminCommand(ctx, command, args, msg.Message)
	default:
		return
	}
	b.respond(msg.Message, result)
}

func (b *WelcomeBot) runAdminCommand(ctx context.Context, command string, args string, msg *discordgo.Message) Response {
	isFromAdmin, err := b.isFromAdmin(msg.Author, msg.GuildID, msg.ChannelID)
	if err != nil {
		logrus.Warnf("Failed to check if message came from admin due to error %v", err)
		return ResponseInternalError{
			command:     command,
			commandMsg:  msg.Content,
			description: "Could not check your permissions",
			data:        []embedField{{"Error", err.Error()}},
			timestamp:   time.Now(),
		}
	} else if !isFromAdmin {
		return ResponseNotAllowed{
			command:     command,
			commandMsg:  msg.Content,
			description: "This command requires the Administrator permission",
			timestamp:   time.Now(),
		}
	}

	switch command {
	case "setwelcomechannel":
		return b.setWelcomeChannel(ctx, msg, args)
	case "setwelcometitle":
		return b.setWelcomeTitle(ctx, msg, args)
	case "setwelcomedescription":
		return b.setWelcomeDescription(ctx, msg, args)
	case "setwelcomebanner":
		return b.setWelcomeBanner(ctx, msg, args)
	case "setwelcomefooter":
		return b.setWelcomeFooter(ctx, msg, args)
	case "setwelcomecolor":
		return b.setWelcomeColor(ctx, msg, args)
	case "setprofiletemplate":
		return b.setProfileTemplate(ctx, msg, args)
	case "showconfig":
		return b.showConfig(msg)
	default:
		return b.welcomeTest(ctx, msg)
	}
}

func (b *WelcomeBot) respond(msg *discordgo.Message, result Response) {
	result.WriteToLog()
	resp := result.DiscordResponse()
	resp.Reference = &discordgo.MessageReference{
		MessageID: msg.ID,
		ChannelID: msg.ChannelID,
		GuildID:   msg.GuildID,
	}
	_, err := b.DiscordSession().ChannelMessageSendComplex(msg.ChannelID, resp)
	if err != nil {
		logrus.Errorf("Failed to send response to command due to error %v", err)
	}
}
