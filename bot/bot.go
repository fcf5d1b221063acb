package bot

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/callummance/welcomer/card"
	"github.com/callummance/welcomer/db"
	"github.com/callummance/welcomer/discord"
	"github.com/callummance/welcomer/settings"
	"github.com/callummance/welcomer/welcome"
	"github.com/sirupsen/logrus"
)

const (
	storageBackendEnvVar  string = "WELCOMER_STORAGE_BACKEND"
	cardBoldFontEnvVar    string = "WELCOMER_CARD_BOLD_FONT"
	cardRegularFontEnvVar string = "WELCOMER_CARD_REGULAR_FONT"
)

//Storage backend names
const (
	storageMemory    string = "memory"
	storageFile      string = "file"
	storageRethinkDB string = "rethinkdb"
)

var (
	_ settings.Backend         = (*db.Connection)(nil)
	_ settings.Backend         = (*db.FileStore)(nil)
	_ settings.ChannelResolver = (*WelcomeBot)(nil)
	_ welcome.AvatarFetcher    = (*discord.EventSource)(nil)
)

//WelcomeBot represents an instance of the discord bot, containing handles to the various external connections.
type WelcomeBot struct {
	DiscordConnection *discord.EventSource
	DBConnection      *db.Connection
	Settings          *settings.Store
	Greeter           *welcome.Greeter
}

//Init creates a new WelcomeBot instance
func Init() (*WelcomeBot, error) {
	var res WelcomeBot

	//Set up settings storage
	backend, err := res.openStorage()
	if err != nil {
		logrus.Errorf("Cannot start bot due to error initializing settings storage: %v", err)
		return nil, err
	}
	res.Settings = settings.NewStore(backend, &res)
	if err := res.Settings.Load(context.Background()); err != nil {
		logrus.Errorf("Cannot start bot due to error loading settings: %v", err)
		res.closeStorage()
		return nil, err
	}

	renderer := card.NewRenderer(card.FontConfig{
		BoldPath:    os.Getenv(cardBoldFontEnvVar),
		RegularPath: os.Getenv(cardRegularFontEnvVar),
	})

	//Start discord connection
	disc, err := discord.NewEventSource(&res)
	if err != nil {
		logrus.Errorf("Cannot start bot due to error initializing discord connection: %v", err)
		res.closeStorage()
		return nil, err
	}
	res.DiscordConnection = disc
	res.Greeter = welcome.NewGreeter(res.Settings, renderer, disc, discordOutbox{bot: &res})
	if err := disc.Open(); err != nil {
		logrus.Errorf("Cannot start bot due to error opening discord connection: %v", err)
		res.closeStorage()
		return nil, err
	}

	return &res, nil
}

func (b *WelcomeBot) openStorage() (settings.Backend, error) {
	backendName := strings.ToLower(os.Getenv(storageBackendEnvVar))
	switch backendName {
	case "", storageMemory:
		logrus.Warn("Using in-memory settings storage; settings will be lost on restart.")
		return settings.MemoryBackend{}, nil
	case storageFile:
		return db.NewFileStore(), nil
	case storageRethinkDB:
		conn, err := db.Init()
		if err != nil {
			return nil, err
		}
		b.DBConnection = conn
		return conn, nil
	default:
		return nil, fmt.Errorf("unknown storage backend `%v`, must be one of %v, %v or %v", backendName, storageMemory, storageFile, storageRethinkDB)
	}
}

func (b *WelcomeBot) closeStorage() {
	if b.DBConnection != nil {
		b.DBConnection.Close()
	}
}

//BotAddURL generates a URL that can be used to add the bot to a server
func (b *WelcomeBot) BotAddURL() (*url.URL, error) {
	return b.DiscordConnection.BotAddURL()
}

//DiscordSession returns a handle to the underlying discord session
func (b *WelcomeBot) DiscordSession() *discordgo.Session {
	return b.DiscordConnection.Session()
}

//Close cleanly terminates the bot instance
func (b *WelcomeBot) Close() {
	logrus.Info("Terminating bot...")
	b.DiscordConnection.Close()
	b.closeStorage()
}
