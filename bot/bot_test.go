package bot

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/callummance/welcomer/discord"
	"github.com/callummance/welcomer/settings"
	"github.com/callummance/welcomer/welcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResolver struct{}

func (testResolver) ResolveChannel(_ string, ref string) (string, error) {
	return "999", nil
}

func newTestBot() *WelcomeBot {
	return &WelcomeBot{Settings: settings.NewStore(nil, testResolver{})}
}

func testMessage(content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   content,
		Author:    &discordgo.User{ID: "u1", Username: "admin"},
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		content string
		command string
		args    string
		ok      bool
	}{
		{";setwelcometitle Welcome to {server}", "setwelcometitle", "Welcome to {server}", true},
		{"/SetWelcomeColor   #00ff00  ", "setwelcomecolor", "#00ff00", true},
		{";showconfig", "showconfig", "", true},
		{";setwelcomefooter line one\nline two", "setwelcomefooter", "line one\nline two", true},
		{"hello there", "", "", false},
		{"", "", "", false},
		{"!addadminrole", "", "", false},
	}
	for _, tc := range tests {
		command, args, ok := parseCommand(tc.content)
		assert.Equal(t, tc.ok, ok, tc.content)
		assert.Equal(t, tc.command, command, tc.content)
		assert.Equal(t, tc.args, args, tc.content)
	}
}

func TestMatchChannel(t *testing.T) {
	channels := []*discordgo.Channel{
		{ID: "111111111111111111", Name: "general", Type: discordgo.ChannelTypeGuildText},
		{ID: "222222222222222222", Name: "welcome", Type: discordgo.ChannelTypeGuildText},
		{ID: "333333333333333333", Name: "voice", Type: discordgo.ChannelTypeGuildVoice},
	}
	tests := map[string]string{
		"<#222222222222222222>": "222222222222222222",
		"111111111111111111":    "111111111111111111",
		"#Welcome":              "222222222222222222",
		"general":               "111111111111111111",
		"voice":                 "",
		"<#444444444444444444>": "",
	}
	for ref, want := range tests {
		matches := channelRegex.FindStringSubmatch(ref)
		require.NotNil(t, matches, ref)
		got := matchChannel(channels, matches)
		if want == "" {
			assert.Nil(t, got, ref)
		} else {
			require.NotNil(t, got, ref)
			assert.Equal(t, want, got.ID, ref)
		}
	}
	assert.Nil(t, channelRegex.FindStringSubmatch("two words"))
}

func TestSetWelcomeTitleCommand(t *testing.T) {
	b := newTestBot()
	ctx := context.Background()

	resp := b.setWelcomeTitle(ctx, testMessage(";setwelcometitle Hi {member}"), "Hi {member}")
	assert.IsType(t, ResponseSuccess{}, resp)
	assert.Equal(t, "Hi {member}", b.Settings.GetOrDefault("g1").WelcomeTitle)

	resp = b.setWelcomeTitle(ctx, testMessage(";setwelcometitle Hi {user}"), "Hi {user}")
	partial, ok := resp.(ResponsePartialSuccess)
	require.True(t, ok)
	assert.Equal(t, "{user}", partial.data[0].value)
	assert.Equal(t, "Hi {user}", b.Settings.GetOrDefault("g1").WelcomeTitle)

	resp = b.setWelcomeTitle(ctx, testMessage(";setwelcometitle"), "")
	assert.IsType(t, ResponseSyntaxError{}, resp)
}

func TestSetWelcomeColorCommand(t *testing.T) {
	b := newTestBot()
	ctx := context.Background()

	resp := b.setWelcomeColor(ctx, testMessage(";setwelcomecolor #ff0000"), "#ff0000")
	require.IsType(t, ResponseSuccess{}, resp)
	assert.Contains(t, resp.DiscordResponse().Embed.Description, "#ff0000")

	resp = b.setWelcomeColor(ctx, testMessage(";setwelcomecolor bad"), "bad")
	require.IsType(t, ResponseValidationError{}, resp)
	assert.Contains(t, resp.DiscordResponse().Embed.Description, "Nothing has been changed")
	assert.Equal(t, 0xff0000, b.Settings.GetOrDefault("g1").WelcomeColor)
}

func TestSetWelcomeChannelCommand(t *testing.T) {
	b := newTestBot()
	resp := b.setWelcomeChannel(context.Background(), testMessage(";setwelcomechannel #welcome"), "#welcome")
	require.IsType(t, ResponseSuccess{}, resp)
	assert.Equal(t, "999", b.Settings.GetOrDefault("g1").WelcomeChannel)
	assert.Contains(t, resp.DiscordResponse().Embed.Description, "<#999>")
}

func TestSetProfileTemplateCommand(t *testing.T) {
	b := newTestBot()
	ctx := context.Background()

	resp := b.setProfileTemplate(ctx, testMessage(""), "subtitle  The best server")
	require.IsType(t, ResponseSuccess{}, resp)
	assert.Equal(t, "The best server", b.Settings.GetOrDefault("g1").CardTemplate.Subtitle)

	resp = b.setProfileTemplate(ctx, testMessage(""), "avatar https://example.com/a.png")
	require.IsType(t, ResponseValidationError{}, resp)

	resp = b.setProfileTemplate(ctx, testMessage(""), "color")
	require.IsType(t, ResponseSyntaxError{}, resp)

	resp = b.setProfileTemplate(ctx, testMessage(""), "COLOR #010203")
	require.IsType(t, ResponseSuccess{}, resp)
	assert.Equal(t, 0x010203, b.Settings.GetOrDefault("g1").CardTemplate.Color)
}

func TestShowConfig(t *testing.T) {
	b := newTestBot()
	ctx := context.Background()

	embed := b.showConfig(testMessage(";showconfig")).DiscordResponse().Embed
	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, notSet, fields["Welcome Channel"])
	assert.Equal(t, notSet, fields["Welcome Banner"])
	assert.Equal(t, "#00ff00", fields["Welcome Color"])
	assert.Equal(t, "Using default settings", embed.Footer.Text)

	_, err := b.Settings.SetWelcomeChannel(ctx, "g1", "#welcome")
	require.NoError(t, err)
	embed = b.showConfig(testMessage(";showconfig")).DiscordResponse().Embed
	assert.Equal(t, "<#999>", embed.Fields[0].Value)
	assert.Equal(t, "Using custom settings", embed.Footer.Text)
}

func TestAnnouncementEmbed(t *testing.T) {
	embed := announcementEmbed(welcome.Announcement{
		Title:       "Welcome to Acme",
		Description: "Enjoy your stay!",
		Color:       0x00ff00,
		Footer:      "Member #3",
	})
	assert.Equal(t, "Welcome to Acme", embed.Title)
	assert.Equal(t, 0x00ff00, embed.Color)
	assert.Equal(t, "Member #3", embed.Footer.Text)
	assert.Nil(t, embed.Image)

	embed = announcementEmbed(welcome.Announcement{Banner: "https://example.com/b.png"})
	require.NotNil(t, embed.Image)
	assert.Equal(t, "https://example.com/b.png", embed.Image.URL)
}

func TestNewMemberProfile(t *testing.T) {
	user := &discordgo.User{ID: "175928847299117063", Username: "bob", Avatar: "abc"}
	member := &discordgo.Member{JoinedAt: discordgo.Timestamp("2021-03-04T17:05:00+00:00")}
	profile := newMemberProfile(discord.GuildInfo{Name: "Acme", MemberCount: 12}, user, member)

	assert.Equal(t, "bob", profile.DisplayName)
	assert.Equal(t, "<@175928847299117063>", profile.Mention)
	assert.Equal(t, "Acme", profile.CommunityName)
	assert.Equal(t, 12, profile.CommunityMemberCount)
	assert.Contains(t, profile.AvatarURL, "abc")
	assert.Equal(t, 2016, profile.AccountCreatedAt.UTC().Year())
	assert.True(t, time.Date(2021, time.March, 4, 17, 5, 0, 0, time.UTC).Equal(profile.JoinedAt))
	assert.Empty(t, profile.AvatarBytes)
}

func TestInternalErrorResponseKeepsData(t *testing.T) {
	r := ResponseInternalError{
		command:     "welcometest",
		commandMsg:  ";welcometest",
		description: "boom",
		data:        []embedField{{"Detail", "x"}},
		timestamp:   time.Now(),
	}
	embed := r.DiscordResponse().Embed
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Error", embed.Fields[0].Name)
	assert.Len(t, r.data, 1)
}

func TestHelpListsCommands(t *testing.T) {
	embed := ResponseHelp{timestamp: time.Now()}.DiscordResponse().Embed
	require.Len(t, embed.Fields, 2)
	for _, cmd := range []string{"setwelcomechannel", "setprofiletemplate", "showconfig", "welcometest"} {
		assert.Contains(t, embed.Fields[0].Value+embed.Fields[1].Value, cmd)
	}
}

func TestEmbedFieldsTruncateOnCharacters(t *testing.T) {
	long := strings.Repeat("é", 1200)
	fields := toEmbedFields([]embedField{{"Error", long}, {"Short", "é"}, {"Empty", " "}})
	require.Len(t, fields, 3)

	assert.True(t, utf8.ValidString(fields[0].Value))
	assert.Equal(t, maxEmbedFieldValue, utf8.RuneCountInString(fields[0].Value))
	assert.True(t, strings.HasSuffix(fields[0].Value, "..."))
	assert.Equal(t, "é", fields[1].Value)
	assert.Equal(t, notSet, fields[2].Value)

	//A value exactly at the limit is kept whole
	exact := strings.Repeat("é", maxEmbedFieldValue)
	assert.Equal(t, exact, toEmbedFields([]embedField{{"Exact", exact}})[0].Value)
}
