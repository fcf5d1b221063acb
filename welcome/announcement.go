package welcome

import (
	"strconv"

	"github.com/callummance/welcomer/guildmodels"
	"github.com/callummance/welcomer/settings"
	"github.com/callummance/welcomer/templating"
)

//Announcement is the platform independent content of a welcome message
type Announcement struct {
	Title       string
	Description string
	Color       int
	//Banner is an image URL, or "" for none
	Banner string
	Footer string
}

//Build fills in a guild's welcome templates for a member
func Build(cs guildmodels.CommunitySettings, member guildmodels.MemberProfile) Announcement {
	fields := templating.Fields{
		templating.Server: member.CommunityName,
		templating.Member: member.Mention,
	}
	footerFields := templating.Fields{
		templating.Server:      member.CommunityName,
		templating.Member:      member.Mention,
		templating.MemberCount: strconv.Itoa(member.CommunityMemberCount),
	}
	return Announcement{
		Title:       templating.Render(cs.WelcomeTitle, fields),
		Description: templating.Render(cs.WelcomeDescription, fields),
		Color:       cs.WelcomeColor,
		Banner:      cs.WelcomeBanner,
		Footer:      templating.Render(cs.WelcomeFooter, footerFields),
	}
}

//Assembler builds announcements from the settings held in a Store
type Assembler struct {
	store *settings.Store
}

//NewAssembler creates an Assembler reading from store
func NewAssembler(store *settings.Store) *Assembler {
	return &Assembler{store: store}
}

//Assemble returns the announcement for a member joining a guild, or nil if the guild has no welcome channel.
func (a *Assembler) Assemble(guildID string, member guildmodels.MemberProfile) *Announcement {
	_, res := a.assemble(guildID, member)
	return res
}

//assemble is Assemble, also returning the settings snapshot the announcement was built from
func (a *Assembler) assemble(guildID string, member guildmodels.MemberProfile) (guildmodels.CommunitySettings, *Announcement) {
	cs := a.store.GetOrDefault(guildID)
	if !cs.HasWelcomeChannel() {
		return cs, nil
	}
	res := Build(cs, member)
	return cs, &res
}
