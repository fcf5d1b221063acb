package guildmodels

import "time"

//MemberProfile is a snapshot of a guild member taken when a welcome is generated. It is never stored.
type MemberProfile struct {
	DisplayName string
	//Mention is the form substituted for the {member} placeholder
	Mention          string
	ID               string
	AvatarURL        string
	AvatarBytes      []byte
	AccountCreatedAt time.Time
	JoinedAt         time.Time

	CommunityName        string
	CommunityMemberCount int
}
