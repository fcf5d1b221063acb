package settings

import (
	"context"

	"github.com/callummance/welcomer/guildmodels"
)

//Backend is a durable home for guild overrides. Swapping backends requires no change to Store callers.
type Backend interface {
	//LoadOverrides returns every stored override keyed by guild ID
	LoadOverrides(ctx context.Context) (map[string]guildmodels.CommunitySettings, error)
	//SaveOverride stores the complete override record for a guild, replacing any previous one
	SaveOverride(ctx context.Context, guildID string, s guildmodels.CommunitySettings) error
}

//MemoryBackend keeps nothing beyond what the Store itself holds; overrides are lost when the process exits.
type MemoryBackend struct{}

//LoadOverrides always returns no overrides
func (MemoryBackend) LoadOverrides(context.Context) (map[string]guildmodels.CommunitySettings, error) {
	return nil, nil
}

//SaveOverride is a no-op
func (MemoryBackend) SaveOverride(context.Context, string, guildmodels.CommunitySettings) error {
	return nil
}

//ChannelResolver resolves a user supplied channel reference to the ID of a channel within the given guild
type ChannelResolver interface {
	ResolveChannel(guildID string, channelRef string) (string, error)
}
