package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/callummance/welcomer/guildmodels"
	"github.com/sirupsen/logrus"
)

//Store holds the per-guild welcome settings. Guilds without an override share the defaults.
type Store struct {
	mu        sync.RWMutex
	overrides map[string]guildmodels.CommunitySettings
	backend   Backend
	channels  ChannelResolver
}

//NewStore creates an empty settings store. A nil backend keeps overrides in memory only.
func NewStore(backend Backend, channels ChannelResolver) *Store {
	if backend == nil {
		backend = MemoryBackend{}
	}
	return &Store{
		overrides: make(map[string]guildmodels.CommunitySettings),
		backend:   backend,
		channels:  channels,
	}
}

//Load replaces the in-memory overrides with those held by the backend
func (s *Store) Load(ctx context.Context) error {
	loaded, err := s.backend.LoadOverrides(ctx)
	if err != nil {
		logrus.Errorf("Failed to load guild settings from backend due to error %v", err)
		return fmt.Errorf("failed to load guild settings: %w", err)
	}
	overrides := make(map[string]guildmodels.CommunitySettings, len(loaded))
	for gid, settings := range loaded {
		settings.GuildID = gid
		overrides[gid] = settings
	}
	s.mu.Lock()
	s.overrides = overrides
	s.mu.Unlock()
	logrus.Infof("Loaded welcome settings for %d guild(s)", len(overrides))
	return nil
}

//GetOrDefault returns a copy of the guild's override if one exists, or of the defaults otherwise.
func (s *Store) GetOrDefault(guildID string) guildmodels.CommunitySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if settings, ok := s.overrides[guildID]; ok {
		return settings
	}
	return guildmodels.DefaultGuild(guildID)
}

//HasOverride returns true iff the guild has customised its settings
func (s *Store) HasOverride(guildID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.overrides[guildID]
	return ok
}

//EnsureOverride returns the guild's override, creating it from the defaults first if needed.
func (s *Store) EnsureOverride(ctx context.Context, guildID string) (guildmodels.CommunitySettings, error) {
	return s.Update(ctx, guildID, func(*guildmodels.CommunitySettings) error { return nil })
}

//Update applies fn to a copy of the guild's current settings (or of the defaults if it has no override yet), saves
//the result to the backend and then publishes it. If fn or the backend returns an error nothing is changed.
func (s *Store) Update(ctx context.Context, guildID string, fn func(*guildmodels.CommunitySettings) error) (guildmodels.CommunitySettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, exists := s.overrides[guildID]
	if !exists {
		next = guildmodels.DefaultGuild(guildID)
	}
	if err := fn(&next); err != nil {
		return s.currentLocked(guildID), err
	}
	next.GuildID = guildID

	if err := s.backend.SaveOverride(ctx, guildID, next); err != nil {
		logrus.Warnf("Failed to save settings for guild %v due to error %v", guildID, err)
		return s.currentLocked(guildID), fmt.Errorf("failed to save settings for guild %v: %w", guildID, err)
	}
	if !exists {
		logrus.Infof("Created settings override for guild %v", guildID)
	}
	s.overrides[guildID] = next
	return next, nil
}

func (s *Store) currentLocked(guildID string) guildmodels.CommunitySettings {
	if settings, ok := s.overrides[guildID]; ok {
		return settings
	}
	return guildmodels.DefaultGuild(guildID)
}

//SetWelcomeChannel sets the channel announcements are posted to. The reference must resolve to a channel in the guild.
func (s *Store) SetWelcomeChannel(ctx context.Context, guildID string, channelRef string) (guildmodels.CommunitySettings, error) {
	if s.channels == nil {
		return s.GetOrDefault(guildID), fmt.Errorf("no channel resolver configured")
	}
	channelID, err := s.channels.ResolveChannel(guildID, channelRef)
	if err != nil {
		return s.GetOrDefault(guildID), &ValidationError{Field: "welcome channel", Value: channelRef, Reason: err.Error()}
	}
	return s.Update(ctx, guildID, func(cs *guildmodels.CommunitySettings) error {
		cs.WelcomeChannel = channelID
		return nil
	})
}

//SetWelcomeTitle sets the announcement title template
func (s *Store) SetWelcomeTitle(ctx context.Context, guildID string, title string) (guildmodels.CommunitySettings, error) {
	return s.Update(ctx, guildID, func(cs *guildmodels.CommunitySettings) error {
		if err := requireText("welcome title", title); err != nil {
			return err
		}
		cs.WelcomeTitle = title
		return nil
	})
}

//SetWelcomeDescription sets the announcement description template
func (s *Store) SetWelcomeDescription(ctx context.Context, guildID string, description string) (guildmodels.CommunitySettings, error) {
	return s.Update(ctx, guildID, func(cs *guildmodels.CommunitySettings) error {
		if err := requireText("welcome description", description); err != nil {
			return err
		}
		cs.WelcomeDescription = description
		return nil
	})
}

//SetWelcomeFooter sets the announcement footer template
func (s *Store) SetWelcomeFooter(ctx context.Context, guildID string, footer string) (guildmodels.CommunitySettings, error) {
	return s.Update(ctx, guildID, func(cs *guildmodels.CommunitySettings) error {
		if err := requireText("welcome footer", footer); err != nil {
			return err
		}
		cs.WelcomeFooter = footer
		return nil
	})
}

//SetWelcomeBanner sets the image shown in announcements. `none` removes it.
func (s *Store) SetWelcomeBanner(ctx context.Context, guildID string, bannerURL string) (guildmodels.CommunitySettings, error) {
	return s.Update(ctx, guildID, func(cs *guildmodels.CommunitySettings) error {
		banner, err := parseBannerURL("welcome banner", bannerURL)
		if err != nil {
			return err
		}
		cs.WelcomeBanner = banner
		return nil
	})
}

//SetWelcomeColor sets the announcement embed colour from a hex string
func (s *Store) SetWelcomeColor(ctx context.Context, guildID string, hex string) (guildmodels.CommunitySettings, error) {
	return s.Update(ctx, guildID, func(cs *guildmodels.CommunitySettings) error {
		color, err := ParseHexColor(hex)
		if err != nil {
			return err
		}
		cs.WelcomeColor = color
		return nil
	})
}

//SetCardField sets a single profile card template field by name
func (s *Store) SetCardField(ctx context.Context, guildID string, fieldName string, content string) (guildmodels.CommunitySettings, error) {
	field, err := guildmodels.ParseCardField(fieldName)
	if err != nil {
		return s.GetOrDefault(guildID), &ValidationError{Field: "profile template field", Value: fieldName, Reason: err.Error()}
	}
	return s.Update(ctx, guildID, func(cs *guildmodels.CommunitySettings) error {
		switch field {
		case guildmodels.CardFieldColor:
			color, err := ParseHexColor(content)
			if err != nil {
				return err
			}
			cs.CardTemplate.Color = color
			return nil
		case guildmodels.CardFieldBanner:
			banner, err := parseBannerURL("profile banner", content)
			if err != nil {
				return err
			}
			content = banner
		default:
			if err := requireText("profile "+string(field), content); err != nil {
				return err
			}
		}
		return cs.CardTemplate.SetText(field, content)
	})
}
