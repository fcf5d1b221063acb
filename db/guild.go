package db

import (
	"context"
	"fmt"

	"github.com/callummance/welcomer/guildmodels"
	"github.com/sirupsen/logrus"
	rethink "gopkg.in/gorethink/gorethink.v3"
)

const guildSettingsTable string = "guild_settings"

//LoadOverrides fetches every guild settings document from the database.
//The driver version in use does not accept a context, so ctx is only checked before querying.
func (db *Connection) LoadOverrides(ctx context.Context) (map[string]guildmodels.CommunitySettings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := rethink.Table(guildSettingsTable).Run(db.session)
	if err != nil {
		logrus.Errorf("Failed to query database for guild settings because: %v.", err)
		return nil, fmt.Errorf("failed to query database for guild settings: %w", err)
	}
	defer res.Close()

	var docs []guildmodels.CommunitySettings
	if err := res.All(&docs); err != nil {
		logrus.Errorf("Failed to read guild settings from database because: %v.", err)
		return nil, fmt.Errorf("failed to read guild settings from database: %w", err)
	}
	overrides := make(map[string]guildmodels.CommunitySettings, len(docs))
	for _, doc := range docs {
		overrides[doc.GuildID] = doc
	}
	return overrides, nil
}

//SaveOverride inserts or replaces the settings document for a guild
func (db *Connection) SaveOverride(ctx context.Context, guildID string, s guildmodels.CommunitySettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.GuildID = guildID
	resp, err := rethink.Table(guildSettingsTable).Insert(s, rethink.InsertOpts{
		Conflict: "replace",
	}).RunWrite(db.session)
	if err != nil {
		logrus.Warnf("Encountered error saving settings for guild %v to DB: %v", guildID, err)
		return err
	} else if resp.Errors > 0 {
		err := fmt.Errorf("%v", resp.FirstError)
		logrus.Warnf("Encountered error saving settings for guild %v to DB: %v", guildID, err)
		return err
	}
	return nil
}
