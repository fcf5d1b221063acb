package templating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	fields := Fields{Server: "Acme", Member: "@bob", MemberCount: "42"}

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"server and member", "Welcome to {server}, {member}!", "Welcome to Acme, @bob!"},
		{"unknown placeholder left verbatim", "Hi {foo} from {server}", "Hi {foo} from Acme"},
		{"repeated placeholder", "{server}/{server}", "Acme/Acme"},
		{"known but not supplied", "Joined {join_date}", "Joined {join_date}"},
		{"no placeholders", "Enjoy your stay!", "Enjoy your stay!"},
		{"empty braces", "{} {member_count}", "{} 42"},
		{"unbalanced braces", "{server {member}", "{server @bob"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Render(tc.tmpl, fields))
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	fields := Fields{Server: "Acme", Member: "@bob"}
	tmpl := "Welcome to {server}, {member}! {foo}"
	assert.Equal(t, Render(tmpl, fields), Render(tmpl, fields))
}

func TestRenderStrict(t *testing.T) {
	out, err := RenderStrict("Member #{member_count}", Fields{MemberCount: "7"})
	require.NoError(t, err)
	assert.Equal(t, "Member #7", out)

	_, err = RenderStrict("{foo} and {bar} and {foo}", Fields{})
	var unknownErr *UnknownPlaceholderError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, []string{"{foo}", "{bar}"}, unknownErr.Names)
}

func TestUnknownPlaceholders(t *testing.T) {
	assert.Empty(t, UnknownPlaceholders("Account Created: {account_created}\nJoin Date: {join_date}"))
	assert.Equal(t, []string{"{user}"}, UnknownPlaceholders("Hello {user}, welcome to {server}"))
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2021, time.March, 4, 17, 5, 0, 0, time.UTC)
	assert.Equal(t, "Thursday, March 04, 2021 05:05 PM", FormatTimestamp(ts))

	morning := time.Date(2020, time.December, 25, 9, 30, 0, 0, time.FixedZone("X", 3600))
	assert.Equal(t, "Friday, December 25, 2020 08:30 AM", FormatTimestamp(morning))
}
