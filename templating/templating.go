package templating

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

//Placeholder is the name of a field which can be substituted into an admin-authored template
type Placeholder string

//Recognised placeholders
const (
	Server         Placeholder = "server"
	Member         Placeholder = "member"
	MemberCount    Placeholder = "member_count"
	AccountCreated Placeholder = "account_created"
	JoinDate       Placeholder = "join_date"
)

//Placeholders lists every placeholder the renderer knows how to substitute
var Placeholders = []Placeholder{Server, Member, MemberCount, AccountCreated, JoinDate}

//TimestampLayout is used for both account_created and join_date, eg `Monday, January 02, 2006 03:04 PM`
const TimestampLayout = "Monday, January 02, 2006 03:04 PM"

var placeholderRegex = regexp.MustCompile(`\{([^{}]*)\}`)

//Fields holds the values available to a single render call
type Fields map[Placeholder]string

//IsKnown returns true iff p is one of the recognised placeholders
func (p Placeholder) IsKnown() bool {
	for _, known := range Placeholders {
		if p == known {
			return true
		}
	}
	return false
}

//Render substitutes every recognised placeholder which has a value in fields. Anything else in braces, including
//recognised placeholders without a value, is left in the output verbatim.
func Render(tmpl string, fields Fields) string {
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(token string) string {
		name := Placeholder(token[1 : len(token)-1])
		if !name.IsKnown() {
			return token
		}
		if val, ok := fields[name]; ok {
			return val
		}
		return token
	})
}

//UnknownPlaceholderError is returned by RenderStrict when a template refers to placeholders which will never be
//substituted
type UnknownPlaceholderError struct {
	Names []string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("unknown placeholder(s) %v", strings.Join(e.Names, ", "))
}

//RenderStrict behaves like Render but fails if the template contains an unrecognised placeholder
func RenderStrict(tmpl string, fields Fields) (string, error) {
	if unknown := UnknownPlaceholders(tmpl); len(unknown) > 0 {
		return "", &UnknownPlaceholderError{Names: unknown}
	}
	return Render(tmpl, fields), nil
}

//UnknownPlaceholders returns each distinct brace token in tmpl which is not a recognised placeholder, in the order
//they first appear.
func UnknownPlaceholders(tmpl string) []string {
	var res []string
	seen := make(map[string]bool)
	for _, token := range placeholderRegex.FindAllString(tmpl, -1) {
		if Placeholder(token[1 : len(token)-1]).IsKnown() || seen[token] {
			continue
		}
		seen[token] = true
		res = append(res, token)
	}
	return res
}

//FormatTimestamp renders a time in the fixed human readable format used by cards and announcements
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
