package guildmodels

import (
	"fmt"
	"strings"
)

//CardTemplate holds the text shown on a generated profile card.
//Banner, Footer and Color are stored and editable but are not currently drawn. The card always uses a fixed
//background, and in place of Footer it draws fixed account created and join date lines.
type CardTemplate struct {
	Title       string `json:"title" gorethink:"title"`
	Subtitle    string `json:"subtitle" gorethink:"subtitle"`
	Description string `json:"description" gorethink:"description"`
	Banner      string `json:"banner" gorethink:"banner"`
	Footer      string `json:"footer" gorethink:"footer"`
	Color       int    `json:"color" gorethink:"color"`
}

//DefaultCardTemplate returns the card template used when a guild has not customised it
func DefaultCardTemplate() CardTemplate {
	return CardTemplate{
		Title:       "{server}",
		Subtitle:    "GTA Roleplay Server",
		Description: "With Advanced Gang System, Business Role Play And Citizen Activities",
		Banner:      "",
		Footer:      "Account Created: {account_created}\nJoin Date: {join_date}",
		Color:       0x3498db,
	}
}

//CardField names a single editable field of a CardTemplate
type CardField string

//Editable card template fields
const (
	CardFieldTitle       CardField = "title"
	CardFieldSubtitle    CardField = "subtitle"
	CardFieldDescription CardField = "description"
	CardFieldBanner      CardField = "banner"
	CardFieldFooter      CardField = "footer"
	CardFieldColor       CardField = "color"
)

//CardFields lists the card template fields in the order they are presented to users
var CardFields = []CardField{
	CardFieldTitle,
	CardFieldSubtitle,
	CardFieldDescription,
	CardFieldBanner,
	CardFieldFooter,
	CardFieldColor,
}

//ParseCardField converts a user supplied field name into a CardField, ignoring case.
func ParseCardField(name string) (CardField, error) {
	normalized := CardField(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range CardFields {
		if f == normalized {
			return f, nil
		}
	}
	return "", fmt.Errorf("%q is not a profile template field, must be one of: %v", name, CardFieldNames())
}

//CardFieldNames returns a comma separated list of the valid field names
func CardFieldNames() string {
	names := make([]string, len(CardFields))
	for i, f := range CardFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

//SetText sets a text field of the template. Color is numeric and must be set directly.
func (t *CardTemplate) SetText(field CardField, value string) error {
	switch field {
	case CardFieldTitle:
		t.Title = value
	case CardFieldSubtitle:
		t.Subtitle = value
	case CardFieldDescription:
		t.Description = value
	case CardFieldBanner:
		t.Banner = value
	case CardFieldFooter:
		t.Footer = value
	default:
		return fmt.Errorf("card field %v does not hold text", field)
	}
	return nil
}
