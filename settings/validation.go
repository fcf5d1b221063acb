package settings

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/callummance/welcomer/guildmodels"
)

//ValidationError is returned when a setter rejects user input. The stored settings are left untouched.
type ValidationError struct {
	//The setting being changed
	Field string
	//The rejected input
	Value string
	//A human-readable description of the problem
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for %v: %v", e.Value, e.Field, e.Reason)
}

//ParseHexColor parses a colour of the form `#00ff00` or `00ff00` into a 24-bit RGB integer.
//Exactly six hex digits are required; shorthand such as `#fff` is rejected.
func ParseHexColor(hex string) (int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(trimmed) != 6 {
		return 0, &ValidationError{Field: "color", Value: hex, Reason: "use hex format (e.g., #00ff00)"}
	}
	val, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil || int(val) > guildmodels.MaxColor {
		return 0, &ValidationError{Field: "color", Value: hex, Reason: "use hex format (e.g., #00ff00)"}
	}
	return int(val), nil
}

//FormatHexColor renders a colour as `#rrggbb`
func FormatHexColor(color int) string {
	return fmt.Sprintf("#%06x", color)
}

//clearBannerKeyword may be given in place of a URL to remove a banner
const clearBannerKeyword = "none"

//parseBannerURL checks that a banner is an absolute http(s) URL, returning "" if the banner should be cleared.
func parseBannerURL(field, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, clearBannerKeyword) {
		return "", nil
	}
	u, err := url.Parse(trimmed)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", &ValidationError{Field: field, Value: raw, Reason: "must be an http(s) image URL or `none`"}
	}
	return trimmed, nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Value: value, Reason: "must not be empty"}
	}
	return nil
}
