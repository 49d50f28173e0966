package hub

import "strings"

// ChannelKind is the grouping dimension of a fan-out channel.
type ChannelKind string

const (
	ChannelKindUser    ChannelKind = "user"
	ChannelKindCompany ChannelKind = "company"
	ChannelKindScreen  ChannelKind = "screen"
)

// Channel is a logical fan-out group. It is a pure name: any party can
// compute it from (kind, id) without a lookup, and it only materializes
// as a member set inside the registry while connections are joined.
type Channel struct {
	Kind ChannelKind
	ID   string
}

func UserChannel(userID string) Channel {
	return Channel{Kind: ChannelKindUser, ID: userID}
}

func CompanyChannel(companyID string) Channel {
	return Channel{Kind: ChannelKindCompany, ID: companyID}
}

func ScreenChannel(screenID string) Channel {
	return Channel{Kind: ChannelKindScreen, ID: screenID}
}

// Valid reports whether the channel has a known kind and a non-empty id.
func (c Channel) Valid() bool {
	if c.ID == "" {
		return false
	}
	switch c.Kind {
	case ChannelKindUser, ChannelKindCompany, ChannelKindScreen:
		return true
	}
	return false
}

// String renders the canonical channel name, e.g. "user:42".
func (c Channel) String() string {
	return string(c.Kind) + ":" + c.ID
}

// ParseChannel parses a canonical channel name. The boolean is false for
// names that do not denote a valid channel.
func ParseChannel(s string) (Channel, bool) {
	kind, id, found := strings.Cut(s, ":")
	if !found {
		return Channel{}, false
	}
	c := Channel{Kind: ChannelKind(kind), ID: id}
	if !c.Valid() {
		return Channel{}, false
	}
	return c, true
}
