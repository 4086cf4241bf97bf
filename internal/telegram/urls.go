package telegram

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	privateLinkRe = regexp.MustCompile(`t\.me/c/(\d+)(?:/(\d+))?`)
	webLinkRe     = regexp.MustCompile(`web\.telegram\.org/[^#]*#(-?\d+)`)
	publicLinkRe  = regexp.MustCompile(`t\.me/([^/?]+)(?:/(\d+))?`)
	numericIDRe   = regexp.MustCompile(`^-?\d+$`)
)

// ParseChannelURL extracts a channel reference and an optional topic ID from
// the forms users paste in:
//
//	https://t.me/c/2381311281/21        private channel, topic 21
//	https://web.telegram.org/a/#-1002381311281
//	https://t.me/channelname/5
//	-1002381311281
//	@channelname or channelname
func ParseChannelURL(url string) (ChannelRef, int, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return ChannelRef{}, 0, fmt.Errorf("empty channel reference")
	}

	if m := privateLinkRe.FindStringSubmatch(url); m != nil {
		// Bare t.me/c IDs need the -100 supergroup prefix restored
		id, err := strconv.ParseInt("-100"+m[1], 10, 64)
		if err != nil {
			return ChannelRef{}, 0, fmt.Errorf("invalid channel id in %q: %w", url, err)
		}
		topicID := 0
		if m[2] != "" {
			topicID, _ = strconv.Atoi(m[2])
		}
		return ChannelRef{ID: id}, topicID, nil
	}

	if m := webLinkRe.FindStringSubmatch(url); m != nil {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return ChannelRef{}, 0, fmt.Errorf("invalid channel id in %q: %w", url, err)
		}
		return ChannelRef{ID: id}, 0, nil
	}

	if m := publicLinkRe.FindStringSubmatch(url); m != nil {
		topicID := 0
		if m[2] != "" {
			topicID, _ = strconv.Atoi(m[2])
		}
		return ChannelRef{Username: m[1]}, topicID, nil
	}

	if numericIDRe.MatchString(url) {
		id, err := strconv.ParseInt(url, 10, 64)
		if err != nil {
			return ChannelRef{}, 0, fmt.Errorf("invalid channel id %q: %w", url, err)
		}
		return ChannelRef{ID: id}, 0, nil
	}

	return ChannelRef{Username: strings.TrimPrefix(url, "@")}, 0, nil
}
