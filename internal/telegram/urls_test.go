package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseChannelURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantRef   ChannelRef
		wantTopic int
	}{
		{
			name:      "private link with topic",
			url:       "https://t.me/c/2381311281/21",
			wantRef:   ChannelRef{ID: -1002381311281},
			wantTopic: 21,
		},
		{
			name:    "private link without topic",
			url:     "https://t.me/c/2381311281",
			wantRef: ChannelRef{ID: -1002381311281},
		},
		{
			name:    "web client link",
			url:     "https://web.telegram.org/a/#-1002381311281",
			wantRef: ChannelRef{ID: -1002381311281},
		},
		{
			name:    "public link",
			url:     "https://t.me/channelname",
			wantRef: ChannelRef{Username: "channelname"},
		},
		{
			name:      "public link with topic",
			url:       "https://t.me/channelname/5",
			wantRef:   ChannelRef{Username: "channelname"},
			wantTopic: 5,
		},
		{
			name:    "direct id",
			url:     "-1002381311281",
			wantRef: ChannelRef{ID: -1002381311281},
		},
		{
			name:    "positive id",
			url:     "12345",
			wantRef: ChannelRef{ID: 12345},
		},
		{
			name:    "at-username",
			url:     "@channelname",
			wantRef: ChannelRef{Username: "channelname"},
		},
		{
			name:    "bare username",
			url:     "channelname",
			wantRef: ChannelRef{Username: "channelname"},
		},
		{
			name:    "surrounding whitespace",
			url:     "  https://t.me/c/2381311281  ",
			wantRef: ChannelRef{ID: -1002381311281},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, topicID, err := ParseChannelURL(tt.url)
			require.NoError(t, err)
			require.Equal(t, tt.wantRef, ref)
			require.Equal(t, tt.wantTopic, topicID)
		})
	}
}

func TestParseChannelURL_Empty(t *testing.T) {
	_, _, err := ParseChannelURL("   ")
	require.Error(t, err)
}
