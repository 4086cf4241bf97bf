package telegram

import (
	"fmt"
	"sort"
)

// GroupByTopic buckets media messages by their forum topic title. Messages
// outside any topic land in the General bucket. Messages within a bucket are
// ordered oldest first so numbering follows posting order.
func GroupByTopic(messages []*Message, topics []Topic) map[string][]*Message {
	titles := make(map[int]string, len(topics))
	for _, t := range topics {
		titles[t.ID] = t.Title
	}

	grouped := make(map[string][]*Message)
	for _, msg := range messages {
		name := GeneralTopic
		if msg.TopicID != 0 {
			if title, ok := titles[msg.TopicID]; ok && title != "" {
				name = title
			} else {
				name = topicFallbackTitle(msg.TopicID)
			}
		}
		grouped[name] = append(grouped[name], msg)
	}

	for _, msgs := range grouped {
		sort.Slice(msgs, func(i, j int) bool { return msgs[i].Date.Before(msgs[j].Date) })
	}

	return grouped
}

// topicFallbackTitle names topics whose title could not be fetched
func topicFallbackTitle(id int) string {
	return fmt.Sprintf("Topic_%d", id)
}
