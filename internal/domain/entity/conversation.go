package entity

import (
	"sort"
	"strings"
	"time"
)

// Conversation groups a set of participants and the ordered list of their messages.
type Conversation struct {
	ID string `bson:"_id,omitempty" json:"id"`
	// Participants is a set; order and duplicates carry no meaning.
	Participants []string `bson:"participants" json:"participants"`
	// ParticipantKey is the canonical form of Participants and is unique per conversation.
	ParticipantKey string    `bson:"participant_key" json:"-"`
	Messages       []string  `bson:"messages" json:"messages"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// NormalizeParticipants returns the sorted, de-duplicated, non-empty ids.
func NormalizeParticipants(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

var participantKeyEscaper = strings.NewReplacer(`\\`, `\\\\`, ":", `\\:`)

// ParticipantKey builds the lookup key used for find-or-create.
// Two participant lists map to the same key iff they describe the same set.
// Ids are joined with ':'. A ':' or backslash inside an id is backslash-escaped.
func ParticipantKey(ids []string) string {
	members := NormalizeParticipants(ids)
	for i, id := range members {
		members[i] = participantKeyEscaper.Replace(id)
	}
	return strings.Join(members, ":")
}

// Message is a single immutable entry in a conversation.
type Message struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	AuthorID       string    `bson:"author_id" json:"author"`
	ConversationID string    `bson:"conversation_id" json:"conversation"`
	Body           string    `bson:"body" json:"body"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
