package entity

// Chat is a two-party conversation attached to a food post.
type Chat struct {
	ID           string   `json:"id"`
	Participants []string `json:"participants"` // Exactly two user IDs.
	PostID       string   `json:"postId"`
	PostTitle    string   `json:"postTitle"`
}

// Message is a single chat message.
type Message struct {
	ID       string `json:"id"`
	ChatID   string `json:"chatId"`
	SenderID string `json:"senderId"`
	Content  string `json:"content"`
}

// OtherParticipant returns the participant that is not the given user,
// or empty string when the chat has no such participant.
func (c *Chat) OtherParticipant(userID string) string {
	for _, id := range c.Participants {
		if id != userID {
			return id
		}
	}

	return ""
}
