package entity

import "time"

// PostStatus is the lifecycle state of a food post.
type PostStatus string

const (
	PostStatusAvailable PostStatus = "available"
	PostStatusClaimed   PostStatus = "claimed"
	PostStatusExpired   PostStatus = "expired"
)

// Post represents a shared food item.
type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	PostedBy  string     `json:"postedBy"` // User ID of the author.
	Location  Coordinate `json:"location"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	Expiry    time.Time  `json:"expiry"`
}

// Expired reports whether the post's expiry has passed at the given time.
func (p *Post) Expired(now time.Time) bool {
	return now.After(p.Expiry)
}
