package entity

// Rating is a review left by one user for another after a food exchange.
type Rating struct {
	ID         string  `json:"id"`
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	PostID     string  `json:"postId"`
	Rating     float64 `json:"rating"` // 0..5 stars.
	Review     string  `json:"review"`
}
