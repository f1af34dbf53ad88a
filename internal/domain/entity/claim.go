package entity

// ClaimStatus is the lifecycle state of a claim on a food post.
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusAccepted ClaimStatus = "accepted"
	ClaimStatusRejected ClaimStatus = "rejected"
)

// Claim represents a user's request to pick up a shared food post.
type Claim struct {
	ID        string      `json:"id"`
	PostID    string      `json:"postId"`
	CreatorID string      `json:"creatorId"` // User ID of the post author.
	ClaimerID string      `json:"claimerId"` // User ID of the claimant.
	Status    ClaimStatus `json:"status"`
}
