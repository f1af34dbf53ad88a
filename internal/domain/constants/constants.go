// Package constants holds shared domain-level constants.
package constants

// Deployment environments.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub provider types.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Firestore collection names, matching the mobile client's schema.
const (
	CollectionUsers             = "users"
	CollectionPosts             = "posts"
	CollectionClaims            = "claims"
	CollectionChats             = "chats"
	CollectionMessages          = "messages"
	CollectionRatings           = "ratings"
	CollectionTestNotifications = "test_notifications"
)
