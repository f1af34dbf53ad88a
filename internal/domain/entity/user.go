package entity

// User represents an account in the food sharing app. Profile and location
// updates are written by the mobile client; this service only reads them.
type User struct {
	ID       string      `json:"id"`       // Firestore document ID.
	Name     string      `json:"name"`     // Display name shown in notifications.
	FCMToken string      `json:"fcmToken"` // Push token; empty means the user cannot be notified.
	Location *Coordinate `json:"location"` // Last known location; nil means unknown.
}

// Notifiable reports whether the user has a registered push token.
func (u *User) Notifiable() bool {
	return u.FCMToken != ""
}

// Locatable reports whether the user has a known location.
func (u *User) Locatable() bool {
	return u.Location != nil
}
