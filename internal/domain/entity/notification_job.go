package entity

// NotificationJob is a fully resolved push notification ready for dispatch.
// Jobs are built per recipient immediately before sending and never persisted.
// The token must be non-empty; callers filter out non-notifiable users first.
type NotificationJob struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}
