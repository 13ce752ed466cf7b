package common

// TopicAttackDetected is the notification topic the anomaly monitor
// publishes to when it flags an account.
const TopicAttackDetected = "attack_detected"

// Login failure reasons surfaced to the presentation layer.
const (
	ReasonUserNotFound    = "user not found"
	ReasonInvalidPassword = "invalid password"
)
