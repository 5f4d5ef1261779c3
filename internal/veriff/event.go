package veriff

// VerificationEvent is fanned out to websocket listeners and, when a
// publisher is configured, to the event topic.
type VerificationEvent struct {
	SessionId      string `json:"sessionId"`
	VerificationId string `json:"verificationId"`
	Status         string `json:"status"`
}

func (VerificationEvent) GetEventTopicName() string {
	return "identity.verification.events"
}
