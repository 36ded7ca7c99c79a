package model

// SessionState is the conversation lifecycle position for one user.
type SessionState string

const (
	StateNew           SessionState = "new"
	StateWelcomed      SessionState = "welcomed"
	StateAwaitingInput SessionState = "awaiting_input"
)

type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

// InputKind is the tagged classification of one inbound message,
// evaluated once per turn before the state machine dispatches.
type InputKind string

const (
	InputFeedbackPositive InputKind = "feedback_positive"
	InputFeedbackNegative InputKind = "feedback_negative"
	InputLanguageSelect   InputKind = "language_select"
	InputClaim            InputKind = "claim"
	InputEmpty            InputKind = "empty"
)
