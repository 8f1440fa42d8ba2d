package domain

// DirectMessage is a simulated Instagram direct message
//
// swagger:model
type DirectMessage struct {
	// The Instagram-scoped ID of the sender
	//
	// required: true
	// example: 17841400000000000
	SenderID string `json:"sender_id" validate:"required"`

	// The ID of the message
	//
	// required: true
	// example: mid.1234
	MessageID string `json:"message_id" validate:"required"`

	// The message text
	//
	// required: true
	// example: گوشی سامسونگ دارید؟
	Text string `json:"text" validate:"max=4096"`
}

// Outcome records which path produced a reply
type Outcome string

const (
	OutcomeNoResults Outcome = "no_results"
	OutcomeGenerated Outcome = "generated"
	OutcomeFallback  Outcome = "fallback"
)

// Reply is the answer returned for a direct message
//
// swagger:model
type Reply struct {
	// The reply text
	//
	// required: true
	Text string `json:"reply"`

	Outcome Outcome `json:"-"`
}
