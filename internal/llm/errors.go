package llm

import "fmt"

// Kind classifies why generation failed
type Kind int

const (
	// KindConfig means the client was built from an unusable configuration
	// and no attempt was made
	KindConfig Kind = iota
	// KindExhausted means every attempt failed
	KindExhausted
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// GenerationError is returned by Client.Generate when no text could be produced
type GenerationError struct {
	Kind     Kind
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Kind == KindConfig {
		return fmt.Sprintf("llm misconfigured: %v", e.Err)
	}
	return fmt.Sprintf("llm failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
