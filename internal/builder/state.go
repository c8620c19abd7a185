package builder

// State is a builder lifecycle state.
type State int

const (
	// Unconfigured means neither participant is named.
	Unconfigured State = iota
	// ConsumerSet means only the consumer is named.
	ConsumerSet
	// ProviderSet means only the provider is named.
	ProviderSet
	// ParticipantsSet means both participants are named.
	ParticipantsSet
	// Initialized means the pact document exists and can record interactions.
	Initialized
	// Built means at least one Build completed successfully.
	Built
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unconfigured:
		return "unconfigured"
	case ConsumerSet:
		return "consumer-set"
	case ProviderSet:
		return "provider-set"
	case ParticipantsSet:
		return "participants-set"
	case Initialized:
		return "initialized"
	case Built:
		return "built"
	default:
		return "unknown"
	}
}
