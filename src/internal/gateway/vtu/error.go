package vtu

// Kind classifies an adapter failure. Timeout is the only ambiguous kind:
// the upstream may or may not have delivered, so the caller must record the
// attempt as pending rather than failed.
type Kind string

const (
	KindNetwork             Kind = "network"
	KindTimeout             Kind = "timeout"
	KindUpstreamRejected    Kind = "upstream-rejected"
	KindUpstreamUnavailable Kind = "upstream-unavailable"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// KindOf extracts the failure kind, defaulting to network for untyped errors.
func KindOf(err error) Kind {
	if gwErr, ok := err.(*Error); ok {
		return gwErr.Kind
	}
	return KindNetwork
}
