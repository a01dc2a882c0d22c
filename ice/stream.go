package ice

// MediaStream is the subset of an ICE media stream's identity a Component
// needs: enough to name itself in logs and diagnostics without this
// package depending on the full session/agent machinery above it.
type MediaStream interface {
	Name() string
}

// namedStream is the trivial MediaStream a caller can use when it has
// nothing more than a name to give a Component.
type namedStream string

func (n namedStream) Name() string { return string(n) }

// NewMediaStream returns a MediaStream identified only by name.
func NewMediaStream(name string) MediaStream { return namedStream(name) }
