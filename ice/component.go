package ice

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pion/logging"
)

// Component holds the local and remote candidate lists for one component
// (e.g. RTP or RTCP) of a media stream, plus the default candidates chosen
// from each list. Local and remote candidates are guarded by two
// independent mutexes: adding a remote candidate never blocks a concurrent
// read of the local list and vice versa. Neither lock is ever held across
// a call back into caller code, so a caller's candidate callback can
// safely call back into this Component.
type Component struct {
	id            ComponentID
	transport     Transport
	parentStream  MediaStream
	log           logging.LeveledLogger

	localMu           sync.Mutex
	localCandidates   []*Candidate
	defaultCandidate  *Candidate

	remoteMu                sync.Mutex
	remoteCandidates        []*Candidate
	defaultRemoteCandidate  *Candidate
}

// NewComponent creates a Component for the given id, transport and parent
// stream. loggerFactory may be nil, in which case pion/logging's default
// logger factory is used.
func NewComponent(id ComponentID, transport Transport, parentStream MediaStream, loggerFactory logging.LoggerFactory) *Component {
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}
	return &Component{
		id:           id,
		transport:    transport,
		parentStream: parentStream,
		log:          loggerFactory.NewLogger("ice-component"),
	}
}

// ID returns the component identifier.
func (c *Component) ID() ComponentID { return c.id }

// Transport returns the transport this component's candidates run over.
func (c *Component) Transport() Transport { return c.transport }

// ParentStream returns the media stream this component belongs to.
func (c *Component) ParentStream() MediaStream { return c.parentStream }

// AddLocalCandidate appends cand to the local candidate list.
func (c *Component) AddLocalCandidate(cand *Candidate) {
	c.localMu.Lock()
	defer c.localMu.Unlock()
	c.localCandidates = append(c.localCandidates, cand)
	c.log.Debugf("added local %s", cand)
}

// AddRemoteCandidate appends cand to the remote candidate list.
func (c *Component) AddRemoteCandidate(cand *Candidate) {
	c.remoteMu.Lock()
	defer c.remoteMu.Unlock()
	c.remoteCandidates = append(c.remoteCandidates, cand)
	c.log.Debugf("added remote %s", cand)
}

// LocalCandidates returns a snapshot of the local candidate list. Safe to
// range over without holding any lock; mutations after the call don't
// retroactively appear in the returned slice.
func (c *Component) LocalCandidates() []*Candidate {
	c.localMu.Lock()
	defer c.localMu.Unlock()
	out := make([]*Candidate, len(c.localCandidates))
	copy(out, c.localCandidates)
	return out
}

// RemoteCandidates returns a snapshot of the remote candidate list.
func (c *Component) RemoteCandidates() []*Candidate {
	c.remoteMu.Lock()
	defer c.remoteMu.Unlock()
	out := make([]*Candidate, len(c.remoteCandidates))
	copy(out, c.remoteCandidates)
	return out
}

// CountLocalHostCandidates returns the number of local candidates of type
// CandidateTypeHost whose IsVirtual is false, used by an allocator deciding whether a host
// candidate for a new interface is still needed.
func (c *Component) CountLocalHostCandidates() int {
	c.localMu.Lock()
	defer c.localMu.Unlock()
	n := 0
	for _, cand := range c.localCandidates {
		if cand.Type == CandidateTypeHost && !cand.IsVirtual {
			n++
		}
	}
	return n
}

// PrioritizeCandidates recomputes each local candidate's priority and
// sorts the local candidate list highest-priority first, per RFC 5245
// section 4.1.2.
func (c *Component) PrioritizeCandidates() {
	c.localMu.Lock()
	defer c.localMu.Unlock()
	for _, cand := range c.localCandidates {
		cand.ComputePriority(c.id)
	}
	sort.SliceStable(c.localCandidates, func(i, j int) bool {
		return c.localCandidates[i].Priority > c.localCandidates[j].Priority
	})
}

// EliminateRedundantCandidates drops local candidates that share both a
// transport address and a base with a higher (or equal, first-seen-wins)
// priority candidate, per RFC 5245 section 4.1.3. Call after
// PrioritizeCandidates so the kept candidate is always the
// higher-priority one.
func (c *Component) EliminateRedundantCandidates() {
	c.localMu.Lock()
	defer c.localMu.Unlock()
	kept := make([]*Candidate, 0, len(c.localCandidates))
	for _, cand := range c.localCandidates {
		redundant := false
		for _, k := range kept {
			if equalEndpoint(*cand, *k) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cand)
		}
	}
	c.localCandidates = kept
}

// SelectDefaultCandidate scans the local candidate list for the one with
// the maximum DefaultPreference, first-seen winning ties, and caches it.
// Call after PrioritizeCandidates/EliminateRedundantCandidates.
func (c *Component) SelectDefaultCandidate() *Candidate {
	c.localMu.Lock()
	defer c.localMu.Unlock()
	if len(c.localCandidates) == 0 {
		c.defaultCandidate = nil
		return nil
	}
	best := c.localCandidates[0]
	for _, cand := range c.localCandidates[1:] {
		if best.DefaultPreference < cand.DefaultPreference {
			best = cand
		}
	}
	c.defaultCandidate = best
	return best
}

// GetDefaultCandidate returns the cached default local candidate, or nil
// if SelectDefaultCandidate has not been called (or found nothing).
func (c *Component) GetDefaultCandidate() *Candidate {
	c.localMu.Lock()
	defer c.localMu.Unlock()
	return c.defaultCandidate
}

// SetDefaultRemoteCandidate records the candidate the remote peer
// signaled as its default, used before connectivity checks establish a
// working pair.
func (c *Component) SetDefaultRemoteCandidate(cand *Candidate) {
	c.remoteMu.Lock()
	defer c.remoteMu.Unlock()
	c.defaultRemoteCandidate = cand
}

// GetDefaultRemoteCandidate returns the candidate set by
// SetDefaultRemoteCandidate, or nil.
func (c *Component) GetDefaultRemoteCandidate() *Candidate {
	c.remoteMu.Lock()
	defer c.remoteMu.Unlock()
	return c.defaultRemoteCandidate
}

// Free releases every local and remote candidate's resources and empties
// both lists.
func (c *Component) Free() {
	c.localMu.Lock()
	for _, cand := range c.localCandidates {
		cand.Free()
	}
	c.localCandidates = nil
	c.defaultCandidate = nil
	c.localMu.Unlock()

	c.remoteMu.Lock()
	for _, cand := range c.remoteCandidates {
		cand.Free()
	}
	c.remoteCandidates = nil
	c.defaultRemoteCandidate = nil
	c.remoteMu.Unlock()
}

// String summarizes the component and both candidate lists. Acquires the
// local lock, then the remote lock, sequentially rather than nested, so it
// can never deadlock against a caller that only ever takes one lock at a
// time.
func (c *Component) String() string {
	c.localMu.Lock()
	locals := make([]string, len(c.localCandidates))
	for i, cand := range c.localCandidates {
		locals[i] = cand.String()
	}
	c.localMu.Unlock()

	c.remoteMu.Lock()
	remotes := make([]string, len(c.remoteCandidates))
	for i, cand := range c.remoteCandidates {
		remotes[i] = cand.String()
	}
	c.remoteMu.Unlock()

	return fmt.Sprintf("component %d (%s): local=[%s] remote=[%s]",
		c.id, c.transport, strings.Join(locals, ", "), strings.Join(remotes, ", "))
}
