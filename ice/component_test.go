package ice

import (
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hostCandidate(ip string, port int) *Candidate {
	addr := TransportAddress{IP: net.ParseIP(ip), Port: port, Transport: TransportUDP}
	return &Candidate{
		TransportAddress:  addr,
		Base:              addr,
		Type:              CandidateTypeHost,
		LocalPreference:   65535,
		DefaultPreference: 126,
	}
}

func srflxCandidate(ip string, port int, base TransportAddress) *Candidate {
	return &Candidate{
		TransportAddress:  TransportAddress{IP: net.ParseIP(ip), Port: port, Transport: TransportUDP},
		Base:              base,
		Type:              CandidateTypeServerReflexive,
		LocalPreference:   65535,
		DefaultPreference: 100,
	}
}

func TestComputePriorityOrdersByType(t *testing.T) {
	host := hostCandidate("192.168.1.5", 5000)
	srflx := srflxCandidate("203.0.113.9", 6000, host.TransportAddress)
	relay := &Candidate{Type: CandidateTypeRelayed, LocalPreference: 65535}

	host.ComputePriority(ComponentRTP)
	srflx.ComputePriority(ComponentRTP)
	relay.ComputePriority(ComponentRTP)

	assert.Greater(t, host.Priority, srflx.Priority)
	assert.Greater(t, srflx.Priority, relay.Priority)
}

func TestComputePriorityComponentTieBreak(t *testing.T) {
	rtp := hostCandidate("192.168.1.5", 5000)
	rtcp := hostCandidate("192.168.1.5", 5001)

	rtp.ComputePriority(ComponentRTP)
	rtcp.ComputePriority(ComponentRTCP)

	assert.Greater(t, rtp.Priority, rtcp.Priority, "lower component id should win the low-order tiebreak")
}

func TestPrioritizeAndEliminateRedundant(t *testing.T) {
	c := NewComponent(ComponentRTP, TransportUDP, NewMediaStream("audio"), nil)

	base := TransportAddress{IP: net.ParseIP("192.168.1.5"), Port: 5000, Transport: TransportUDP}
	host := &Candidate{TransportAddress: base, Base: base, Type: CandidateTypeHost, LocalPreference: 65535}
	// Same transport address AND base as host: redundant.
	redundant := &Candidate{TransportAddress: base, Base: base, Type: CandidateTypeHost, LocalPreference: 1}
	srflx := srflxCandidate("203.0.113.9", 6000, base)

	c.AddLocalCandidate(host)
	c.AddLocalCandidate(redundant)
	c.AddLocalCandidate(srflx)

	c.PrioritizeCandidates()
	c.EliminateRedundantCandidates()

	locals := c.LocalCandidates()
	require.Len(t, locals, 2)
	assert.Equal(t, CandidateTypeHost, locals[0].Type)
	assert.Equal(t, CandidateTypeServerReflexive, locals[1].Type)
}

func TestSelectDefaultCandidatePrefersHighestDefaultPreference(t *testing.T) {
	c := NewComponent(ComponentRTP, TransportUDP, NewMediaStream("audio"), nil)
	base := TransportAddress{IP: net.ParseIP("192.168.1.5"), Port: 5000, Transport: TransportUDP}
	srflx := srflxCandidate("203.0.113.9", 6000, base)
	host := hostCandidate("192.168.1.5", 5000)

	// Add server-reflexive first to prove selection isn't just "first in list".
	c.AddLocalCandidate(srflx)
	c.AddLocalCandidate(host)

	def := c.SelectDefaultCandidate()
	require.NotNil(t, def)
	assert.Same(t, host, def)
	assert.Same(t, def, c.GetDefaultCandidate())
}

func TestSelectDefaultCandidateFirstSeenWinsTies(t *testing.T) {
	c := NewComponent(ComponentRTP, TransportUDP, NewMediaStream("audio"), nil)
	first := hostCandidate("192.168.1.5", 5000)
	second := hostCandidate("192.168.1.6", 5001)
	require.Equal(t, first.DefaultPreference, second.DefaultPreference)

	c.AddLocalCandidate(first)
	c.AddLocalCandidate(second)

	def := c.SelectDefaultCandidate()
	require.NotNil(t, def)
	assert.Same(t, first, def)
}

func TestDefaultRemoteCandidateRoundTrip(t *testing.T) {
	c := NewComponent(ComponentRTCP, TransportUDP, NewMediaStream("audio"), nil)
	assert.Nil(t, c.GetDefaultRemoteCandidate())

	remote := hostCandidate("198.51.100.2", 7000)
	c.SetDefaultRemoteCandidate(remote)
	assert.Same(t, remote, c.GetDefaultRemoteCandidate())
}

func TestCountLocalHostCandidates(t *testing.T) {
	c := NewComponent(ComponentRTP, TransportUDP, NewMediaStream("audio"), nil)
	c.AddLocalCandidate(hostCandidate("192.168.1.5", 5000))
	c.AddLocalCandidate(hostCandidate("192.168.1.6", 5001))
	base := TransportAddress{IP: net.ParseIP("192.168.1.5"), Port: 5000, Transport: TransportUDP}
	c.AddLocalCandidate(srflxCandidate("203.0.113.9", 6000, base))

	virtualHost := hostCandidate("192.168.1.7", 5002)
	virtualHost.IsVirtual = true
	c.AddLocalCandidate(virtualHost)

	assert.Equal(t, 2, c.CountLocalHostCandidates())
}

func TestFreeClearsBothLists(t *testing.T) {
	c := NewComponent(ComponentRTP, TransportUDP, NewMediaStream("audio"), nil)
	c.AddLocalCandidate(hostCandidate("192.168.1.5", 5000))
	c.AddRemoteCandidate(hostCandidate("198.51.100.2", 7000))
	c.SelectDefaultCandidate()
	c.SetDefaultRemoteCandidate(hostCandidate("198.51.100.2", 7000))

	c.Free()

	assert.Empty(t, c.LocalCandidates())
	assert.Empty(t, c.RemoteCandidates())
	assert.Nil(t, c.GetDefaultCandidate())
	assert.Nil(t, c.GetDefaultRemoteCandidate())
}

// TestConcurrentLocalAndRemoteAccessDoNotBlock exercises the two
// independent mutexes: a long-running local-list read must not stall
// concurrent remote-list writes.
func TestConcurrentLocalAndRemoteAccessDoNotBlock(t *testing.T) {
	c := NewComponent(ComponentRTP, TransportUDP, NewMediaStream("audio"), nil)
	for i := 0; i < 100; i++ {
		c.AddLocalCandidate(hostCandidate("192.168.1.5", 5000+i))
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = c.LocalCandidates()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			c.AddRemoteCandidate(hostCandidate("198.51.100.2", 7000+i))
		}
	}()
	wg.Wait()

	assert.Len(t, c.RemoteCandidates(), 100)
}

func TestComponentStringLocksBothListsSequentially(t *testing.T) {
	c := NewComponent(ComponentRTP, TransportUDP, NewMediaStream("audio"), nil)
	c.AddLocalCandidate(hostCandidate("192.168.1.5", 5000))
	c.AddRemoteCandidate(hostCandidate("198.51.100.2", 7000))

	s := c.String()
	assert.Contains(t, s, "local=")
	assert.Contains(t, s, "remote=")
}
