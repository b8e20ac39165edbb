// Package gr implements the graceful-restart helper behavior (§4.7, C7)
// shared by the OSPF and IS-IS engines: detecting a neighbor's Grace-LSA/
// Restart TLV, freezing its normal inactivity-timer-driven removal for the
// grace period, and exiting on completion, timeout, or an unrelated
// topology change.
package gr

import "time"

// ExitReason names why a helper session ended.
type ExitReason int

const (
	ExitNone ExitReason = iota
	ExitCompleted     // MaxAge Grace-LSA/LSP received
	ExitTimedOut      // grace period elapsed with no completion
	ExitTopologyChange // an unrelated neighbor's LSA changed in a topology-affecting way
)

func (r ExitReason) String() string {
	switch r {
	case ExitCompleted:
		return "Completed"
	case ExitTimedOut:
		return "TimedOut"
	case ExitTopologyChange:
		return "TopologyChange"
	default:
		return "None"
	}
}

// Reason for entering graceful restart, carried in the Grace-LSA/Restart
// TLV (RFC 3623/5187 §3; ISO 10589 restart TLV analog).
type GraceReason uint8

const (
	ReasonUnknown        GraceReason = 0
	ReasonSoftwareRestart GraceReason = 1
	ReasonSoftwareUpgrade GraceReason = 2
	ReasonControlProcessorSwitchover GraceReason = 3
)

// TimerHandle abstracts a cancellable timer; the caller supplies an
// implementation wrapping the instance's own timer facility.
type TimerHandle interface {
	Stop() bool
}

// Helper tracks one neighbor's graceful-restart session.
type Helper struct {
	NeighborID  [8]byte
	Active      bool
	GracePeriod time.Duration
	Reason      GraceReason
	Started     time.Time

	graceTimer TimerHandle
}

// Begin starts helping neighborID for gracePeriod, arming a timeout via
// armTimeout. If the helper was already active for this neighbor, the
// prior timer is stopped and replaced (a fresh Grace-LSA resets the
// window).
func (h *Helper) Begin(neighborID [8]byte, gracePeriod time.Duration, reason GraceReason, now time.Time, armTimeout func(d time.Duration) TimerHandle) {
	if h.graceTimer != nil {
		h.graceTimer.Stop()
	}
	h.NeighborID = neighborID
	h.Active = true
	h.GracePeriod = gracePeriod
	h.Reason = reason
	h.Started = now
	if armTimeout != nil {
		h.graceTimer = armTimeout(gracePeriod)
	}
}

// end stops the grace timer and clears Active, returning reason for the
// caller to act on (resume normal FSM processing and SPF).
func (h *Helper) end(reason ExitReason) ExitReason {
	if h.graceTimer != nil {
		h.graceTimer.Stop()
		h.graceTimer = nil
	}
	h.Active = false
	return reason
}

// Completed is invoked when a MaxAge Grace-LSA/LSP is received from the
// helped neighbor, indicating a clean restart completion.
func (h *Helper) Completed() ExitReason {
	if !h.Active {
		return ExitNone
	}
	return h.end(ExitCompleted)
}

// TimedOut is invoked when the armed grace timer fires without completion.
func (h *Helper) TimedOut() ExitReason {
	if !h.Active {
		return ExitNone
	}
	return h.end(ExitTimedOut)
}

// TopologyChanged is invoked whenever any OTHER neighbor's router/network
// LSA (or IS-IS LSP) changes in a way that would alter the topology. If
// this helper is active for a different neighbor than advRouter, the
// change is unrelated to the restart and the helper exits per §4.7.
func (h *Helper) TopologyChanged(advRouter [8]byte) ExitReason {
	if !h.Active || advRouter == h.NeighborID {
		return ExitNone
	}
	return h.end(ExitTopologyChange)
}

// SuppressRemoval reports whether the neighbor's normal inactivity-timer
// removal should be suppressed right now (the caller's FSM checks this
// before acting on an InactivityTimer/HoldTimerExpired event).
func (h *Helper) SuppressRemoval() bool {
	return h.Active
}

// RetainInSPF reports whether the neighbor's prior router/network-LSA (or
// LSP) should still be fed into SPF computation while the helper is
// active, per "continue including the neighbor's prior router-LSA in
// SPF".
func (h *Helper) RetainInSPF() bool {
	return h.Active
}
