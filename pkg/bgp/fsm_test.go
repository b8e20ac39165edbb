package bgp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeFSMTimer struct {
	stopped bool
	resets  int
}

func (t *fakeFSMTimer) Stop() bool           { t.stopped = true; return true }
func (t *fakeFSMTimer) Reset(time.Duration) bool { t.resets++; return true }

func newTestFSM() (*FSM, *[]string) {
	var calls []string
	cb := Callbacks{
		OpenConnection:  func() { calls = append(calls, "open") },
		CloseConnection: func() { calls = append(calls, "close") },
		SendOpen:        func() { calls = append(calls, "send-open") },
		SendKeepalive:   func() { calls = append(calls, "send-ka") },
		SendNotification: func(code, sub uint8, data []byte) {
			calls = append(calls, "send-notif")
		},
		ArmConnectRetry: func(d time.Duration) TimerHandle { return &fakeFSMTimer{} },
		ArmHoldTimer:    func(d time.Duration) TimerHandle { return &fakeFSMTimer{} },
		ArmKeepalive:    func(d time.Duration) TimerHandle { return &fakeFSMTimer{} },
		OnEstablished:   func() { calls = append(calls, "established") },
		OnSessionClosed: func() { calls = append(calls, "session-closed") },
	}
	f := NewFSM(Config{HoldTime: 90 * time.Second, ConnectRetryTime: 5 * time.Second}, cb)
	return f, &calls
}

func TestFSMFullBringUp(t *testing.T) {
	f, calls := newTestFSM()

	f.Step(EventStart)
	require.Equal(t, Connect, f.State)

	f.Step(EventTCPConnectionConfirmed)
	require.Equal(t, OpenSent, f.State)

	f.Step(EventBGPOpen)
	require.Equal(t, OpenConfirm, f.State)

	f.Step(EventKeepAliveMsg)
	require.Equal(t, Established, f.State)

	require.Contains(t, *calls, "established")
}

func TestFSMActiveRetriesConnect(t *testing.T) {
	f, _ := newTestFSM()
	f.Step(EventStart)
	f.Step(EventTCPConnectionFails)
	require.Equal(t, Active, f.State)

	f.Step(EventTCPConnectionConfirmed)
	require.Equal(t, OpenSent, f.State)
}

func TestFSMStopFromEstablishedNotifiesAndClosesSession(t *testing.T) {
	f, calls := newTestFSM()
	f.Step(EventStart)
	f.Step(EventTCPConnectionConfirmed)
	f.Step(EventBGPOpen)
	f.Step(EventKeepAliveMsg)
	require.Equal(t, Established, f.State)

	f.Step(EventStop)
	require.Equal(t, Idle, f.State)
	require.Contains(t, *calls, "send-notif")
	require.Contains(t, *calls, "session-closed")
}

func TestFSMHoldTimerExpiryFromEstablishedResetsToIdle(t *testing.T) {
	f, calls := newTestFSM()
	f.Step(EventStart)
	f.Step(EventTCPConnectionConfirmed)
	f.Step(EventBGPOpen)
	f.Step(EventKeepAliveMsg)

	f.Step(EventHoldTimerExpires)
	require.Equal(t, Idle, f.State)
	require.Contains(t, *calls, "send-notif")
}

func TestFSMHandleOpenAcceptsValidPeer(t *testing.T) {
	f, calls := newTestFSM()
	f.Config.PeerAS = 65002
	f.Config.LocalID = 0x0a000001
	f.Step(EventStart)
	f.Step(EventTCPConnectionConfirmed)

	f.HandleOpen(Open{Version: 4, MyAS: 65002, BGPID: 0x0a000002})
	require.Equal(t, OpenConfirm, f.State)
	require.Equal(t, uint32(0x0a000002), f.Config.PeerID)
	require.NotContains(t, *calls, "send-notif")
}

func TestFSMHandleOpenRejectsBadPeerAS(t *testing.T) {
	f, calls := newTestFSM()
	f.Config.PeerAS = 65002
	f.Step(EventStart)
	f.Step(EventTCPConnectionConfirmed)

	f.HandleOpen(Open{Version: 4, MyAS: 65099, BGPID: 0x0a000002})
	require.Equal(t, Idle, f.State)
	require.Contains(t, *calls, "send-notif")
}

func TestFSMIgnoresUnexpectedEventInIdle(t *testing.T) {
	f, _ := newTestFSM()
	f.Step(EventKeepAliveMsg)
	require.Equal(t, Idle, f.State, "an event not enumerated for Idle is a no-op")
}
