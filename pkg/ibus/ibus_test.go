package ibus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueuePreservesOrder(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	for i := 0; i < 5; i++ {
		q.Send(Message{Topic: TopicHostnameUpdate, Payload: HostnameUpdate{Hostname: string(rune('a' + i))}})
	}

	for i := 0; i < 5; i++ {
		select {
		case m := <-q.C():
			require.Equal(t, string(rune('a'+i)), m.Payload.(HostnameUpdate).Hostname)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for message")
		}
	}
}

func TestBusMulticast(t *testing.T) {
	b := New()
	ospf := b.Subscribe("ospf")
	isis := b.Subscribe("isis")

	b.Publish(Message{Topic: TopicInterfaceUp, Payload: InterfaceUp{IfName: "eth0"}})

	for _, s := range []*Subscriber{ospf, isis} {
		select {
		case m := <-s.Queue.C():
			require.Equal(t, "eth0", m.Payload.(InterfaceUp).IfName)
		case <-time.After(time.Second):
			t.Fatalf("%s did not receive broadcast", s.Name)
		}
	}
}

func TestBusPublishExcludesOriginator(t *testing.T) {
	b := New()
	ospf := b.Subscribe("ospf")
	bgp := b.Subscribe("bgp")

	b.Publish(Message{Topic: TopicRouteIPAdd, Payload: RouteIPAdd{Protocol: "ospf", Prefix: "10.0.0.0/24"}}, "ospf")

	select {
	case <-ospf.Queue.C():
		t.Fatal("excluded subscriber should not receive the message")
	case <-time.After(50 * time.Millisecond):
	}

	select {
	case m := <-bgp.Queue.C():
		require.Equal(t, "10.0.0.0/24", m.Payload.(RouteIPAdd).Prefix)
	case <-time.After(time.Second):
		t.Fatal("non-excluded subscriber should receive the message")
	}
}

func TestBusPublishToUnicast(t *testing.T) {
	b := New()
	rib := b.Subscribe("rib")
	_ = b.Subscribe("ospf")

	b.PublishTo("rib", Message{Topic: TopicRouteIPAdd, Payload: RouteIPAdd{Prefix: "192.0.2.0/24"}})

	select {
	case m := <-rib.Queue.C():
		require.Equal(t, "192.0.2.0/24", m.Payload.(RouteIPAdd).Prefix)
	case <-time.After(time.Second):
		t.Fatal("rib should receive the unicast message")
	}
}

func TestUnsubscribeClosesQueue(t *testing.T) {
	b := New()
	b.Subscribe("ephemeral")
	b.Unsubscribe("ephemeral")
	// Publishing after unsubscribe should not panic or block.
	b.Publish(Message{Topic: TopicHostnameUpdate, Payload: HostnameUpdate{Hostname: "x"}})
}
