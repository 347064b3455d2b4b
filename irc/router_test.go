// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// released under the MIT license

package irc

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ergochat/ircwire/irc/logger"
	"github.com/ergochat/ircwire/irc/wire"
)

func debugLogger(t *testing.T, buf *bytes.Buffer) *logger.Manager {
	manager, err := logger.NewWriterManager(buf, []logger.LoggingConfig{{
		MethodStderr: true,
		Types:        []string{"*"},
		Level:        logger.LogDebug,
	}})
	if err != nil {
		t.Fatal(err)
	}
	return manager
}

func TestRoutePing(t *testing.T) {
	s := NewSession(nil, nil, nil)

	action := s.Route("PING :cookie123")
	assertEqual(action, Action{Kind: ActionAutoReply, Reply: "PONG cookie123"}, t)

	action = s.Route(":irc.example.com PING irc.example.com :cookie123\r\n")
	assertEqual(action.Reply, "PONG cookie123", t)

	// nothing is queued for a keepalive
	chat, info := s.Pending()
	assertEqual(chat, 0, t)
	assertEqual(info, 0, t)
}

func TestRoutePingServer(t *testing.T) {
	config := DefaultConfig()
	config.Session.PongServer = "client.example.com"
	s := NewSession(config, nil, nil)
	assertEqual(s.Route("PING :abc").Reply, "PONG abc client.example.com", t)
}

func TestRouteBadPing(t *testing.T) {
	s := NewSession(nil, nil, nil)
	assertEqual(s.Route("PING"), Action{Kind: ActionDropped, Reason: DropPingWithoutCookie}, t)
	assertEqual(s.Route("PING :"), Action{Kind: ActionDropped, Reason: DropPingWithoutCookie}, t)
	assertEqual(s.Route("PING cookie"), Action{Kind: ActionDropped, Reason: DropPingWithoutCookie}, t)
	assertEqual(s.Route("PING :two words"), Action{Kind: ActionDropped, Reason: DropInvalidCookie}, t)
	assertEqual(s.Route("PING ::colon"), Action{Kind: ActionDropped, Reason: DropInvalidCookie}, t)
}

func TestRouteQueues(t *testing.T) {
	s := NewSession(nil, nil, nil)

	assertEqual(s.Route(":irc.example.com 353 me = #a :alice bob"), Action{Kind: ActionEnqueued, Queue: QueueInfo}, t)
	assertEqual(s.Route(":alice!a@example.com PRIVMSG #a :hello"), Action{Kind: ActionEnqueued, Queue: QueueChat}, t)
	assertEqual(s.Route(":irc.example.com 001 me :Welcome"), Action{Kind: ActionEnqueued, Queue: QueueInfo}, t)

	chat, info := s.Pending()
	assertEqual(chat, 1, t)
	assertEqual(info, 2, t)

	msg, ok := s.DequeueInfo()
	assertEqual(ok, true, t)
	assertEqual(msg.Server, "irc.example.com", t)
	assertEqual(msg.Command, "353", t)
	assertEqual(msg.Params, []string{"me", "=", "#a"}, t)
	assertEqual(msg.Trailing, "alice bob", t)

	msg, _ = s.DequeueInfo()
	assertEqual(msg.Command, "001", t)

	assertEqual(s.DequeueChatJSON(), `{"server":"","nick":"alice","user":"a","host":"example.com","command":"PRIVMSG","params":["#a"],"trailing":"hello"}`, t)

	_, ok = s.DequeueInfo()
	assertEqual(ok, false, t)
	assertEqual(s.DequeueChatJSON(), "", t)
	assertEqual(s.DequeueInfoJSON(), "", t)
}

func TestRouteFIFO(t *testing.T) {
	s := NewSession(nil, nil, nil)
	for _, text := range []string{"A", "B", "C"} {
		s.Route(":n!u@h PRIVMSG #a :" + text)
		s.Route(":srv 372 me :" + text)
	}
	for _, text := range []string{"A", "B", "C"} {
		msg, _ := s.DequeueChat()
		assertEqual(msg.Trailing, text, t)
		msg, _ = s.DequeueInfo()
		assertEqual(msg.Trailing, text, t)
	}
}

func TestRouteDropped(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(nil, debugLogger(t, &buf), nil)

	assertEqual(s.Route(":alice!a@h NOTICE me :hi"), Action{Kind: ActionDropped, Reason: DropUncategorized}, t)
	assertEqual(s.Route(":alice!a@h JOIN #a"), Action{Kind: ActionDropped, Reason: DropUncategorized}, t)
	// commands are matched exactly
	assertEqual(s.Route(":alice!a@h privmsg #a :hi"), Action{Kind: ActionDropped, Reason: DropUncategorized}, t)
	assertEqual(s.Route(""), Action{Kind: ActionDropped, Reason: DropUnparseable}, t)
	assertEqual(s.Route(":onlyprefix"), Action{Kind: ActionDropped, Reason: DropUnparseable}, t)

	chat, info := s.Pending()
	assertEqual(chat+info, 0, t)

	output := buf.String()
	if !strings.Contains(output, "Uncaught categorization of message : NOTICE") {
		t.Errorf("uncategorized message not logged:\n%s", output)
	}
	if !strings.Contains(output, "Dropped unparseable line") {
		t.Errorf("unparseable line not logged:\n%s", output)
	}
	if !strings.Contains(output, " : rawinput  : :alice!a@h JOIN #a") {
		t.Errorf("raw input not logged:\n%s", output)
	}
}

func TestRouteBoundedQueue(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Session.MaxQueueLength = 2
	s := NewSession(config, debugLogger(t, &buf), nil)

	for _, text := range []string{"A", "B", "C"} {
		s.Route(":n!u@h PRIVMSG #a :" + text)
	}
	chat, _ := s.Pending()
	assertEqual(chat, 2, t)
	msg, _ := s.DequeueChat()
	assertEqual(msg.Trailing, "B", t)
	msg, _ = s.DequeueChat()
	assertEqual(msg.Trailing, "C", t)

	if !strings.Contains(buf.String(), "Queue is full, discarded oldest message : chat") {
		t.Errorf("eviction not logged:\n%s", buf.String())
	}
}

func TestRouteConcurrent(t *testing.T) {
	s := NewSession(nil, nil, nil)
	const producers, count = 4, 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < count; i++ {
				s.Route(fmt.Sprintf(":n!u@h PRIVMSG #a :%d %d", p, i))
			}
		}(p)
	}

	// each producer's messages come out in the order it sent them
	next := make([]int, producers)
	received := 0
	for received < producers*count {
		msg, ok := s.DequeueChat()
		if !ok {
			continue
		}
		var p, i int
		fmt.Sscanf(msg.Trailing, "%d %d", &p, &i)
		if next[p] != i {
			t.Fatalf("producer %d: expected %d, got %d", p, next[p], i)
		}
		next[p]++
		received++
	}
	wg.Wait()
}

func TestEncodedLinesParse(t *testing.T) {
	s := NewSession(nil, nil, nil)
	line, err := s.Join([]string{"#a", "#b"}, []string{"k1", "k2"})
	if err != nil {
		t.Fatal(err)
	}
	msg, err := wire.Parse(line)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(msg.Command, "JOIN", t)
	assertEqual(msg.Params, []string{"#a,#b", "k1,k2"}, t)

	line, err = s.Part([]string{"#b"}, "see you")
	if err != nil {
		t.Fatal(err)
	}
	msg, _ = wire.Parse(line)
	assertEqual(msg.Command, "PART", t)
	assertEqual(msg.Params, []string{"#b"}, t)
	assertEqual(msg.Trailing, "see you", t)

	line, _ = s.Privmsg("hello world")
	msg, _ = wire.Parse(line)
	assertEqual(msg.Params, []string{"#a"}, t)
	assertEqual(msg.Trailing, "hello world", t)
}
