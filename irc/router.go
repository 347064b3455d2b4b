// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// released under the MIT license

package irc

import (
	"github.com/ergochat/ircwire/irc/queue"
	"github.com/ergochat/ircwire/irc/wire"
)

// ActionKind is the outcome of routing one inbound line.
type ActionKind uint

const (
	ActionDropped ActionKind = iota
	ActionAutoReply
	ActionEnqueued
)

// QueueName identifies one of the two message queues.
type QueueName uint

const (
	QueueNone QueueName = iota
	QueueChat
	QueueInfo
)

func (q QueueName) String() string {
	switch q {
	case QueueChat:
		return "chat"
	case QueueInfo:
		return "info"
	default:
		return "none"
	}
}

// DropReason explains why a line was neither queued nor answered.
type DropReason string

const (
	DropUnparseable       DropReason = "unparseable"
	DropPingWithoutCookie DropReason = "ping-without-cookie"
	DropInvalidCookie     DropReason = "invalid-cookie"
	DropUncategorized     DropReason = "uncategorized-command"
)

// Action is what the router did with a line.
type Action struct {
	Kind ActionKind
	// Queue is set for ActionEnqueued.
	Queue QueueName
	// Reply is the line to send back, for ActionAutoReply.
	Reply string
	// Reason is set for ActionDropped.
	Reason DropReason
}

// Route parses one inbound line and either produces a keepalive reply,
// enqueues the message, or drops it. It performs no I/O; drops are logged.
func (s *Session) Route(raw string) Action {
	if s.logger.IsLoggingRawIO() {
		s.logger.Debug("rawinput", raw)
	}

	msg, err := wire.Parse(raw)
	if err != nil {
		s.logger.Warning("router", "Dropped unparseable line", err.Error())
		return Action{Kind: ActionDropped, Reason: DropUnparseable}
	}
	s.logger.Debug("parser", msg.Describe())

	// keepalive short-circuits classification
	if msg.Command == "PING" {
		if msg.Trailing == "" {
			s.logger.Warning("router", "Dropped PING without a cookie", raw)
			return Action{Kind: ActionDropped, Reason: DropPingWithoutCookie}
		}
		reply, _, err := s.encoder.Encode("pong", nil, []string{msg.Trailing}, []string{s.config.Session.PongServer})
		if err != nil {
			s.logger.Warning("router", "Could not answer PING", err.Error())
			return Action{Kind: ActionDropped, Reason: DropInvalidCookie}
		}
		return Action{Kind: ActionAutoReply, Reply: reply}
	}

	switch {
	case wire.IsNumeric(msg.Command):
		s.enqueue(s.info, QueueInfo, msg)
		return Action{Kind: ActionEnqueued, Queue: QueueInfo}
	case msg.Command == "PRIVMSG":
		s.enqueue(s.chat, QueueChat, msg)
		return Action{Kind: ActionEnqueued, Queue: QueueChat}
	default:
		s.logger.Warning("router", "Uncaught categorization of message", msg.Command)
		return Action{Kind: ActionDropped, Reason: DropUncategorized}
	}
}

func (s *Session) enqueue(q *queue.Queue[wire.Message], name QueueName, msg wire.Message) {
	if evicted, ok := q.Push(msg); ok {
		s.logger.Warning("router", "Queue is full, discarded oldest message", name.String(), evicted.Command)
	}
}
