// Copyright (c) 2012-2014 Jeremy Latt
// Copyright (c) 2014-2015 Edmund Huber
// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// released under the MIT license

package irc

import (
	"io"
	"sync"

	"github.com/ergochat/ircwire/irc/logger"
	"github.com/ergochat/ircwire/irc/queue"
	"github.com/ergochat/ircwire/irc/wire"
)

// Session is the client-side protocol state for one connection: the
// channels believed joined and the two inbound queues. It is owned by the
// host and shared by handle with the transport loop.
type Session struct {
	config  *Config
	logger  *logger.Manager
	sender  LineSender
	encoder Encoder

	// serializes encode+send+effect so channel set updates follow send order
	commandMutex sync.Mutex
	// every outbound line, commands and keepalive replies alike, is written
	// under sendMutex; transports need not support concurrent writers
	sendMutex sync.Mutex
	channels  *ChannelSet

	chat *queue.Queue[wire.Message]
	info *queue.Queue[wire.Message]
}

// NewSession returns a new session. A nil config means DefaultConfig, a nil
// logger discards log output, and a nil sender makes commands return their
// line without sending it.
func NewSession(config *Config, logger *logger.Manager, sender LineSender) *Session {
	if config == nil {
		config = DefaultConfig()
	}
	return &Session{
		config:   config,
		logger:   logger,
		sender:   sender,
		encoder:  Encoder{MaxLineLen: config.Session.MaxLineLength},
		channels: NewChannelSet(),
		chat:     queue.NewQueue[wire.Message](config.Session.MaxQueueLength),
		info:     queue.NewQueue[wire.Message](config.Session.MaxQueueLength),
	}
}

// Process routes a line and hands any keepalive reply to the session's sender.
func (s *Session) Process(raw string) (action Action, err error) {
	return s.process(raw, s.sender)
}

func (s *Session) process(raw string, sender LineSender) (action Action, err error) {
	action = s.Route(raw)
	if action.Kind == ActionAutoReply {
		err = s.sendTo(sender, action.Reply)
	}
	return
}

// Serve reads lines from conn until it fails, routing each one and writing
// keepalive replies back to conn. Oversized lines are dropped and reading
// continues. It returns nil when the peer closes the stream cleanly.
func (s *Session) Serve(conn IRCConn) error {
	for {
		line, err := conn.ReadLine()
		if err == io.EOF {
			s.logger.Debug("session", "Connection closed by peer")
			return nil
		} else if err == ErrReadQ {
			s.logger.Warning("router", "Dropped oversized line", err.Error())
			continue
		} else if err != nil {
			s.logger.Error("session", "Could not read line", err.Error())
			return err
		}
		if _, err = s.process(line, conn); err != nil {
			s.logger.Error("session", "Could not send keepalive reply", err.Error())
			return err
		}
	}
}

func (s *Session) sendTo(sender LineSender, line string) error {
	if sender == nil {
		return errNoSender
	}
	s.sendMutex.Lock()
	defer s.sendMutex.Unlock()
	if s.logger.IsLoggingRawIO() {
		s.logger.Debug("rawoutput", line)
	}
	return sender.SendLine(line)
}

// Command validates and encodes the named command, sends it (if the
// session has a sender) and then applies its effect on the channel set.
// On a validation error nothing is sent and nothing changes.
func (s *Session) Command(name string, args ...[]string) (line string, err error) {
	s.commandMutex.Lock()
	defer s.commandMutex.Unlock()

	line, effect, err := s.encoder.Encode(name, s.channels, args...)
	if err != nil {
		s.logger.Debug("encoder", "Rejected command", err.Error())
		return "", err
	}
	if s.sender != nil {
		if err = s.sendTo(s.sender, line); err != nil {
			s.logger.Error("session", "Could not send line", err.Error())
			return "", err
		}
	}
	effect.Apply(s.channels)
	return line, nil
}

// Register sends USER followed by NICK. Both are validated before either
// is sent.
func (s *Session) Register(username, hostname, servername, realname, nick string) (lines []string, err error) {
	s.commandMutex.Lock()
	defer s.commandMutex.Unlock()

	userLine, _, err := s.encoder.Encode("user", s.channels, one(username), one(hostname), one(servername), one(realname))
	if err != nil {
		return nil, err
	}
	nickLine, _, err := s.encoder.Encode("nick", s.channels, one(nick))
	if err != nil {
		return nil, err
	}
	lines = []string{userLine, nickLine}
	if s.sender != nil {
		for _, line := range lines {
			if err = s.sendTo(s.sender, line); err != nil {
				s.logger.Error("session", "Could not send line", err.Error())
				return nil, err
			}
		}
	}
	return lines, nil
}

// DequeueChat removes and returns the oldest chat message.
func (s *Session) DequeueChat() (wire.Message, bool) {
	return s.chat.Pop()
}

// DequeueInfo removes and returns the oldest info message.
func (s *Session) DequeueInfo() (wire.Message, bool) {
	return s.info.Pop()
}

// DequeueChatJSON is DequeueChat for consumers that want the JSON record;
// it returns "" when the queue is empty.
func (s *Session) DequeueChatJSON() string {
	if msg, ok := s.chat.Pop(); ok {
		return msg.JSON()
	}
	return ""
}

// DequeueInfoJSON is DequeueInfo for consumers that want the JSON record;
// it returns "" when the queue is empty.
func (s *Session) DequeueInfoJSON() string {
	if msg, ok := s.info.Pop(); ok {
		return msg.JSON()
	}
	return ""
}

// Pending returns the number of queued chat and info messages.
func (s *Session) Pending() (chat, info int) {
	return s.chat.Len(), s.info.Len()
}

// Channels returns the channels the session believes it has joined.
func (s *Session) Channels() []string {
	return s.channels.Channels()
}

// ResetChannels forgets every joined channel, e.g. after a disconnect.
func (s *Session) ResetChannels() {
	s.commandMutex.Lock()
	defer s.commandMutex.Unlock()
	s.channels.Reset()
}
