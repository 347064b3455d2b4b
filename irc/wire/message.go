// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// released under the MIT license

package wire

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Message is one parsed protocol line as received from a server.
type Message struct {
	// Prefix is the origin tag without its leading ':', if the line had one.
	Prefix string
	// Server is set when the prefix is a bare server name.
	Server string
	Nick   string
	User   string
	Host   string

	// Command is either a named command, case preserved, or a
	// three-character numeric reply.
	Command string
	// Params holds the middle parameters in order.
	Params []string

	Trailing string
	// HasTrailing distinguishes an empty trailing parameter (`PRIVMSG #a :`)
	// from a line that had none at all.
	HasTrailing bool
}

// Record is the structured form handed to consumers that poll the queues.
// Absent optional fields are empty strings; Params is never nil.
type Record struct {
	Server   string   `json:"server"`
	Nick     string   `json:"nick"`
	User     string   `json:"user"`
	Host     string   `json:"host"`
	Command  string   `json:"command"`
	Params   []string `json:"params"`
	Trailing string   `json:"trailing"`
}

// IsNumeric returns true if the command is a numeric reply.
func (msg *Message) IsNumeric() bool {
	return IsNumeric(msg.Command)
}

// Record returns the consumer representation of the message.
func (msg *Message) Record() Record {
	params := make([]string, len(msg.Params))
	copy(params, msg.Params)
	return Record{
		Server:   msg.Server,
		Nick:     msg.Nick,
		User:     msg.User,
		Host:     msg.Host,
		Command:  msg.Command,
		Params:   params,
		Trailing: msg.Trailing,
	}
}

// JSON returns the message's Record encoded as a JSON object.
func (msg *Message) JSON() string {
	data, err := json.Marshal(msg.Record())
	if err != nil {
		// a Record is only strings, this can't happen
		return ""
	}
	return string(data)
}

// Describe renders every field on a separate line, for debug logging.
func (msg *Message) Describe() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "prefix=%q server=%q nick=%q user=%q host=%q command=%q",
		msg.Prefix, msg.Server, msg.Nick, msg.User, msg.Host, msg.Command)
	for i, param := range msg.Params {
		fmt.Fprintf(&buf, " middle[%d]=%q", i, param)
	}
	if msg.HasTrailing {
		fmt.Fprintf(&buf, " trailing=%q", msg.Trailing)
	}
	return buf.String()
}
