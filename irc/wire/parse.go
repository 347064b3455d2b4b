// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// released under the MIT license

package wire

import (
	"errors"
	"strings"
)

var (
	// ErrLineIsEmpty indicates that the given line was empty.
	ErrLineIsEmpty = errors.New("Line is empty")
	// ErrCommandMissing indicates that no command could be derived from the line.
	ErrCommandMissing = errors.New("Line has no command")
)

//  <message>  ::= [':' <prefix> <SPACE> ] <command> <params> <crlf>
//  <prefix>   ::= <servername> | <nick> [ '!' <user> ] [ '@' <host> ]
//  <command>  ::= <letter> { <letter> } | <number> <number> <number>
//  <SPACE>    ::= ' ' { ' ' }
//  <params>   ::= <SPACE> [ ':' <trailing> | <middle> <params> ]

// Parse turns one raw protocol line into a Message. It fails only when no
// command can be derived; any other malformation yields partial fields.
func Parse(raw string) (msg Message, err error) {
	line := strings.TrimSuffix(raw, "\n")
	line = strings.TrimSuffix(line, "\r")

	// source, only if the line itself starts with ':'
	if len(line) != 0 && line[0] == ':' {
		prefixEnd := strings.IndexByte(line, ' ')
		if prefixEnd == -1 {
			prefixEnd = len(line)
		}
		msg.Prefix = line[1:prefixEnd]
		msg.splitPrefix()
		line = trimInitialSpaces(line[prefixEnd:])
	} else {
		line = trimInitialSpaces(line)
		if len(line) == 0 {
			return msg, ErrLineIsEmpty
		}
	}

	// command
	if len(line) == 0 {
		return msg, ErrCommandMissing
	}
	if isLetter(line[0]) {
		commandEnd := strings.IndexByte(line, ' ')
		if commandEnd == -1 {
			commandEnd = len(line)
		}
		msg.Command = line[:commandEnd]
		line = line[commandEnd:]
	} else {
		// <number> <number> <number>, cut short by end of line or a space
		commandEnd := 0
		for commandEnd < 3 && commandEnd < len(line) && line[commandEnd] != ' ' {
			commandEnd++
		}
		msg.Command = line[:commandEnd]
		line = line[commandEnd:]
	}

	// params
	for {
		line = trimInitialSpaces(line)
		if len(line) == 0 {
			break
		}
		if line[0] == ':' {
			msg.Trailing = line[1:]
			msg.HasTrailing = true
			break
		}
		paramEnd := strings.IndexByte(line, ' ')
		if paramEnd == -1 {
			paramEnd = len(line)
		}
		msg.Params = append(msg.Params, line[:paramEnd])
		line = line[paramEnd:]
	}

	return msg, nil
}

// splitPrefix decomposes Prefix into nick, user and host, or treats it as a
// server name if it contains neither '!' nor '@'. Prefix itself is kept
// as-is, so the raw origin survives for user-sourced lines.
func (msg *Message) splitPrefix() {
	prefix := msg.Prefix
	bang := strings.IndexByte(prefix, '!')
	at := strings.IndexByte(prefix, '@')

	switch {
	case bang == -1 && at == -1:
		msg.Server = prefix
	case bang != -1 && at == -1:
		msg.Nick = prefix[:bang]
		msg.User = prefix[bang+1:]
	case bang == -1 && at != -1:
		// a nick is only recognized in front of '!'
		msg.Host = prefix[at+1:]
	default:
		msg.Nick = prefix[:bang]
		msg.Host = prefix[at+1:]
		if bang < at {
			msg.User = prefix[bang+1 : at]
		}
	}
}

// IsNumeric returns true if command is the three-digit numeric form.
func IsNumeric(command string) bool {
	if len(command) != 3 {
		return false
	}
	for i := 0; i < len(command); i++ {
		if command[i] < '0' || '9' < command[i] {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// slice off any amount of ' ' from the front of the string
func trimInitialSpaces(str string) string {
	var i int
	for i = 0; i < len(str) && str[i] == ' '; i++ {
	}
	return str[i:]
}
