// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// released under the MIT license

package wire

import (
	"reflect"
	"testing"
)

func assertEqual(supplied, expected interface{}, t *testing.T) {
	t.Helper()
	if !reflect.DeepEqual(supplied, expected) {
		t.Errorf("expected %#v but got %#v", expected, supplied)
	}
}

type parseTest struct {
	raw string
	msg Message
}

var parseTests = []parseTest{
	{
		raw: ":nick!user@host PRIVMSG #chan :hello there",
		msg: Message{
			Prefix: "nick!user@host", Nick: "nick", User: "user", Host: "host",
			Command: "PRIVMSG", Params: []string{"#chan"},
			Trailing: "hello there", HasTrailing: true,
		},
	},
	{
		raw: ":irc.example.net PING :cookie123",
		msg: Message{
			Prefix: "irc.example.net", Server: "irc.example.net",
			Command: "PING", Trailing: "cookie123", HasTrailing: true,
		},
	},
	{
		raw: "PING :cookie123",
		msg: Message{Command: "PING", Trailing: "cookie123", HasTrailing: true},
	},
	{
		raw: ":server.name 353 me = #chan :alice bob",
		msg: Message{
			Prefix: "server.name", Server: "server.name",
			Command: "353", Params: []string{"me", "=", "#chan"},
			Trailing: "alice bob", HasTrailing: true,
		},
	},
	{
		// multiple spaces between every token
		raw: ":srv    NOTICE   a    b   :x  y ",
		msg: Message{
			Prefix: "srv", Server: "srv",
			Command: "NOTICE", Params: []string{"a", "b"},
			Trailing: "x  y ", HasTrailing: true,
		},
	},
	{
		// prefix and command, nothing else
		raw: ":nick!user@host QUIT",
		msg: Message{Prefix: "nick!user@host", Nick: "nick", User: "user", Host: "host", Command: "QUIT"},
	},
	{
		raw: "MODE #chan +o alice",
		msg: Message{Command: "MODE", Params: []string{"#chan", "+o", "alice"}},
	},
	{
		// empty trailing is present, not absent
		raw: "PRIVMSG #chan :",
		msg: Message{Command: "PRIVMSG", Params: []string{"#chan"}, HasTrailing: true},
	},
	{
		raw: ":nick!user JOIN #chan",
		msg: Message{Prefix: "nick!user", Nick: "nick", User: "user", Command: "JOIN", Params: []string{"#chan"}},
	},
	{
		raw: ":nick@host JOIN #chan",
		msg: Message{Prefix: "nick@host", Host: "host", Command: "JOIN", Params: []string{"#chan"}},
	},
	{
		raw: "001 me :Welcome\r\n",
		msg: Message{Command: "001", Params: []string{"me"}, Trailing: "Welcome", HasTrailing: true},
	},
	{
		// numeric form is not validated beyond its length
		raw: "4x2abc def",
		msg: Message{Command: "4x2", Params: []string{"abc", "def"}},
	},
	{
		raw: "12",
		msg: Message{Command: "12"},
	},
	{
		raw: "privmsg #a :lower case kept",
		msg: Message{Command: "privmsg", Params: []string{"#a"}, Trailing: "lower case kept", HasTrailing: true},
	},
}

func TestParse(t *testing.T) {
	for _, tt := range parseTests {
		msg, err := Parse(tt.raw)
		if err != nil {
			t.Errorf("unexpected error parsing %q: %v", tt.raw, err)
			continue
		}
		if !reflect.DeepEqual(msg, tt.msg) {
			t.Errorf("parsing %q:\nexpected %s\n     got %s", tt.raw, tt.msg.Describe(), msg.Describe())
		}
	}
}

func TestParseErrors(t *testing.T) {
	errorCases := map[string]error{
		"":                 ErrLineIsEmpty,
		"\r\n":             ErrLineIsEmpty,
		"     ":            ErrLineIsEmpty,
		":irc.example.net": ErrCommandMissing,
		":nick!u@h    ":    ErrCommandMissing,
	}
	for raw, expected := range errorCases {
		_, err := Parse(raw)
		if err != expected {
			t.Errorf("parsing %q: expected error %v, got %v", raw, expected, err)
		}
	}
}

func TestParseNoPrefix(t *testing.T) {
	for _, raw := range []string{"PING :x", "NOTICE * :hi", "005 a b c", "X", "ERROR :Closing link", " :evil!u@h PRIVMSG #a :hi", "   :srv 001 me :hi"} {
		msg, err := Parse(raw)
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", raw, err)
		}
		assertEqual(msg.Prefix, "", t)
		assertEqual(msg.Server, "", t)
		assertEqual(msg.Nick, "", t)
		assertEqual(msg.User, "", t)
		assertEqual(msg.Host, "", t)
	}
}

func TestParseUserPrefix(t *testing.T) {
	triples := [][3]string{
		{"alice", "al", "example.com"},
		{"b0b", "~bob", "127.0.0.1"},
		{"c[x]", "c", "gateway/web/x"},
	}
	for _, triple := range triples {
		raw := ":" + triple[0] + "!" + triple[1] + "@" + triple[2] + " COMMAND :trailing text"
		msg, err := Parse(raw)
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", raw, err)
		}
		assertEqual(msg.Nick, triple[0], t)
		assertEqual(msg.User, triple[1], t)
		assertEqual(msg.Host, triple[2], t)
		assertEqual(msg.Trailing, "trailing text", t)
	}
}

func TestParseDoesNotPanic(t *testing.T) {
	inputs := []string{
		":", "::", ": ", ":!", ":@", ":!@", ":@!", ":a@b!c X", "1", " :x", "A :", "A  ", "\x00", ":a :b",
		"PRIVMSG", "PRIVMSG ", "PRIVMSG :", "123456789",
	}
	for _, raw := range inputs {
		Parse(raw)
	}
}

func TestRecord(t *testing.T) {
	msg, err := Parse(":nick!user@host PRIVMSG #chan :hello")
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(msg.JSON(), `{"server":"","nick":"nick","user":"user","host":"host","command":"PRIVMSG","params":["#chan"],"trailing":"hello"}`, t)

	msg, err = Parse("PING")
	if err != nil {
		t.Fatal(err)
	}
	// params is a list even when there are none
	assertEqual(msg.JSON(), `{"server":"","nick":"","user":"","host":"","command":"PING","params":[],"trailing":""}`, t)
}

func TestIsNumeric(t *testing.T) {
	assertEqual(IsNumeric("001"), true, t)
	assertEqual(IsNumeric("353"), true, t)
	assertEqual(IsNumeric("35"), false, t)
	assertEqual(IsNumeric("3533"), false, t)
	assertEqual(IsNumeric("4x2"), false, t)
	assertEqual(IsNumeric("PRIVMSG"), false, t)
}

func TestParseKeepsOrigin(t *testing.T) {
	msg, err := Parse(":alice!al@example.com PRIVMSG #a :hi")
	if err != nil {
		t.Fatal(err)
	}
	// the record splits the origin; Prefix keeps it whole
	assertEqual(msg.Prefix, "alice!al@example.com", t)
	assertEqual(msg.Server, "", t)

	msg, _ = Parse(":nick@host PRIVMSG #a :hi")
	assertEqual(msg.Prefix, "nick@host", t)
	assertEqual(msg.Nick, "", t)
	assertEqual(msg.User, "", t)
	assertEqual(msg.Host, "host", t)
}
