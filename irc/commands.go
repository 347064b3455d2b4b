// Copyright (c) 2012-2014 Jeremy Latt
// Copyright (c) 2014-2015 Edmund Huber
// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// released under the MIT license

package irc

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ergochat/irc-go/ircmsg"
	"github.com/ergochat/irc-go/ircutils"
)

const (
	// DefaultMaxLineLen is the RFC 1459 limit, including the CRLF.
	DefaultMaxLineLen = 512
)

type paramShape uint

const (
	// one middle parameter
	shapeSingle paramShape = iota
	// one middle parameter, entries joined with ','
	shapeList
	// one middle parameter per entry
	shapeWords
	// user-visible prose, always sent as the trailing parameter
	shapeText
)

type param struct {
	name  string
	shape paramShape
	// hidden params are accepted as input but not serialized directly
	hidden bool
	// derived params are computed by the command's prepare step
	derived bool
}

func single(name string) param { return param{name: name, shape: shapeSingle} }
func list(name string) param   { return param{name: name, shape: shapeList} }
func words(name string) param  { return param{name: name, shape: shapeWords} }
func text(name string) param   { return param{name: name, shape: shapeText} }

func hidden(p param) param {
	p.hidden = true
	return p
}

func derived(p param) param {
	p.derived = true
	return p
}

// argSet maps parameter names to their values. Empty values are absent.
type argSet map[string][]string

func (args argSet) present(name string) bool {
	return len(args[name]) != 0
}

func (args argSet) first(name string) string {
	if values := args[name]; len(values) != 0 {
		return values[0]
	}
	return ""
}

// rule checks one validation condition; it returns the offending param name
// (or value) and a validation sentinel.
type rule func(args argSet, channels *ChannelSet) (string, error)

func required(name string) rule {
	return func(args argSet, channels *ChannelSet) (string, error) {
		if !args.present(name) {
			return name, ErrMissingParam
		}
		return "", nil
	}
}

// paired params are both present or both absent
func paired(a, b string) rule {
	return func(args argSet, channels *ChannelSet) (string, error) {
		if args.present(a) != args.present(b) {
			return a + "/" + b, ErrUnpairedParams
		}
		return "", nil
	}
}

// dependsOn: if a is present, b must be too
func dependsOn(a, b string) rule {
	return func(args argSet, channels *ChannelSet) (string, error) {
		if args.present(a) && !args.present(b) {
			return a, ErrMissingDependency
		}
		return "", nil
	}
}

// sameCount: if a is present, it has as many entries as b
func sameCount(a, b string) rule {
	return func(args argSet, channels *ChannelSet) (string, error) {
		if args.present(a) && len(args[a]) != len(args[b]) {
			return a, ErrKeyCountMismatch
		}
		return "", nil
	}
}

func singleChar(name string) rule {
	return func(args argSet, channels *ChannelSet) (string, error) {
		if args.present(name) && utf8.RuneCountInString(args.first(name)) != 1 {
			return name, ErrNotSingleChar
		}
		return "", nil
	}
}

func numeric(name string) rule {
	return func(args argSet, channels *ChannelSet) (string, error) {
		value := args.first(name)
		for i := 0; i < len(value); i++ {
			if value[i] < '0' || '9' < value[i] {
				return name, ErrNotNumeric
			}
		}
		return "", nil
	}
}

// joined: every listed channel is already in the channel set
func joined(name string) rule {
	return func(args argSet, channels *ChannelSet) (string, error) {
		if missing, ok := channels.HasAll(args[name]); !ok {
			return missing, ErrNotOnChannel
		}
		return "", nil
	}
}

// anyJoined: the derived broadcast target list is non-empty
func anyJoined(name string) rule {
	return func(args argSet, channels *ChannelSet) (string, error) {
		if !args.present(name) {
			return "", ErrNoChannels
		}
		return "", nil
	}
}

type channelEffect uint

const (
	effectNone channelEffect = iota
	effectJoin
	effectPart
)

// Effect is the change to the channel set caused by a command, applied only
// once the command's line has been handed to the transport.
type Effect struct {
	kind     channelEffect
	channels []string
}

// Apply performs the effect on the given channel set.
func (effect Effect) Apply(channels *ChannelSet) {
	switch effect.kind {
	case effectJoin:
		channels.Add(effect.channels)
	case effectPart:
		channels.Remove(effect.channels)
	}
}

// CommandSpec describes how one outbound command is validated and serialized.
type CommandSpec struct {
	name   string
	verb   string
	params []param
	rules  []rule
	// prepare fills in derived params
	prepare func(args argSet, channels *ChannelSet)
	effect  channelEffect
	// which param the effect applies to
	effectParam string
}

// InputParam describes one positional argument accepted by a command.
type InputParam struct {
	Name string
	// List inputs take several entries (e.g. channels); the others take
	// at most one.
	List bool
}

// Name returns the command's encoder name, e.g. "kline".
func (cmd *CommandSpec) Name() string {
	return cmd.name
}

// Verb returns the protocol keyword, e.g. "KLINE".
func (cmd *CommandSpec) Verb() string {
	return cmd.verb
}

// Inputs returns the positional arguments the command takes, in order.
func (cmd *CommandSpec) Inputs() (result []InputParam) {
	for _, p := range cmd.params {
		if !p.derived {
			result = append(result, InputParam{
				Name: p.name,
				List: p.shape == shapeList || p.shape == shapeWords,
			})
		}
	}
	return
}

// Usage returns a short synopsis such as "kline <masks,...> [duration] [reason]".
func (cmd *CommandSpec) Usage() string {
	var buf strings.Builder
	buf.WriteString(cmd.name)
	requiredParams := make(map[string]bool)
	noChannels := NewChannelSet()
	for _, p := range cmd.params {
		// run each rule with only this param missing
		args := make(argSet)
		for _, other := range cmd.params {
			if other.name != p.name {
				args[other.name] = []string{"x"}
			}
		}
		for _, r := range cmd.rules {
			if name, err := r(args, noChannels); err == ErrMissingParam && name == p.name {
				requiredParams[p.name] = true
			}
		}
	}
	for _, input := range cmd.Inputs() {
		name := input.Name
		if input.List {
			name += ",..."
		}
		if requiredParams[input.Name] {
			buf.WriteString(" <" + name + ">")
		} else {
			buf.WriteString(" [" + name + "]")
		}
	}
	return buf.String()
}

// Commands holds every outbound command the encoder knows, by name.
var Commands map[string]*CommandSpec

func xline(name, verb, maskName string) *CommandSpec {
	return &CommandSpec{
		name:   name,
		verb:   verb,
		params: []param{list(maskName), single("duration"), text("reason")},
		rules:  []rule{required(maskName), paired("duration", "reason")},
	}
}

func serverQuery(name, verb string) *CommandSpec {
	return &CommandSpec{name: name, verb: verb, params: []param{single("server")}}
}

func bare(name, verb string) *CommandSpec {
	return &CommandSpec{name: name, verb: verb}
}

func moduleCommand(name, verb string) *CommandSpec {
	return &CommandSpec{
		name:   name,
		verb:   verb,
		params: []param{single("module")},
		rules:  []rule{required("module")},
	}
}

func init() {
	specs := []*CommandSpec{
		{
			name:   "away",
			verb:   "AWAY",
			params: []param{text("message")},
		},
		serverQuery("admin", "ADMIN"),
		serverQuery("motd", "MOTD"),
		serverQuery("time", "TIME"),
		serverQuery("version", "VERSION"),
		serverQuery("rehash", "REHASH"),
		{
			name:   "die",
			verb:   "DIE",
			params: []param{single("server")},
			rules:  []rule{required("server")},
		},
		{
			name:   "restart",
			verb:   "RESTART",
			params: []param{single("server")},
			rules:  []rule{required("server")},
		},
		bare("info", "INFO"),
		bare("commands", "COMMANDS"),
		bare("lusers", "LUSERS"),
		bare("modules", "MODULES"),
		xline("eline", "ELINE", "masks"),
		xline("gline", "GLINE", "masks"),
		xline("kline", "KLINE", "masks"),
		xline("qline", "QLINE", "nicks"),
		xline("zline", "ZLINE", "ipaddrs"),
		{
			name:   "invite",
			verb:   "INVITE",
			params: []param{single("nick"), single("channel"), single("duration")},
			rules:  []rule{paired("nick", "channel"), dependsOn("duration", "channel")},
		},
		{
			name:   "ison",
			verb:   "ISON",
			params: []param{words("nicks")},
			rules:  []rule{required("nicks")},
		},
		{
			name:   "userhost",
			verb:   "USERHOST",
			params: []param{words("nicks")},
			rules:  []rule{required("nicks")},
		},
		{
			name:   "kill",
			verb:   "KILL",
			params: []param{list("nicks"), text("reason")},
			rules:  []rule{required("nicks")},
		},
		{
			name:        "join",
			verb:        "JOIN",
			params:      []param{list("channels"), list("keys")},
			rules:       []rule{required("channels"), sameCount("keys", "channels")},
			effect:      effectJoin,
			effectParam: "channels",
		},
		{
			name:        "part",
			verb:        "PART",
			params:      []param{list("channels"), text("reason")},
			rules:       []rule{required("channels"), joined("channels")},
			effect:      effectPart,
			effectParam: "channels",
		},
		{
			name:   "kick",
			verb:   "KICK",
			params: []param{single("channel"), list("nicks"), text("reason")},
			rules:  []rule{required("channel"), required("nicks")},
		},
		{
			name:   "list",
			verb:   "LIST",
			params: []param{hidden(single("patterns")), derived(words("pattern"))},
			rules:  []rule{required("patterns"), required("pattern")},
			prepare: func(args argSet, channels *ChannelSet) {
				args["pattern"] = strings.Fields(args.first("patterns"))
			},
		},
		moduleCommand("loadmodule", "LOADMODULE"),
		moduleCommand("unloadmodule", "UNLOADMODULE"),
		moduleCommand("reloadmodule", "RELOADMODULE"),
		{
			name:   "mode",
			verb:   "MODE",
			params: []param{single("target"), single("modes"), words("params")},
			rules:  []rule{required("target"), required("modes")},
		},
		{
			name:   "names",
			verb:   "NAMES",
			params: []param{list("channels")},
		},
		{
			name:   "nick",
			verb:   "NICK",
			params: []param{single("nickname")},
			rules:  []rule{required("nickname")},
		},
		{
			name:   "notice",
			verb:   "NOTICE",
			params: []param{list("targets"), text("message")},
			rules:  []rule{required("targets"), required("message")},
		},
		{
			name:   "oper",
			verb:   "OPER",
			params: []param{single("name"), single("password")},
			rules:  []rule{required("name"), required("password")},
		},
		{
			name:   "pass",
			verb:   "PASS",
			params: []param{single("password")},
			rules:  []rule{required("password")},
		},
		{
			name:   "ping",
			verb:   "PING",
			params: []param{single("cookie"), single("server")},
			rules:  []rule{required("cookie")},
		},
		{
			name:   "pong",
			verb:   "PONG",
			params: []param{single("cookie"), single("server")},
			rules:  []rule{required("cookie")},
		},
		{
			name:   "privmsg",
			verb:   "PRIVMSG",
			params: []param{derived(list("targets")), text("text")},
			rules:  []rule{anyJoined("targets"), required("text")},
			prepare: func(args argSet, channels *ChannelSet) {
				args["targets"] = channels.Channels()
			},
		},
		{
			name:   "quit",
			verb:   "QUIT",
			params: []param{text("message")},
		},
		{
			name:   "servlist",
			verb:   "SERVLIST",
			params: []param{single("nick"), single("opertype")},
			rules:  []rule{dependsOn("opertype", "nick")},
		},
		{
			name:   "squery",
			verb:   "SQUERY",
			params: []param{single("target"), text("message")},
			rules:  []rule{required("target"), required("message")},
		},
		{
			name:   "stats",
			verb:   "STATS",
			params: []param{single("character"), single("server")},
			rules:  []rule{required("character"), singleChar("character")},
		},
		{
			name:   "topic",
			verb:   "TOPIC",
			params: []param{single("channel"), text("topic")},
			rules:  []rule{required("channel")},
		},
		{
			name:   "wallops",
			verb:   "WALLOPS",
			params: []param{text("message")},
			rules:  []rule{required("message")},
		},
		{
			// WHO <pattern> [<flags>][%[<fields>[,<querytype>]]] <pattern>
			name: "who",
			verb: "WHO",
			params: []param{
				single("patternstart"),
				hidden(single("flags")),
				hidden(single("fields")),
				hidden(single("querytype")),
				derived(single("selector")),
				single("patternend"),
			},
			rules: []rule{required("patternstart"), required("patternend"), paired("fields", "querytype")},
			prepare: func(args argSet, channels *ChannelSet) {
				selector := args.first("flags")
				if args.present("fields") {
					selector += "%" + args.first("fields") + "," + args.first("querytype")
				}
				if selector != "" {
					args["selector"] = []string{selector}
				}
			},
		},
		{
			name:   "whois",
			verb:   "WHOIS",
			params: []param{single("server"), list("nicks")},
			rules:  []rule{required("nicks")},
		},
		{
			name:   "whowas",
			verb:   "WHOWAS",
			params: []param{single("nick"), single("count")},
			rules:  []rule{required("nick"), numeric("count")},
		},
		{
			name:   "user",
			verb:   "USER",
			params: []param{single("username"), single("hostname"), single("servername"), text("realname")},
			rules:  []rule{required("username"), required("hostname"), required("servername"), required("realname")},
		},
	}

	Commands = make(map[string]*CommandSpec, len(specs))
	for _, spec := range specs {
		Commands[spec.name] = spec
	}
}

// LookupCommand returns the command with the given name (case-insensitive).
func LookupCommand(name string) (cmd *CommandSpec, ok bool) {
	cmd, ok = Commands[strings.ToLower(name)]
	return
}

// CommandNames returns the names of all known commands, sorted.
func CommandNames() (result []string) {
	result = make([]string, 0, len(Commands))
	for name := range Commands {
		result = append(result, name)
	}
	sort.Strings(result)
	return
}

// Encoder turns command arguments into protocol lines. It has no state of
// its own; the channel set it is given is only read.
type Encoder struct {
	// MaxLineLen is the longest permitted line, including the CRLF.
	MaxLineLen int
}

// Encode validates and serializes the named command. args are positional,
// matching CommandSpec.Inputs; single-valued params use the first entry.
// The returned line has no CRLF. Nothing is mutated: the caller applies
// the returned Effect once the line has actually been sent.
func (enc Encoder) Encode(name string, channels *ChannelSet, args ...[]string) (line string, effect Effect, err error) {
	cmd, ok := LookupCommand(name)
	if !ok {
		return "", effect, &ValidationError{Command: strings.ToUpper(name), Err: ErrUnknownCommand}
	}
	return enc.encode(cmd, channels, args)
}

func (enc Encoder) encode(cmd *CommandSpec, channels *ChannelSet, input [][]string) (line string, effect Effect, err error) {
	fail := func(param string, err error) (string, Effect, error) {
		return "", Effect{}, &ValidationError{Command: cmd.verb, Param: param, Err: err}
	}

	if channels == nil {
		channels = NewChannelSet()
	}

	maxLineLen := enc.MaxLineLen
	if maxLineLen == 0 {
		maxLineLen = DefaultMaxLineLen
	}

	args := make(argSet)
	i := 0
	for _, p := range cmd.params {
		if p.derived {
			continue
		}
		if i < len(input) {
			args[p.name] = normalizeArg(p, input[i], maxLineLen)
		}
		i++
	}
	if i < len(input) {
		for _, extra := range input[i:] {
			if len(extra) != 0 {
				return fail("", ErrTooManyParams)
			}
		}
	}

	if cmd.prepare != nil {
		cmd.prepare(args, channels)
	}

	for _, r := range cmd.rules {
		if param, err := r(args, channels); err != nil {
			return fail(param, err)
		}
	}

	var params []string
	trailing := false
	for _, p := range cmd.params {
		if p.hidden || !args.present(p.name) {
			continue
		}
		switch p.shape {
		case shapeSingle:
			params = append(params, args.first(p.name))
		case shapeList:
			params = append(params, strings.Join(args[p.name], ","))
		case shapeWords:
			params = append(params, args[p.name]...)
		case shapeText:
			params = append(params, args.first(p.name))
			trailing = true
		}
	}
	middle := params
	if trailing {
		middle = params[:len(params)-1]
	}
	for _, value := range middle {
		if !isValidMiddleParam(value) {
			return fail(value, ErrBadParam)
		}
	}

	msg := ircmsg.MakeMessage(nil, "", cmd.verb, params...)
	if trailing {
		msg.ForceTrailing()
	}
	lineBytes, err := msg.LineBytesStrict(true, maxLineLen)
	if err == ircmsg.ErrorBodyTooLong {
		return fail("", ErrLineTooLong)
	} else if errors.Is(err, ircmsg.ErrorBadParam) {
		return fail("", ErrBadParam)
	} else if err != nil {
		return fail("", err)
	}

	if cmd.effect != effectNone {
		effect = Effect{kind: cmd.effect, channels: args[cmd.effectParam]}
	}
	return string(bytes.TrimSuffix(lineBytes, crlf)), effect, nil
}

func normalizeArg(p param, values []string, maxLineLen int) []string {
	switch p.shape {
	case shapeSingle:
		if len(values) == 0 || values[0] == "" {
			return nil
		}
		return values[:1]
	case shapeText:
		// no CR, LF or NUL can reach the wire
		if len(values) == 0 {
			return nil
		}
		if value := ircutils.SanitizeText(values[0], maxLineLen); value != "" {
			return []string{value}
		}
		return nil
	default:
		if len(values) == 0 {
			return nil
		}
		result := make([]string, len(values))
		copy(result, values)
		return result
	}
}

// a middle param cannot be empty, contain a space, or start with ':'
func isValidMiddleParam(param string) bool {
	return param != "" && strings.IndexByte(param, ' ') == -1 && param[0] != ':'
}
