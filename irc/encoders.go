// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// released under the MIT license

package irc

// one wraps a single-valued argument; empty means absent.
func one(value string) []string {
	if value == "" {
		return nil
	}
	return []string{value}
}

// Away marks the client as away; an empty message clears away status.
func (s *Session) Away(message string) (string, error) {
	return s.Command("away", one(message))
}

// Admin requests administrator details for server, or the local server.
func (s *Session) Admin(server string) (string, error) {
	return s.Command("admin", one(server))
}

func (s *Session) Motd(server string) (string, error) {
	return s.Command("motd", one(server))
}

func (s *Session) Time(server string) (string, error) {
	return s.Command("time", one(server))
}

func (s *Session) Version(server string) (string, error) {
	return s.Command("version", one(server))
}

func (s *Session) Rehash(server string) (string, error) {
	return s.Command("rehash", one(server))
}

func (s *Session) Die(server string) (string, error) {
	return s.Command("die", one(server))
}

func (s *Session) Restart(server string) (string, error) {
	return s.Command("restart", one(server))
}

func (s *Session) Info() (string, error) {
	return s.Command("info")
}

// Commands lists the commands the server supports.
func (s *Session) Commands() (string, error) {
	return s.Command("commands")
}

func (s *Session) Lusers() (string, error) {
	return s.Command("lusers")
}

func (s *Session) Modules() (string, error) {
	return s.Command("modules")
}

// Eline adds E-line exemptions for the given ident@host masks, or removes
// them if duration and reason are both empty. Supplying only one of the
// two is an error.
func (s *Session) Eline(masks []string, duration, reason string) (string, error) {
	return s.Command("eline", masks, one(duration), one(reason))
}

// Gline is Eline for network-wide bans.
func (s *Session) Gline(masks []string, duration, reason string) (string, error) {
	return s.Command("gline", masks, one(duration), one(reason))
}

// Kline is Eline for local server bans.
func (s *Session) Kline(masks []string, duration, reason string) (string, error) {
	return s.Command("kline", masks, one(duration), one(reason))
}

// Qline is Eline for nickname bans.
func (s *Session) Qline(nicks []string, duration, reason string) (string, error) {
	return s.Command("qline", nicks, one(duration), one(reason))
}

// Zline is Eline for IP address bans.
func (s *Session) Zline(ipaddrs []string, duration, reason string) (string, error) {
	return s.Command("zline", ipaddrs, one(duration), one(reason))
}

// Invite invites nick to channel, optionally expiring after duration. With
// no arguments it lists pending invites.
func (s *Session) Invite(nick, channel, duration string) (string, error) {
	return s.Command("invite", one(nick), one(channel), one(duration))
}

func (s *Session) Ison(nicks []string) (string, error) {
	return s.Command("ison", nicks)
}

func (s *Session) Userhost(nicks []string) (string, error) {
	return s.Command("userhost", nicks)
}

func (s *Session) Kill(nicks []string, reason string) (string, error) {
	return s.Command("kill", nicks, one(reason))
}

// Join joins channels, using keys if given (one per channel). The channels
// are added to the channel set once the line is sent.
func (s *Session) Join(channels, keys []string) (string, error) {
	return s.Command("join", channels, keys)
}

// Part leaves channels, all of which must be in the channel set.
func (s *Session) Part(channels []string, reason string) (string, error) {
	return s.Command("part", channels, one(reason))
}

func (s *Session) Kick(channel string, nicks []string, reason string) (string, error) {
	return s.Command("kick", one(channel), nicks, one(reason))
}

// List lists channels matching the whitespace-separated patterns.
func (s *Session) List(patterns string) (string, error) {
	return s.Command("list", one(patterns))
}

func (s *Session) LoadModule(module string) (string, error) {
	return s.Command("loadmodule", one(module))
}

func (s *Session) UnloadModule(module string) (string, error) {
	return s.Command("unloadmodule", one(module))
}

func (s *Session) ReloadModule(module string) (string, error) {
	return s.Command("reloadmodule", one(module))
}

func (s *Session) Mode(target, modes string, params []string) (string, error) {
	return s.Command("mode", one(target), one(modes), params)
}

func (s *Session) Names(channels []string) (string, error) {
	return s.Command("names", channels)
}

func (s *Session) Nick(nickname string) (string, error) {
	return s.Command("nick", one(nickname))
}

func (s *Session) Notice(targets []string, message string) (string, error) {
	return s.Command("notice", targets, one(message))
}

func (s *Session) Oper(name, password string) (string, error) {
	return s.Command("oper", one(name), one(password))
}

func (s *Session) Pass(password string) (string, error) {
	return s.Command("pass", one(password))
}

func (s *Session) Ping(cookie, server string) (string, error) {
	return s.Command("ping", one(cookie), one(server))
}

func (s *Session) Pong(cookie, server string) (string, error) {
	return s.Command("pong", one(cookie), one(server))
}

// Privmsg sends text to every channel in the channel set.
func (s *Session) Privmsg(text string) (string, error) {
	return s.Command("privmsg", one(text))
}

// Quit disconnects with an optional message.
func (s *Session) Quit(message string) (string, error) {
	return s.Command("quit", one(message))
}

func (s *Session) Servlist(nick, operType string) (string, error) {
	return s.Command("servlist", one(nick), one(operType))
}

func (s *Session) Squery(target, message string) (string, error) {
	return s.Command("squery", one(target), one(message))
}

func (s *Session) Stats(character, server string) (string, error) {
	return s.Command("stats", one(character), one(server))
}

// Topic queries the topic of channel, or sets it if newTopic is non-empty.
func (s *Session) Topic(channel, newTopic string) (string, error) {
	return s.Command("topic", one(channel), one(newTopic))
}

func (s *Session) Wallops(message string) (string, error) {
	return s.Command("wallops", one(message))
}

// Who sends WHO <patternStart> [<flags>][%<fields>,<queryType>] <patternEnd>.
func (s *Session) Who(patternStart, flags, fields, queryType, patternEnd string) (string, error) {
	return s.Command("who", one(patternStart), one(flags), one(fields), one(queryType), one(patternEnd))
}

func (s *Session) Whois(server string, nicks []string) (string, error) {
	return s.Command("whois", one(server), nicks)
}

func (s *Session) Whowas(nick, count string) (string, error) {
	return s.Command("whowas", one(nick), one(count))
}

func (s *Session) User(username, hostname, servername, realname string) (string, error) {
	return s.Command("user", one(username), one(hostname), one(servername), one(realname))
}
