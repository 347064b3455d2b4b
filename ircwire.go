// Copyright (c) 2012-2014 Jeremy Latt
// Copyright (c) 2014-2015 Edmund Huber
// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// released under the MIT license

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/docopt/docopt-go"
	"github.com/ergochat/irc-go/ircfmt"
	"github.com/ergochat/ircwire/irc"
	"github.com/ergochat/ircwire/irc/logger"
	"github.com/ergochat/ircwire/irc/wire"
)

var errTooManyArgs = errors.New("Too many arguments")

// set via linker flags, either by make or by goreleaser:
var commit = ""  // git hash
var version = "" // tagged version

// stdio glues a line source and stdout into one connection
type stdio struct {
	io.Reader
	io.Writer
	closer io.Closer
}

func (s *stdio) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func loadConfig(arguments docopt.Opts) *irc.Config {
	configfile, _ := arguments["--conf"].(string)
	if configfile == "" {
		return irc.DefaultConfig()
	}
	config, err := irc.LoadConfig(configfile)
	if err != nil {
		log.Fatal("Config file did not load successfully: ", err.Error())
	}
	return config
}

// implements the `ircwire replay` command
func doReplay(config *irc.Config, logman *logger.Manager, filename string, strip bool) {
	conn := &stdio{Reader: os.Stdin, Writer: os.Stdout}
	if filename != "" {
		file, err := os.Open(filename)
		if err != nil {
			log.Fatal("Could not open input: ", err.Error())
		}
		conn.Reader = file
		conn.closer = file
	} else if term.IsTerminal(int(syscall.Stdin)) {
		fmt.Fprintln(os.Stderr, "Reading raw lines from the terminal, end with Ctrl-D")
	}

	session := irc.NewSession(config, logman, nil)
	stream := irc.NewIRCStreamConn(conn, config.Session.MaxReadLength)
	defer stream.Close()
	if err := session.Serve(stream); err != nil {
		log.Fatal("Replay stopped: ", err.Error())
	}

	writeQueued(os.Stdout, session, strip)
}

// writeQueued drains both queues to w, info first, one JSON record per line
func writeQueued(w io.Writer, session *irc.Session, strip bool) {
	emit := func(queue string, msg wire.Message) {
		if strip {
			msg.Trailing = ircfmt.Strip(msg.Trailing)
		}
		fmt.Fprintf(w, "%s %s\n", queue, msg.JSON())
	}
	for {
		msg, ok := session.DequeueInfo()
		if !ok {
			break
		}
		emit("info", msg)
	}
	for {
		msg, ok := session.DequeueChat()
		if !ok {
			break
		}
		emit("chat", msg)
	}
}

func splitList(value string) (result []string) {
	for _, entry := range strings.Split(value, ",") {
		if entry != "" {
			result = append(result, entry)
		}
	}
	return
}

// encodeArgs maps command-line arguments onto the command's inputs; list
// inputs are comma-separated
func encodeArgs(cmd *irc.CommandSpec, rawArgs []string) (args [][]string, err error) {
	inputs := cmd.Inputs()
	if len(inputs) < len(rawArgs) {
		return nil, errTooManyArgs
	}

	args = make([][]string, len(rawArgs))
	for i, raw := range rawArgs {
		if inputs[i].List {
			args[i] = splitList(raw)
		} else {
			args[i] = []string{raw}
		}
	}
	return args, nil
}

// implements the `ircwire encode` command
func doEncode(config *irc.Config, name string, joined string, rawArgs []string) {
	cmd, ok := irc.LookupCommand(name)
	if !ok {
		log.Fatalf("Unknown command %s; see `ircwire commands`", name)
	}
	args, err := encodeArgs(cmd, rawArgs)
	if err != nil {
		log.Fatalf("%s, usage: %s", err.Error(), cmd.Usage())
	}

	channels := irc.NewChannelSet()
	channels.Add(splitList(joined))

	encoder := irc.Encoder{MaxLineLen: config.Session.MaxLineLength}
	line, _, err := encoder.Encode(cmd.Name(), channels, args...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		fmt.Fprintln(os.Stderr, "usage:", cmd.Usage())
		os.Exit(1)
	}
	fmt.Println(line)
}

func main() {
	irc.SetVersionString(version, commit)
	usage := `ircwire.
Usage:
	ircwire replay [--conf <filename>] [--strip] [<file>]
	ircwire encode [--conf <filename>] [--joined <channels>] <command> [<arg>...]
	ircwire commands
	ircwire -h | --help
	ircwire --version
Options:
	--conf <filename>      Configuration file to use.
	--strip                Remove formatting codes from message text.
	--joined <channels>    Comma-separated channels to treat as joined.
	-h --help              Show this screen.
	--version              Show version.`

	arguments, _ := docopt.ParseArgs(usage, nil, irc.Ver)

	if arguments["commands"].(bool) {
		for _, name := range irc.CommandNames() {
			cmd, _ := irc.LookupCommand(name)
			fmt.Printf("%-13s %s\n", cmd.Verb(), cmd.Usage())
		}
		return
	}

	config := loadConfig(arguments)
	logman, err := logger.NewManager(config.Logging)
	if err != nil {
		log.Fatal("Logger did not load successfully:", err.Error())
	}
	defer logman.Close()

	if arguments["replay"].(bool) {
		filename, _ := arguments["<file>"].(string)
		logman.Debug("session", fmt.Sprintf("%s replaying", irc.Ver))
		doReplay(config, logman, filename, arguments["--strip"].(bool))
	} else if arguments["encode"].(bool) {
		joined, _ := arguments["--joined"].(string)
		rawArgs, _ := arguments["<arg>"].([]string)
		doEncode(config, arguments["<command>"].(string), joined, rawArgs)
	}
}
