// Copyright (c) 2020 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/gorilla/websocket"
)

const (
	// DefaultMaxReadBytes bounds a single inbound line on a stream connection.
	DefaultMaxReadBytes = 8192
)

var (
	crlf = []byte{'\r', '\n'}

	// ErrReadQ is returned for an inbound line longer than the read buffer.
	// The line is discarded and the connection remains usable.
	ErrReadQ = errors.New("ReadQ Exceeded")
)

// LineSender is the transport's "send line" operation. line carries no
// terminator; the transport adds whatever framing it needs.
type LineSender interface {
	SendLine(line string) error
}

// IRCConn abstracts away the distinction between a stream connection that
// the host has already opened (plain TCP, TLS, a pipe) and a websocket.
// It doesn't expose Read and Write because websockets are message-oriented,
// not stream-oriented.
type IRCConn interface {
	LineSender

	ReadLine() (line string, err error)

	Close() error
}

// IRCStreamConn is an IRCConn over a CRLF-delimited byte stream.
type IRCStreamConn struct {
	conn         io.ReadWriteCloser
	reader       *bufio.Reader
	maxReadBytes int
}

// NewIRCStreamConn wraps a connection; lines longer than maxReadBytes are
// discarded with ErrReadQ (0 means DefaultMaxReadBytes).
func NewIRCStreamConn(conn io.ReadWriteCloser, maxReadBytes int) *IRCStreamConn {
	if maxReadBytes <= 0 {
		maxReadBytes = DefaultMaxReadBytes
	}
	return &IRCStreamConn{
		conn:         conn,
		maxReadBytes: maxReadBytes,
	}
}

func (cc *IRCStreamConn) SendLine(line string) (err error) {
	buf := make([]byte, 0, len(line)+len(crlf))
	buf = append(buf, line...)
	buf = append(buf, crlf...)
	_, err = cc.conn.Write(buf)
	return
}

func (cc *IRCStreamConn) ReadLine() (line string, err error) {
	// lazy initialize the reader
	if cc.reader == nil {
		cc.reader = bufio.NewReaderSize(cc.conn, cc.maxReadBytes)
	}

	lineBytes, isPrefix, err := cc.reader.ReadLine()
	if isPrefix {
		// discard the rest of the oversized line so the next read starts
		// on a line boundary
		for isPrefix && err == nil {
			_, isPrefix, err = cc.reader.ReadLine()
		}
		if err != nil {
			return "", err
		}
		return "", ErrReadQ
	}
	return string(bytes.TrimSuffix(lineBytes, crlf)), err
}

func (cc *IRCStreamConn) Close() (err error) {
	return cc.conn.Close()
}

// IRCWSConn is an IRCConn over a websocket, one text message per line.
type IRCWSConn struct {
	conn *websocket.Conn
}

func NewIRCWSConn(conn *websocket.Conn) IRCWSConn {
	return IRCWSConn{conn: conn}
}

func (wc IRCWSConn) SendLine(line string) (err error) {
	buf := bytes.TrimSuffix([]byte(line), crlf)
	// there's not much we can do about this;
	// silently drop the message
	if !utf8.Valid(buf) {
		return nil
	}
	return wc.conn.WriteMessage(websocket.TextMessage, buf)
}

func (wc IRCWSConn) ReadLine() (line string, err error) {
	for {
		messageType, buf, err := wc.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		// on empty message or non-text message, try again, block if necessary
		if messageType == websocket.TextMessage && len(buf) != 0 {
			return string(bytes.TrimSuffix(buf, crlf)), nil
		}
	}
}

func (wc IRCWSConn) Close() (err error) {
	return wc.conn.Close()
}
