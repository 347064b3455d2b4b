// Copyright (c) 2017 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

import (
	"sync"

	"github.com/ergochat/ircwire/irc/utils"
)

// ChannelSet tracks the channels the client believes it has joined.
// Names are opaque; order of first join is preserved.
type ChannelSet struct {
	sync.RWMutex
	order   []string
	members utils.HashSet[string]
}

// NewChannelSet returns an empty ChannelSet.
func NewChannelSet() *ChannelSet {
	return &ChannelSet{members: make(utils.HashSet[string])}
}

// Has returns whether the channel is in the set.
func (cs *ChannelSet) Has(channel string) bool {
	cs.RLock()
	defer cs.RUnlock()
	return cs.members.Has(channel)
}

// HasAll returns the first channel that is not in the set, if any.
func (cs *ChannelSet) HasAll(channels []string) (missing string, ok bool) {
	cs.RLock()
	defer cs.RUnlock()
	for _, channel := range channels {
		if !cs.members.Has(channel) {
			return channel, false
		}
	}
	return "", true
}

// Channels returns a copy of the set, in join order.
func (cs *ChannelSet) Channels() (result []string) {
	cs.RLock()
	defer cs.RUnlock()
	result = make([]string, len(cs.order))
	copy(result, cs.order)
	return
}

// Len returns the number of channels in the set.
func (cs *ChannelSet) Len() int {
	cs.RLock()
	defer cs.RUnlock()
	return len(cs.order)
}

// Add adds channels that aren't already present.
func (cs *ChannelSet) Add(channels []string) {
	cs.Lock()
	defer cs.Unlock()
	for _, channel := range channels {
		if !cs.members.Has(channel) {
			cs.members.Add(channel)
			cs.order = append(cs.order, channel)
		}
	}
}

// Remove removes the given channels. The remaining channels are computed
// first and then swapped in as the new contents.
func (cs *ChannelSet) Remove(channels []string) {
	parting := make(utils.HashSet[string], len(channels))
	for _, channel := range channels {
		parting.Add(channel)
	}

	cs.Lock()
	defer cs.Unlock()
	remaining := make([]string, 0, len(cs.order))
	members := make(utils.HashSet[string], len(cs.order))
	for _, channel := range cs.order {
		if !parting.Has(channel) {
			remaining = append(remaining, channel)
			members.Add(channel)
		}
	}
	cs.order = remaining
	cs.members = members
}

// Reset empties the set, e.g. after a disconnect.
func (cs *ChannelSet) Reset() {
	cs.Lock()
	defer cs.Unlock()
	cs.order = nil
	cs.members = make(utils.HashSet[string])
}
