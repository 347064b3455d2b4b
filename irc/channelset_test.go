// Copyright (c) 2017 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

package irc

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

func TestChannelSet(t *testing.T) {
	cs := NewChannelSet()
	assertEqual(cs.Len(), 0, t)
	assertEqual(cs.Channels(), []string{}, t)

	cs.Add([]string{"#b", "#a", "#b"})
	assertEqual(cs.Channels(), []string{"#b", "#a"}, t)
	assertEqual(cs.Has("#a"), true, t)
	assertEqual(cs.Has("#c"), false, t)

	missing, ok := cs.HasAll([]string{"#a", "#c"})
	assertEqual(missing, "#c", t)
	assertEqual(ok, false, t)
	_, ok = cs.HasAll([]string{"#a", "#b"})
	assertEqual(ok, true, t)

	cs.Add([]string{"#c"})
	cs.Remove([]string{"#b", "#nope"})
	assertEqual(cs.Channels(), []string{"#a", "#c"}, t)
	assertEqual(cs.Has("#b"), false, t)

	// rejoining goes to the end
	cs.Add([]string{"#b"})
	assertEqual(cs.Channels(), []string{"#a", "#c", "#b"}, t)

	cs.Reset()
	assertEqual(cs.Len(), 0, t)
	assertEqual(cs.Has("#a"), false, t)
}

func TestChannelSetCopies(t *testing.T) {
	cs := NewChannelSet()
	cs.Add([]string{"#a"})
	channels := cs.Channels()
	channels[0] = "#mutated"
	assertEqual(cs.Channels(), []string{"#a"}, t)
}

func TestChannelSetNamesAreOpaque(t *testing.T) {
	cs := NewChannelSet()
	cs.Add([]string{"#Chan"})
	assertEqual(cs.Has("#chan"), false, t)
	assertEqual(cs.Has("#Chan"), true, t)
}
