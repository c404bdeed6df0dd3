// Package editor implements the alarm store: the committed alarm schedule
// plus the transient editor session (draft, query, search results).
//
// Commands execute atomically under one mutex and return deep-cloned
// snapshots. Audio acquisition is asynchronous: ResolveFromURL and
// SelectCandidate arm a delayed "conversion finished" completion, Search a
// delayed result publication. Each completion is tagged with the editor
// session active at dispatch time and discarded if the session has since
// closed, so a cancelled editor can never be resurrected by a late timer.
package editor
