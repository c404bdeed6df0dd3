// Package http exposes the alarm store and the audio upload path over an
// HTTP JSON API. It is the presentation boundary: clients read the snapshot
// from GET /api/state and drive all mutations through command routes; no
// state is ever mutated except through store commands.
package http
