// Package alarm contains core domain types for the alarm-clock business logic.
//
// It defines Alarm (a committed schedule entry), AudioSource (a tagged
// remote-URL or uploaded-file reference), Draft and DraftPatch (the partial
// alarm under construction and its shallow-merge updates), Candidate (a
// selectable search result) and Snapshot (the full observable store state),
// all with Clone helpers to avoid leaking internal references.
package alarm
