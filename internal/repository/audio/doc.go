// Package audio implements storage for uploaded alarm audio.
//
// The FileRepository writes uploaded files under a configured folder with
// sanitized, owner-scoped names and exposes a Repository interface that the
// uploader service depends on.
package audio
