// Package uploader implements the file-upload audio path: it validates the
// MIME type and size of an uploaded file, persists it through the audio
// repository and attaches the stored reference to the open editor draft.
//
// Unlike the URL and search paths there is no simulated conversion delay;
// an uploaded file is ready as soon as it is stored.
package uploader
