package alarm

import "time"

// SourceKind distinguishes where an alarm's audio comes from.
type SourceKind string

const (
	// SourceRemote marks audio referenced by a remote video URL.
	SourceRemote SourceKind = "remote"
	// SourceUploaded marks audio stored from a user-uploaded file.
	SourceUploaded SourceKind = "uploaded"
)

// ConversionStatus describes readiness of an alarm's audio source.
// The empty value means no audio is attached.
type ConversionStatus string

const (
	// StatusConverting means the audio source is still being prepared.
	StatusConverting ConversionStatus = "converting"
	// StatusReady means the audio source is ready for playback.
	StatusReady ConversionStatus = "ready"
	// StatusError means audio preparation failed.
	StatusError ConversionStatus = "error"
)

// AudioSource is a tagged reference to the audio behind an alarm.
// Exactly one of URL or Path is meaningful, selected by Kind, so an alarm
// can never carry both a remote reference and an uploaded file at once.
type AudioSource struct {
	// Kind selects which of the reference fields applies.
	Kind SourceKind `json:"kind"`
	// URL is the remote video URL. Set only when Kind is SourceRemote.
	URL string `json:"url,omitempty"`
	// Path is the stored file location. Set only when Kind is SourceUploaded.
	Path string `json:"path,omitempty"`
}

// Clone returns a copy of the audio source, nil-safe.
func (s *AudioSource) Clone() *AudioSource {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}

// RemoteSource builds an audio source referencing a remote video URL.
func RemoteSource(url string) *AudioSource {
	return &AudioSource{
		Kind: SourceRemote,
		URL:  url,
	}
}

// UploadedSource builds an audio source referencing a stored uploaded file.
func UploadedSource(path string) *AudioSource {
	return &AudioSource{
		Kind: SourceUploaded,
		Path: path,
	}
}

// Alarm is a committed entry in the user's schedule.
type Alarm struct {
	// ID uniquely identifies the alarm, assigned at creation and stable afterwards.
	ID string `json:"id"`
	// Time is the wall-clock firing time in zero-padded 24-hour "HH:MM" form.
	Time string `json:"time"`
	// Label is the free-text display name.
	Label string `json:"label"`
	// Enabled indicates whether the alarm is armed.
	Enabled bool `json:"enabled"`
	// Audio optionally references the sound to play.
	Audio *AudioSource `json:"audioSource,omitempty"`
	// SongTitle is the display name of the resolved audio.
	SongTitle string `json:"songTitle,omitempty"`
	// ConversionStatus tracks readiness of the audio source.
	ConversionStatus ConversionStatus `json:"conversionStatus,omitempty"`
	// RepeatDays holds lowercase weekday names the alarm repeats on.
	RepeatDays []string `json:"repeatDays,omitempty"`
	// Volume is the playback volume, 0-100.
	Volume int `json:"volume"`
	// FadeIn makes playback ramp up gradually.
	FadeIn bool `json:"fadeIn"`
	// Vibration enables vibration alongside audio.
	Vibration bool `json:"vibration"`
	// CreatedAt is set once when the alarm is first saved.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is refreshed on every save.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the alarm to avoid leaking internal references.
func (a *Alarm) Clone() *Alarm {
	if a == nil {
		return nil
	}

	cloned := *a
	cloned.Audio = a.Audio.Clone()

	if a.RepeatDays != nil {
		cloned.RepeatDays = make([]string, len(a.RepeatDays))
		copy(cloned.RepeatDays, a.RepeatDays)
	}

	return &cloned
}

// Candidate is a selectable remote audio item returned by a search.
type Candidate struct {
	// ID identifies the candidate within the catalog.
	ID string `json:"id"`
	// Title is the track or video title.
	Title string `json:"title"`
	// Channel is the publishing channel name.
	Channel string `json:"channel"`
	// Duration is the display duration, e.g. "10:00".
	Duration string `json:"duration"`
	// Thumbnail is the preview image location.
	Thumbnail string `json:"thumbnail"`
	// URL is the remote video URL to attach when the candidate is picked.
	URL string `json:"url"`
}
