package alarm

import "time"

// Draft is a partial alarm under construction in the editor.
// Defaultable scalars are pointers so "absent" stays distinguishable from a
// deliberate false/zero; absent fields receive their defaults only on save.
type Draft struct {
	// ID is empty until the draft edits an existing alarm.
	ID string `json:"id,omitempty"`
	// Time is the firing time in "HH:MM" form, empty when not chosen yet.
	Time string `json:"time,omitempty"`
	// Label is the display name, empty when not chosen yet.
	Label string `json:"label,omitempty"`
	// Enabled indicates whether the alarm will be armed.
	Enabled *bool `json:"enabled,omitempty"`
	// Volume is the playback volume, 0-100.
	Volume *int `json:"volume,omitempty"`
	// FadeIn makes playback ramp up gradually.
	FadeIn *bool `json:"fadeIn,omitempty"`
	// Vibration enables vibration alongside audio.
	Vibration *bool `json:"vibration,omitempty"`
	// Audio optionally references the sound to play.
	Audio *AudioSource `json:"audioSource,omitempty"`
	// SongTitle is the display name of the resolved audio.
	SongTitle string `json:"songTitle,omitempty"`
	// ConversionStatus tracks readiness of the audio source.
	ConversionStatus ConversionStatus `json:"conversionStatus,omitempty"`
	// RepeatDays holds lowercase weekday names the alarm repeats on.
	RepeatDays []string `json:"repeatDays,omitempty"`
	// CreatedAt carries the original creation time when editing an existing alarm.
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Clone returns a deep copy of the draft, nil-safe.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}

	cloned := *d
	cloned.Enabled = cloneBool(d.Enabled)
	cloned.Volume = cloneInt(d.Volume)
	cloned.FadeIn = cloneBool(d.FadeIn)
	cloned.Vibration = cloneBool(d.Vibration)
	cloned.Audio = d.Audio.Clone()

	if d.RepeatDays != nil {
		cloned.RepeatDays = make([]string, len(d.RepeatDays))
		copy(cloned.RepeatDays, d.RepeatDays)
	}

	return &cloned
}

// DraftFromAlarm copies a committed alarm into an independent draft,
// so subsequent edits never touch the stored entry.
func DraftFromAlarm(a *Alarm) *Draft {
	if a == nil {
		return nil
	}

	src := a.Clone()

	return &Draft{
		ID:               src.ID,
		Time:             src.Time,
		Label:            src.Label,
		Enabled:          &src.Enabled,
		Volume:           &src.Volume,
		FadeIn:           &src.FadeIn,
		Vibration:        &src.Vibration,
		Audio:            src.Audio,
		SongTitle:        src.SongTitle,
		ConversionStatus: src.ConversionStatus,
		RepeatDays:       src.RepeatDays,
		CreatedAt:        src.CreatedAt,
	}
}

// DraftPatch is a shallow-merge update for a draft.
// Nil fields are left untouched; non-nil fields overwrite.
type DraftPatch struct {
	// Time replaces the firing time when set.
	Time *string `json:"time,omitempty"`
	// Label replaces the display name when set.
	Label *string `json:"label,omitempty"`
	// Enabled replaces the armed flag when set.
	Enabled *bool `json:"enabled,omitempty"`
	// Volume replaces the playback volume when set.
	Volume *int `json:"volume,omitempty"`
	// FadeIn replaces the fade-in flag when set.
	FadeIn *bool `json:"fadeIn,omitempty"`
	// Vibration replaces the vibration flag when set.
	Vibration *bool `json:"vibration,omitempty"`
	// Audio replaces the audio source when set.
	Audio *AudioSource `json:"audioSource,omitempty"`
	// ClearAudio removes the audio source, song title and conversion status.
	ClearAudio bool `json:"clearAudio,omitempty"`
	// SongTitle replaces the resolved audio display name when set.
	SongTitle *string `json:"songTitle,omitempty"`
	// ConversionStatus replaces the audio readiness marker when set.
	ConversionStatus *ConversionStatus `json:"conversionStatus,omitempty"`
	// RepeatDays replaces the repeat weekday set when set.
	RepeatDays *[]string `json:"repeatDays,omitempty"`
}

// Apply shallow-merges the patch into the draft.
func (d *Draft) Apply(p *DraftPatch) {
	if p == nil {
		return
	}

	if p.Time != nil {
		d.Time = *p.Time
	}

	if p.Label != nil {
		d.Label = *p.Label
	}

	if p.Enabled != nil {
		d.Enabled = cloneBool(p.Enabled)
	}

	if p.Volume != nil {
		d.Volume = cloneInt(p.Volume)
	}

	if p.FadeIn != nil {
		d.FadeIn = cloneBool(p.FadeIn)
	}

	if p.Vibration != nil {
		d.Vibration = cloneBool(p.Vibration)
	}

	if p.ClearAudio {
		d.Audio = nil
		d.SongTitle = ""
		d.ConversionStatus = ""
	}

	if p.Audio != nil {
		d.Audio = p.Audio.Clone()
	}

	if p.SongTitle != nil {
		d.SongTitle = *p.SongTitle
	}

	if p.ConversionStatus != nil {
		d.ConversionStatus = *p.ConversionStatus
	}

	if p.RepeatDays != nil {
		days := make([]string, len(*p.RepeatDays))
		copy(days, *p.RepeatDays)
		d.RepeatDays = days
	}
}

// cloneBool copies a bool pointer, nil-safe.
func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}

	cloned := *v

	return &cloned
}

// cloneInt copies an int pointer, nil-safe.
func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}

	cloned := *v

	return &cloned
}
