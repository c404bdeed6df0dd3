package http

import (
	"fmt"
	"regexp"

	z "github.com/Oudwins/zog"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// timePattern matches a zero-padded 24-hour "HH:MM" value.
var timePattern = regexp.MustCompile(`^(?:[01][0-9]|2[0-3]):[0-5][0-9]$`)

// queryRequest carries the search/URL input. Empty values are allowed:
// setting the query performs no validation by contract.
type queryRequest struct {
	Query string `json:"query"`
}

// selectRequest carries the candidate picked from the search results.
type selectRequest struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Duration  string `json:"duration"`
	Thumbnail string `json:"thumbnail"`
	URL       string `json:"url"`
}

var selectRequestSchema = z.Struct(z.Shape{
	"ID":        z.String(),
	"Title":     z.String().Required(),
	"Channel":   z.String(),
	"Duration":  z.String(),
	"Thumbnail": z.String(),
	"URL":       z.String().Required(),
})

// toCandidate converts the request into the domain candidate.
func (r *selectRequest) toCandidate() domain.Candidate {
	return domain.Candidate{
		ID:        r.ID,
		Title:     r.Title,
		Channel:   r.Channel,
		Duration:  r.Duration,
		Thumbnail: r.Thumbnail,
		URL:       r.URL,
	}
}

// uploadRequest is the upload endpoint contract: base64 audio plus naming.
type uploadRequest struct {
	OwnerID   string `json:"ownerId"`
	AudioData string `json:"audioData"`
	Filename  string `json:"filename"`
}

var uploadRequestSchema = z.Struct(z.Shape{
	"OwnerID":   z.String().Required(),
	"AudioData": z.String().Required(),
	"Filename":  z.String().Required(),
})

// validateDraftPatch rejects patch values the domain cannot represent.
// Fields left nil are fine; the patch is a shallow merge.
func validateDraftPatch(p *domain.DraftPatch) error {
	if p.Time != nil && !timePattern.MatchString(*p.Time) {
		return fmt.Errorf("time %q is not in HH:MM format", *p.Time)
	}

	if p.Volume != nil && (*p.Volume < 0 || *p.Volume > 100) {
		return fmt.Errorf("volume %d is out of range 0-100", *p.Volume)
	}

	if p.ConversionStatus != nil {
		switch *p.ConversionStatus {
		case domain.StatusConverting, domain.StatusReady, domain.StatusError:
		default:
			return fmt.Errorf("unknown conversion status %q", *p.ConversionStatus)
		}
	}

	if p.Audio != nil {
		switch p.Audio.Kind {
		case domain.SourceRemote:
			if p.Audio.URL == "" {
				return fmt.Errorf("remote audio source requires a url")
			}
		case domain.SourceUploaded:
			if p.Audio.Path == "" {
				return fmt.Errorf("uploaded audio source requires a path")
			}
		default:
			return fmt.Errorf("unknown audio source kind %q", p.Audio.Kind)
		}
	}

	return nil
}
