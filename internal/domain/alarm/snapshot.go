package alarm

// Snapshot is the full observable state of the alarm store at one point in
// time: the committed schedule plus the transient editor session.
type Snapshot struct {
	// Alarms is the committed schedule, always sorted ascending by Time.
	Alarms []*Alarm `json:"alarms"`
	// IsEditing reports whether an editor session is open.
	IsEditing bool `json:"isEditing"`
	// Draft is the alarm being created or edited, nil outside a session.
	Draft *Draft `json:"draft"`
	// SearchResults holds the candidates of the last finished search.
	SearchResults []Candidate `json:"searchResults"`
	// Query is the current URL or search input.
	Query string `json:"query"`
	// IsSearching reports whether a search is in flight.
	IsSearching bool `json:"isSearching"`
}

// Clone returns a deep copy of the snapshot so callers never share mutable
// structure with the store.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	cloned := &Snapshot{
		IsEditing:   s.IsEditing,
		Draft:       s.Draft.Clone(),
		Query:       s.Query,
		IsSearching: s.IsSearching,
	}

	cloned.Alarms = make([]*Alarm, len(s.Alarms))
	for i, a := range s.Alarms {
		cloned.Alarms[i] = a.Clone()
	}

	cloned.SearchResults = make([]Candidate, len(s.SearchResults))
	copy(cloned.SearchResults, s.SearchResults)

	return cloned
}
