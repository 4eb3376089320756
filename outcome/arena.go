package outcome

// Arena indexes bridge rows by match id so the opposing side of a match
// can be found without re-querying.
type Arena struct {
	byMatch map[string][]Side
}

// NewArena indexes sides. A repeated (match, participant) pair is kept once.
func NewArena(sides []Side) *Arena {
	a := &Arena{byMatch: make(map[string][]Side, len(sides)/2+1)}
	for _, s := range sides {
		if a.has(s.MatchID, s.ParticipantID) {
			continue
		}
		a.byMatch[s.MatchID] = append(a.byMatch[s.MatchID], s)
	}
	return a
}

func (a *Arena) has(matchID, participantID string) bool {
	for _, s := range a.byMatch[matchID] {
		if s.ParticipantID == participantID {
			return true
		}
	}
	return false
}

// Sides returns every indexed side of a match in insertion order.
func (a *Arena) Sides(matchID string) []Side {
	return a.byMatch[matchID]
}

// Opponent returns the first side of matchID not belonging to participantID.
func (a *Arena) Opponent(matchID, participantID string) (*Side, bool) {
	for i := range a.byMatch[matchID] {
		s := a.byMatch[matchID][i]
		if s.ParticipantID != participantID {
			return &s, true
		}
	}
	return nil, false
}

// ClassifyIn classifies self against whatever opponent the arena holds.
func (a *Arena) ClassifyIn(self Side) Outcome {
	opp, _ := a.Opponent(self.MatchID, self.ParticipantID)
	return Classify(self, opp)
}
