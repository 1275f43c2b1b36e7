package domain

// MaxHistory is the number of snapshots kept, newest first.
const MaxHistory = 50

// HistoryItem is a stored snapshot of a card draft.
type HistoryItem struct {
	CardDraft
	ID        string `json:"id"`
	CreatedAt int64  `json:"createdAt"` // unix milliseconds
}

// Draft returns an independent copy of the snapshot's card.
func (h HistoryItem) Draft() CardDraft {
	return h.CardDraft.Clone()
}
