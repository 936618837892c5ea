package model

// Snapshot is the full ledger state at one instant: the three collections
// in insertion order. Commands operate on whole snapshots; readers never
// observe a partially-updated one.
type Snapshot struct {
	Assets       []Asset       `json:"assets"`
	Dividends    []Dividend    `json:"dividends"`
	Transactions []Transaction `json:"transactions"`
}
