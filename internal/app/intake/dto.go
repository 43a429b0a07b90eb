package intake

import "pillforge/internal/domain/craft"

type Request struct {
	Dump []byte
}

type Response struct {
	Snapshot craft.Snapshot `json:"snapshot"`
	// Unmatched lists names the dump used that resolved to nothing in
	// the catalog. They are kept verbatim in the snapshot.
	Unmatched []string `json:"unmatched,omitempty"`
}
