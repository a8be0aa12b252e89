package model

// Holder is one entry of the externally maintained holder ranking.
type Holder struct {
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
	Rank    int     `json:"rank"`
}

// HoldersSnapshot is the read-only holder ranking document maintained by the
// holders collaborator. The aggregator uses it for the inflow retention
// filter and for rank metadata on reported wallets.
type HoldersSnapshot struct {
	Holders []Holder `json:"holders"`

	byAddress map[string]Holder
}

func (s *HoldersSnapshot) index() {
	if s.byAddress != nil {
		return
	}
	s.byAddress = make(map[string]Holder, len(s.Holders))
	for _, h := range s.Holders {
		s.byAddress[h.Address] = h
	}
}

// Balance returns the current balance for an address.
func (s *HoldersSnapshot) Balance(address string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	s.index()
	h, ok := s.byAddress[address]
	return h.Balance, ok
}

// Rank returns the holder rank for an address, 1 being the largest holder.
func (s *HoldersSnapshot) Rank(address string) (int, bool) {
	if s == nil {
		return 0, false
	}
	s.index()
	h, ok := s.byAddress[address]
	return h.Rank, ok
}
