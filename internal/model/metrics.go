package model

// WalletFlow is one leaderboard entry in the 24h rollup. Direction is set
// only on the combined top-volume wallet ("in" or "out"). Rank carries the
// wallet's position in the holder ranking when known, zero otherwise.
type WalletFlow struct {
	Address   string  `json:"address"`
	Amount    float64 `json:"amount"`
	TxCount   int     `json:"txCount,omitempty"`
	Rank      int     `json:"rank,omitempty"`
	Direction string  `json:"direction,omitempty"`
}

// BlockPoint is one entry of the per-block activity series.
type BlockPoint struct {
	BlockHeight int64   `json:"blockHeight"`
	TxCount     int     `json:"txCount"`
	Volume      float64 `json:"volume"`
}

// Metrics24h holds the rollups derived from transactions in the trailing
// 24-hour window. It is recomputed wholesale every update cycle.
type Metrics24h struct {
	TxCount           int          `json:"txCount"`
	TotalDogMoved     float64      `json:"totalDogMoved"`
	BlockCount        int          `json:"blockCount"`
	AvgTxPerBlock     float64      `json:"avgTxPerBlock"`
	AvgDogPerTx       float64      `json:"avgDogPerTx"`
	ActiveWalletCount int          `json:"activeWalletCount"`
	VolumeWalletCount int          `json:"volumeWalletCount"`
	TopActiveWallet   *WalletFlow  `json:"topActiveWallet,omitempty"`
	TopVolumeWallet   *WalletFlow  `json:"topVolumeWallet,omitempty"`
	TopOutWallet      *WalletFlow  `json:"topOutWallet,omitempty"`
	TopInWallet       *WalletFlow  `json:"topInWallet,omitempty"`
	TopOutWallets     []WalletFlow `json:"topOutWallets"`
	TopInWallets      []WalletFlow `json:"topInWallets"`
	FeesSats          int64        `json:"feesSats"`
	FeesBtc           float64      `json:"feesBtc"`
	SeriesPerBlock    []BlockPoint `json:"seriesPerBlock"`
}
