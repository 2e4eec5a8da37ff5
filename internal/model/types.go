package model

// Listing represents one security listing record as exported by the
// Alpha Vantage LISTING_STATUS endpoint. CSV tags match the provider's
// header; JSON tags match the conflict-log document shape.
type Listing struct {
	Symbol        string `csv:"symbol" json:"symbol"`
	Name          string `csv:"name" json:"name"`
	Exchange      string `csv:"exchange" json:"exchange"`
	AssetType     string `csv:"assetType" json:"asset_type"`
	IPODate       string `csv:"ipoDate" json:"ipo_date"`
	DelistingDate string `csv:"delistingDate" json:"delisting_date"`
	Status        string `csv:"status" json:"status"`
}
