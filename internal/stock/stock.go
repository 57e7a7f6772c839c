package stock

import "time"

// Price is one trading day's OHLCV bar as published on the symbol's
// historical-prices page. All fields are always present in the source table.
type Price struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Trade is one reported insider transaction. The source table leaves
// several cells blank, so those fields are pointers; nil means the cell
// was empty, which is distinct from an empty string.
type Trade struct {
	Insider      string
	Relation     *string
	LastDate     *time.Time
	Transaction  *string
	OwnerType    *string
	SharesTraded int64
	LastPrice    *float64
	SharesHeld   int64
}
