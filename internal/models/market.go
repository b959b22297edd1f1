package models

import "time"

// RawQuote is the backend quote payload (current/open/high/low/prev-close/timestamp)
type RawQuote struct {
	C  float64 `json:"c"`
	O  float64 `json:"o"`
	H  float64 `json:"h"`
	L  float64 `json:"l"`
	PC float64 `json:"pc"`
	T  int64   `json:"t"`
}

// Quote is a RawQuote with derived change fields
type Quote struct {
	Symbol        string    `json:"symbol"`
	Current       float64   `json:"current"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	PreviousClose float64   `json:"previous_close"`
	Timestamp     time.Time `json:"timestamp"`
	Change        float64   `json:"change"`
	PercentChange string    `json:"percent_change"` // two decimals, e.g. "10.00"
}

// MarketType selects the instrument universe for search
type MarketType string

const (
	MarketStock  MarketType = "stock"
	MarketCrypto MarketType = "crypto"
)

// SearchResult is a normalized market search hit
type SearchResult struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	DisplaySymbol string `json:"displaySymbol"`
}

// TrendingItem is one entry of the trending list
type TrendingItem struct {
	Symbol        string  `json:"symbol"`
	PercentChange float64 `json:"percentChange"`
}

// TrendingList is the trending response; Fallback marks the hardcoded dataset
type TrendingList struct {
	Items    []TrendingItem `json:"items"`
	Fallback bool           `json:"fallback"`
}
