package market

import (
	"maps"
	"slices"
)

// symbolToID maps our symbols to price provider coin ids.
var symbolToID = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"XRP":  "ripple",
	"USDT": "tether",
	"USDC": "usd-coin",
	"BNB":  "binancecoin",
	"LTC":  "litecoin",
	"DOGE": "dogecoin",
	"TRX":  "tron",
}

// defaultPrices is the last-resort table used when neither the provider nor the snapshot knows a symbol.
var defaultPrices = map[string]float64{
	"USDT": 1.0,
	"USDC": 1.0,
	"USD":  1.0,
	"CAD":  1.0,
	"BTC":  43000.0,
	"ETH":  2300.0,
	"SOL":  100.0,
	"XRP":  0.55,
	"BNB":  600.0,
	"LTC":  85.0,
	"DOGE": 0.12,
	"TRX":  0.12,
}

// fallbackMarketSymbols make up the synthesized markets list.
var fallbackMarketSymbols = []string{"BTC", "ETH", "SOL", "XRP", "BNB"}

// ProviderID returns the provider coin id for symbol. Fiat symbols have none.
func ProviderID(symbol string) (string, bool) {
	id, ok := symbolToID[symbol]
	return id, ok
}

// SupportedSymbols lists the symbols that can be fetched from the provider, sorted.
func SupportedSymbols() []string {
	symbols := slices.Collect(maps.Keys(symbolToID))
	slices.Sort(symbols)
	return symbols
}

func DefaultPrice(symbol string) (float64, bool) {
	v, ok := defaultPrices[symbol]
	return v, ok
}
