package clmfolio

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

const (
	defiLlamaURL = "https://coins.llama.fi/prices/current/"
	coinGeckoURL = "https://api.coingecko.com/api/v3/simple/price"
	fxRatesURL   = "https://open.er-api.com/v6/latest/USD"
)

// PriceBook holds the spot prices, 24h changes and FX rates one refresh
// cycle fetched. Prices are USD per token symbol.
type PriceBook struct {
	Prices  map[string]float64
	Changes map[string]float64
	FX      map[string]float64
	Updated time.Time
}

// demo prices keep the dashboards rendering when every API is down.
var demoPrices = map[string]float64{
	"SOL": 98.50, "USDC": 1.00, "ETH": 2340.00, "BTC": 43200.00,
	"ORCA": 3.25, "RAY": 0.85, "JLP": 0.032,
}

var demoFX = map[string]float64{"USD_CAD": 1.43, "CAD_USD": 0.70}

// TokensOf collects every token symbol the active positions price against.
// Wrapped BTC/ETH variants pull in their base token too, so ratio pairs
// like WBTC/SOL can be computed.
func TokensOf(positions []Position) map[string]bool {
	tokens := make(map[string]bool)
	for _, pos := range positions {
		pair := strings.ReplaceAll(pos.TokenPair, " ", "")
		if !strings.Contains(pair, "/") {
			continue
		}
		parts := strings.SplitN(pair, "/", 2)
		tokens[strings.ToUpper(parts[0])] = true
		tokens[strings.ToUpper(parts[1])] = true
	}
	if tokens["WBTC"] || tokens["CBBTC"] {
		tokens["BTC"] = true
	}
	if tokens["WETH"] || tokens["WHETH"] {
		tokens["ETH"] = true
	}
	return tokens
}

// FetchPrices resolves current prices for the given tokens: DefiLlama
// first, CoinGecko for the gaps, then FX rates. API failures degrade to
// warnings; when nothing at all could be fetched the demo prices apply so
// callers always get a usable book.
func FetchPrices(cfg *Config, tokens map[string]bool) *PriceBook {
	book := &PriceBook{
		Prices:  make(map[string]float64),
		Changes: make(map[string]float64),
		FX:      make(map[string]float64),
		Updated: time.Now(),
	}
	client := cachedClient()

	fetchDefiLlama(client, cfg.DefiLlamaIDs, tokens, book)
	fetchCoinGecko(client, cfg.CoinGeckoIDs, tokens, book)
	fetchFXRates(client, book)

	if len(book.Prices) == 0 {
		for token, price := range demoPrices {
			book.Prices[token] = price
		}
		log.Printf("using demo prices (APIs unavailable)")
	}
	if len(book.FX) == 0 {
		for pair, rate := range demoFX {
			book.FX[pair] = rate
		}
		log.Printf("using demo FX rates (API unavailable)")
	}
	return book
}

// fetchDefiLlama queries the DefiLlama current-price endpoint for every
// token it has an ID for. The payload nests prices under arbitrary coin
// IDs, so values are pulled out with jsonpath rather than a rigid type.
func fetchDefiLlama(client *http.Client, ids map[string]string, tokens map[string]bool, book *PriceBook) {
	var wanted []string
	for token := range tokens {
		if _, ok := ids[token]; ok {
			wanted = append(wanted, token)
		}
	}
	if len(wanted) == 0 {
		return
	}
	sort.Strings(wanted)

	coinIDs := make([]string, len(wanted))
	for i, token := range wanted {
		coinIDs[i] = ids[token]
	}

	var jobj interface{}
	if err := jwget(client, defiLlamaURL+strings.Join(coinIDs, ","), &jobj); err != nil {
		log.Printf("warning: DefiLlama API error: %v", err)
		return
	}

	count := 0
	for _, token := range wanted {
		path := fmt.Sprintf("$.coins[%q].price", ids[token])
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			continue
		}
		if price, ok := jval.(float64); ok {
			book.Prices[token] = price
			count++
		}
	}
	if count > 0 {
		log.Printf("DefiLlama: %d tokens", count)
	}
}

// fetchCoinGecko fills the tokens DefiLlama missed and records 24h changes.
func fetchCoinGecko(client *http.Client, ids map[string]string, tokens map[string]bool, book *PriceBook) {
	var missing []string
	for token := range tokens {
		if _, priced := book.Prices[token]; priced {
			continue
		}
		if _, ok := ids[token]; ok {
			missing = append(missing, token)
		}
	}
	if len(missing) == 0 {
		return
	}
	sort.Strings(missing)

	geckoIDs := make([]string, len(missing))
	for i, token := range missing {
		geckoIDs[i] = ids[token]
	}
	addr := fmt.Sprintf("%s?ids=%s&vs_currencies=usd&include_24hr_change=true", coinGeckoURL, strings.Join(geckoIDs, ","))

	payload := make(map[string]map[string]float64)
	if err := jwget(client, addr, &payload); err != nil {
		log.Printf("warning: CoinGecko API error: %v", err)
		return
	}

	count := 0
	for _, token := range missing {
		coin, ok := payload[ids[token]]
		if !ok {
			continue
		}
		if price, ok := coin["usd"]; ok {
			book.Prices[token] = price
			count++
		}
		if change, ok := coin["usd_24h_change"]; ok {
			book.Changes[token] = change
		}
	}
	if count > 0 {
		log.Printf("CoinGecko: %d tokens", count)
	}
}

// fetchFXRates grabs the USD/CAD rate; the dashboards show both directions.
func fetchFXRates(client *http.Client, book *PriceBook) {
	var payload struct {
		Result string             `json:"result"`
		Rates  map[string]float64 `json:"rates"`
	}
	if err := jwget(client, fxRatesURL, &payload); err != nil {
		log.Printf("warning: FX API error: %v", err)
		return
	}
	if payload.Result != "success" {
		return
	}
	if usdCad, ok := payload.Rates["CAD"]; ok && usdCad > 0 {
		book.FX["USD_CAD"] = usdCad
		book.FX["CAD_USD"] = 1.0 / usdCad
		log.Printf("FX rates: 1 USD = %.4f CAD", usdCad)
	}
}
