package collector

import (
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"tradethrust/internal/model"
)

// AlpacaFetcher implements Fetcher using the Alpaca Market Data API.
type AlpacaFetcher struct {
	client *marketdata.Client
}

// NewAlpacaFetcher creates a fetcher authenticated with API key and secret.
func NewAlpacaFetcher(apiKey, apiSecret string) *AlpacaFetcher {
	return &AlpacaFetcher{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// FetchDailyBars returns up to days split-adjusted daily bars. The request
// window is padded for weekends and holidays, then trimmed.
func (f *AlpacaFetcher) FetchDailyBars(symbol string, days int) ([]model.PriceBar, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -(days*7/5 + 10))

	alpacaBars, err := f.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Start:      start,
		End:        end,
		Adjustment: marketdata.Split,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca get bars: %w", err)
	}
	if len(alpacaBars) == 0 {
		return nil, fmt.Errorf("alpaca: no bars for %s", symbol)
	}

	bars := make([]model.PriceBar, 0, len(alpacaBars))
	for _, b := range alpacaBars {
		bars = append(bars, model.PriceBar{
			Date:   b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		})
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}
