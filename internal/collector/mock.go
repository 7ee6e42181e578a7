package collector

import (
	"hash/fnv"
	"math/rand"
	"time"

	"tradethrust/internal/model"
)

// MockFetcher serves synthetic daily bars for development and demos. The
// generator is seeded from the symbol, so repeated fetches for the same
// symbol return the same shape.
type MockFetcher struct {
	Bars []model.PriceBar // overrides generation when set
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.PriceBar, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(symbol, days), nil
}

// generateMockBars produces an advancing series with a few pullbacks of
// shrinking depth toward the end, so demo scans have something to find.
func generateMockBars(symbol string, count int) []model.PriceBar {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	price := 40 + rng.Float64()*160
	start := time.Now().AddDate(0, 0, -count)
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		drift := 0.0012
		// Pullback legs in the last quarter of the series, each shallower.
		phase := count - i
		switch {
		case phase < count/4 && phase > count/4-10:
			drift = -0.008
		case phase < count/6 && phase > count/6-7:
			drift = -0.005
		case phase < count/9 && phase > count/9-5:
			drift = -0.003
		}
		price *= 1 + drift + rng.NormFloat64()*0.004
		spread := price * (0.004 + rng.Float64()*0.008)
		open := price - spread/4
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   open,
			High:   price + spread/2,
			Low:    price - spread/2,
			Close:  price,
			Volume: 800000 + rng.Float64()*600000,
		}
	}
	return bars
}
