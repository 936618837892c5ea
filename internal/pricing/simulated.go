package pricing

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/model"
)

// SimulatedSource is the offline fallback: it nudges each current price by
// a random variation within ±2%. This is display-only extrapolation for
// when no real feed is reachable; it is never persisted as history and
// carries no meaning beyond keeping the dashboard alive.
type SimulatedSource struct {
	rng *rand.Rand
}

// NewSimulatedSource creates a SimulatedSource.
func NewSimulatedSource() *SimulatedSource {
	return &SimulatedSource{rng: rand.New(rand.NewSource(rand.Int63()))}
}

// FetchLatestPrices implements Source. It never fails.
func (s *SimulatedSource) FetchLatestPrices(_ context.Context, assets []model.Asset) ([]model.Asset, error) {
	updated := make([]model.Asset, len(assets))
	copy(updated, assets)

	for i, asset := range updated {
		variation := decimal.NewFromFloat(1 + (s.rng.Float64()*0.04 - 0.02))
		newPrice := asset.CurrentPrice.Mul(variation).Round(2)

		if newPrice.IsPositive() {
			updated[i].CurrentPrice = newPrice
		}
	}

	return updated, nil
}
