package ipo

import (
	"errors"
	"math"
	"testing"

	"github.com/seenimoa/valuekit/pkg/models"
)

func sampleIPO() models.IPOInputs {
	return models.IPOInputs{
		NetIncome:       50,
		PeerPE:          []float64{20, 12, 18, 15},
		PreMoneyShares:  100,
		PrimaryShares:   10,
		SecondaryShares: 5,
		IPODiscount:     0.15,
		RangeWidth:      0.10,
	}
}

func TestPrice(t *testing.T) {
	res, err := Price(sampleIPO())
	if err != nil {
		t.Fatal(err)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"median pe", res.MedianPeerPE, 16.5},
		{"fair equity", res.FairEquityValue, 825},
		{"post-money shares", res.PostMoneyShares, 110},
		{"fair per share", res.FairValuePerShare, 7.5},
		{"offer price", res.OfferPrice, 6.375},
		{"range low", res.RangeLow, 6.05625},
		{"range high", res.RangeHigh, 6.69375},
		{"primary proceeds", res.PrimaryProceeds, 63.75},
		{"gross proceeds", res.GrossProceeds, 95.625},
		{"market cap", res.MarketCapAtOffer, 701.25},
		{"dilution", res.DilutionPct, 10.0 / 110 * 100},
		{"offer pe", res.OfferPE, 14.025},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestPriceOddPeerCount(t *testing.T) {
	in := sampleIPO()
	in.PeerPE = []float64{30, 10, 20}
	res, err := Price(in)
	if err != nil {
		t.Fatal(err)
	}
	if res.MedianPeerPE != 20 {
		t.Errorf("median = %v, want 20", res.MedianPeerPE)
	}
}

func TestPriceErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.IPOInputs)
		kind   error
	}{
		{"no peers", func(in *models.IPOInputs) { in.PeerPE = nil }, models.ErrInsufficientData},
		{"loss making", func(in *models.IPOInputs) { in.NetIncome = -1 }, models.ErrInvalidInput},
		{"negative peer", func(in *models.IPOInputs) { in.PeerPE = []float64{10, -3} }, models.ErrInvalidInput},
		{"full discount", func(in *models.IPOInputs) { in.IPODiscount = 1 }, models.ErrInvalidInput},
		{"secondary too large", func(in *models.IPOInputs) { in.SecondaryShares = 500 }, models.ErrInvalidInput},
		{"nan width", func(in *models.IPOInputs) { in.RangeWidth = math.NaN() }, models.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleIPO()
			tt.mutate(&in)
			if _, err := Price(in); !errors.Is(err, tt.kind) {
				t.Errorf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}
