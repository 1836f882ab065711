// Package ipo prices an initial public offering off peer P/E multiples.
package ipo

import (
	"github.com/seenimoa/valuekit/internal/stats"
	"github.com/seenimoa/valuekit/pkg/models"
)

// Price values the company at the median peer P/E, spreads that value over
// post-money shares and applies the offering discount.
func Price(in models.IPOInputs) (models.IPOResult, error) {
	const op = "ipo.Price"
	if err := models.ValidateFinite(op,
		models.F("net_income", in.NetIncome),
		models.F("pre_money_shares", in.PreMoneyShares),
		models.F("primary_shares", in.PrimaryShares),
		models.F("secondary_shares", in.SecondaryShares),
		models.F("ipo_discount", in.IPODiscount),
		models.F("range_width", in.RangeWidth),
	); err != nil {
		return models.IPOResult{}, err
	}
	if err := models.ValidateSeries(op, "peer_pe", in.PeerPE); err != nil {
		return models.IPOResult{}, err
	}

	switch {
	case len(in.PeerPE) == 0:
		return models.IPOResult{}, models.Errorf(op, models.ErrInsufficientData, "no peer multiples")
	case in.NetIncome <= 0:
		return models.IPOResult{}, models.Errorf(op, models.ErrInvalidInput, "net income must be positive for P/E pricing, got %v", in.NetIncome)
	case in.PreMoneyShares <= 0:
		return models.IPOResult{}, models.Errorf(op, models.ErrInvalidInput, "pre-money shares must be positive")
	case in.PrimaryShares < 0 || in.SecondaryShares < 0:
		return models.IPOResult{}, models.Errorf(op, models.ErrInvalidInput, "offered shares must be non-negative")
	case in.SecondaryShares > in.PreMoneyShares:
		return models.IPOResult{}, models.Errorf(op, models.ErrInvalidInput,
			"secondary shares %v exceed existing shares %v", in.SecondaryShares, in.PreMoneyShares)
	case in.IPODiscount < 0 || in.IPODiscount >= 1:
		return models.IPOResult{}, models.Errorf(op, models.ErrInvalidInput, "discount must be in [0, 1), got %v", in.IPODiscount)
	case in.RangeWidth < 0 || in.RangeWidth >= 1:
		return models.IPOResult{}, models.Errorf(op, models.ErrInvalidInput, "range width must be in [0, 1), got %v", in.RangeWidth)
	}
	for i, pe := range in.PeerPE {
		if pe <= 0 {
			return models.IPOResult{}, models.Errorf(op, models.ErrInvalidInput, "peer_pe[%d] must be positive, got %v", i, pe)
		}
	}

	median, err := stats.Median(in.PeerPE)
	if err != nil {
		return models.IPOResult{}, err
	}

	res := models.IPOResult{
		MedianPeerPE:    median,
		FairEquityValue: median * in.NetIncome,
		PostMoneyShares: in.PreMoneyShares + in.PrimaryShares,
	}
	res.FairValuePerShare = res.FairEquityValue / res.PostMoneyShares
	res.OfferPrice = res.FairValuePerShare * (1 - in.IPODiscount)
	res.RangeLow = res.OfferPrice * (1 - in.RangeWidth/2)
	res.RangeHigh = res.OfferPrice * (1 + in.RangeWidth/2)
	res.PrimaryProceeds = in.PrimaryShares * res.OfferPrice
	res.GrossProceeds = (in.PrimaryShares + in.SecondaryShares) * res.OfferPrice
	res.MarketCapAtOffer = res.OfferPrice * res.PostMoneyShares
	res.DilutionPct = in.PrimaryShares / res.PostMoneyShares * 100
	res.OfferPE = res.MarketCapAtOffer / in.NetIncome
	return res, nil
}
