// Package ratios computes liquidity, profitability and leverage ratios
// from extracted financial figures. Missing operands and degenerate
// denominators degrade to unavailable markers, never a runtime fault.
package ratios

import (
	"github.com/vendorlens/vendorlens/constants"
	"github.com/vendorlens/vendorlens/internal/entity"
)

// Compute derives the financial ratios from whatever figures are
// present.
func Compute(figures entity.Figures) entity.FinancialRatios {
	ratios := entity.FinancialRatios{
		CurrentRatio: entity.Unavailable(""),
		QuickRatio:   entity.Unavailable(""),
		NetMargin:    entity.Unavailable(""),
		DebtToEquity: entity.Unavailable(""),
	}

	ca, haveCA := figures.Get(constants.FigureCurrentAssets)
	cl, haveCL := figures.Get(constants.FigureCurrentLiabilities)
	if haveCA && haveCL && cl != 0 {
		ratios.CurrentRatio = entity.Available(entity.Round2(ca / cl))

		// inventory defaults to zero when the statement omits it
		inv, _ := figures.Get(constants.FigureInventory)
		ratios.QuickRatio = entity.Available(entity.Round2((ca - inv) / cl))
	}

	ni, haveNI := figures.Get(constants.FigureNetIncome)
	rev, haveRev := figures.Get(constants.FigureRevenue)
	if haveNI && haveRev && rev != 0 {
		ratios.NetMargin = entity.Available(entity.Round2(ni / rev * 100))
	}

	tl, haveTL := figures.Get(constants.FigureTotalLiabilities)
	eq, haveEq := figures.Get(constants.FigureEquity)
	if haveTL && haveEq && eq != 0 {
		ratios.DebtToEquity = entity.Available(entity.Round2(tl / eq))
	}

	return ratios
}
