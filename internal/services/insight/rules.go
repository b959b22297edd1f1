// Package insight evaluates portfolio insight rules and applies user dismissals
package insight

import (
	"fmt"
	"math"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/models"
)

// Insight ids that do not carry parameters
const (
	IDNoHoldings      = "no-holdings"
	IDSingleAssetType = "single-asset-type"
	IDSignificantLoss = "significant-loss"
	IDSignificantGain = "significant-gain"
	IDHighCash        = "high-cash"
	IDHighCrypto      = "high-crypto"

	concentrationPrefix = "concentration-"
)

// ConcentrationID returns the insight id for a concentrated position
func ConcentrationID(symbol string) string {
	return concentrationPrefix + symbol
}

// Input is the portfolio state the rules are evaluated against
type Input struct {
	Positions   []models.Position
	Totals      models.PortfolioTotals
	CashBalance float64
}

// InputFromSnapshot builds the rule input for a fetched snapshot
func InputFromSnapshot(snap *models.Snapshot) Input {
	return Input{
		Positions:   snap.RawPositions(),
		Totals:      snap.Totals,
		CashBalance: snap.Summary.TotalCash,
	}
}

// Thresholds are the trigger points for each rule. Ratios are fractions (0.5 = 50%),
// LossPct and GainPct are percentages of total cost.
type Thresholds struct {
	ConcentrationRatio float64
	LossPct            float64
	GainPct            float64
	CashRatio          float64
	CryptoRatio        float64
	DisplayLimit       int
}

// DefaultThresholds returns the built-in rule thresholds
func DefaultThresholds() Thresholds {
	return NewThresholds(common.NewDefaultConfig().Insights)
}

// NewThresholds converts the [insights] config section. Zero values fall back to defaults.
func NewThresholds(cfg common.InsightsConfig) Thresholds {
	t := Thresholds{
		ConcentrationRatio: cfg.ConcentrationRatio,
		LossPct:            cfg.LossPct,
		GainPct:            cfg.GainPct,
		CashRatio:          cfg.CashRatio,
		CryptoRatio:        cfg.CryptoRatio,
		DisplayLimit:       cfg.DisplayLimit,
	}
	if t.ConcentrationRatio <= 0 {
		t.ConcentrationRatio = 0.50
	}
	if t.LossPct == 0 {
		t.LossPct = -10
	}
	if t.GainPct == 0 {
		t.GainPct = 20
	}
	if t.CashRatio <= 0 {
		t.CashRatio = 0.50
	}
	if t.CryptoRatio <= 0 {
		t.CryptoRatio = 0.25
	}
	if t.DisplayLimit <= 0 {
		t.DisplayLimit = 2
	}
	return t
}

// rule returns zero or more insights. Rules never error; a zero denominator gates the rule off.
type rule func(in Input, th Thresholds) []models.Insight

// rules is evaluated in order; output order follows this table.
var rules = []rule{
	concentrationRule,
	singleAssetTypeRule,
	significantLossRule,
	significantGainRule,
	highCashRule,
	highCryptoRule,
}

// Evaluate runs every rule in definition order and returns all triggered insights.
// An empty portfolio yields only the no-holdings insight.
func Evaluate(in Input, th Thresholds) []models.Insight {
	if len(in.Positions) == 0 {
		return []models.Insight{noHoldings()}
	}

	var out []models.Insight
	for _, r := range rules {
		out = append(out, r(in, th)...)
	}
	return out
}

// Visible removes dismissed ids and truncates to limit. A limit <= 0 disables truncation.
func Visible(all []models.Insight, dismissed map[string]struct{}, limit int) []models.Insight {
	out := make([]models.Insight, 0, len(all))
	for _, ins := range all {
		if _, ok := dismissed[ins.ID]; ok {
			continue
		}
		out = append(out, ins)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func wholePercent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

func noHoldings() models.Insight {
	return models.Insight{
		ID:            IDNoHoldings,
		Type:          models.InsightInfo,
		Title:         "Start Building Your Portfolio",
		ShortText:     "You don't own any investments yet. Make your first practice trade to get started.",
		FullText:      "Paper trading lets you practise with virtual money. Search for a stock or cryptocurrency you know, buy a small amount, and watch how its value changes over time. There is no real money at risk.",
		LearnMoreLink: "/learn/getting-started",
	}
}

func concentrationRule(in Input, th Thresholds) []models.Insight {
	if in.Totals.TotalValue <= 0 {
		return nil
	}

	var out []models.Insight
	for _, p := range in.Positions {
		share := p.MarketValue() / in.Totals.TotalValue
		if share <= th.ConcentrationRatio {
			continue
		}
		pct := wholePercent(share)
		out = append(out, models.Insight{
			ID:        ConcentrationID(p.Symbol),
			Type:      models.InsightWarning,
			Title:     "Concentration Risk",
			ShortText: fmt.Sprintf("%s makes up %d%% of your portfolio.", p.DisplaySymbol(), pct),
			FullText: fmt.Sprintf("%d%% of your portfolio value is in %s. If this one investment drops sharply, "+
				"your whole portfolio drops with it. Spreading money across several holdings reduces the impact of any single loss.",
				pct, p.DisplaySymbol()),
			LearnMoreLink: "/learn/diversification",
		})
	}
	return out
}

func singleAssetTypeRule(in Input, _ Thresholds) []models.Insight {
	if len(in.Positions) < 2 {
		return nil
	}

	types := make(map[models.AssetType]struct{})
	for _, p := range in.Positions {
		types[p.AssetType.Normalize()] = struct{}{}
	}
	if len(types) != 1 {
		return nil
	}

	label := "stocks"
	if in.Positions[0].AssetType.IsCrypto() {
		label = "cryptocurrencies"
	}

	return []models.Insight{{
		ID:        IDSingleAssetType,
		Type:      models.InsightInfo,
		Title:     "Single Asset Type",
		ShortText: fmt.Sprintf("All of your holdings are %s.", label),
		FullText: fmt.Sprintf("Every position you hold is in %s. Different asset types often move differently, "+
			"so mixing them can smooth out the ups and downs of your portfolio.", label),
		LearnMoreLink: "/learn/asset-classes",
	}}
}

func significantLossRule(in Input, th Thresholds) []models.Insight {
	pct, ok := in.Totals.GainLossPercent()
	if !ok || pct >= th.LossPct {
		return nil
	}

	return []models.Insight{{
		ID:        IDSignificantLoss,
		Type:      models.InsightWarning,
		Title:     "Portfolio Down",
		ShortText: fmt.Sprintf("Your portfolio is down %.1f%% from what you paid.", math.Abs(pct)),
		FullText: "Losses are a normal part of investing. Before selling, review why you bought each holding " +
			"and whether that reason still holds. Selling in a panic locks in the loss.",
		LearnMoreLink: "/learn/managing-losses",
	}}
}

func significantGainRule(in Input, th Thresholds) []models.Insight {
	pct, ok := in.Totals.GainLossPercent()
	if !ok || pct <= th.GainPct {
		return nil
	}

	return []models.Insight{{
		ID:        IDSignificantGain,
		Type:      models.InsightSuccess,
		Title:     "Strong Performance",
		ShortText: fmt.Sprintf("Your portfolio is up %d%% from what you paid.", int(math.Round(pct))),
		FullText: "Nice work. Strong gains can shift your portfolio's balance, so check whether a few winners " +
			"now make up more of it than you intended.",
		LearnMoreLink: "/learn/rebalancing",
	}}
}

func highCashRule(in Input, th Thresholds) []models.Insight {
	if in.Totals.TotalValue <= 0 {
		return nil
	}

	share := in.CashBalance / (in.Totals.TotalValue + in.CashBalance)
	if share <= th.CashRatio {
		return nil
	}

	return []models.Insight{{
		ID:        IDHighCash,
		Type:      models.InsightInfo,
		Title:     "Lots of Uninvested Cash",
		ShortText: fmt.Sprintf("%d%% of your account is sitting in cash.", wholePercent(share)),
		FullText: "Cash is safe but does not grow. If you are saving for a long-term goal, " +
			"consider putting some of it to work in a diversified set of investments.",
		LearnMoreLink: "/learn/cash-allocation",
	}}
}

func highCryptoRule(in Input, th Thresholds) []models.Insight {
	if in.Totals.TotalValue <= 0 {
		return nil
	}

	var crypto float64
	for _, p := range in.Positions {
		if p.AssetType.IsCrypto() {
			crypto += p.MarketValue()
		}
	}

	share := crypto / in.Totals.TotalValue
	if share <= th.CryptoRatio {
		return nil
	}

	return []models.Insight{{
		ID:        IDHighCrypto,
		Type:      models.InsightWarning,
		Title:     "High Crypto Exposure",
		ShortText: fmt.Sprintf("Cryptocurrency is %d%% of your portfolio.", wholePercent(share)),
		FullText: "Cryptocurrencies can rise or fall by large amounts in a single day. " +
			"Keeping them to a smaller share of your portfolio limits how much those swings affect you.",
		LearnMoreLink: "/learn/crypto-risk",
	}}
}
