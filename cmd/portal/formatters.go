package main

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/cryptoai-portal/internal/models"
	"github.com/bobmcallan/cryptoai-portal/internal/sessions"
)

// unknownPlaceholder renders "not yet loaded / unknown" values. Never print
// a zero for data that simply hasn't arrived.
const unknownPlaceholder = "---"

// formatMessage renders one chat turn, with the reasoning annotation on its
// own line when present.
func formatMessage(m models.Message) string {
	var sb strings.Builder
	switch m.Role {
	case models.RoleUser:
		sb.WriteString(fmt.Sprintf("you>  %s\n", m.Content))
	default:
		sb.WriteString(fmt.Sprintf("ai>   %s\n", m.Content))
		if m.Thought != "" {
			sb.WriteString(fmt.Sprintf("      [reasoning: %s]\n", m.Thought))
		}
	}
	return sb.String()
}

// formatSnapshot renders the market snapshot table for the configured assets.
func formatSnapshot(snapshot models.MarketSnapshot, assets []string) string {
	var sb strings.Builder
	sb.WriteString("Market snapshot\n")
	if snapshot == nil {
		sb.WriteString("  (not yet loaded)\n")
		return sb.String()
	}
	for _, asset := range assets {
		price, change := unknownPlaceholder, unknownPlaceholder
		if q, ok := snapshot.Quote(asset); ok {
			price = fmt.Sprintf("$%.2f", q.USD)
			change = fmt.Sprintf("%+.2f%%", q.USD24hChange)
		}
		sb.WriteString(fmt.Sprintf("  %-10s %12s %10s\n", asset, price, change))
	}
	return sb.String()
}

// formatAnalytics renders the analytics view: summary metrics, the strategy
// recommendation and the forecast for the selected asset.
func formatAnalytics(summary *models.AnalyticsSummary, strategies *models.StrategyRecommendation, forecast *models.ForecastSeries, selected string) string {
	var sb strings.Builder

	sb.WriteString("Portfolio analytics\n")
	if summary == nil {
		sb.WriteString("  (not yet loaded)\n")
	} else {
		sb.WriteString(fmt.Sprintf("  Status              %s\n", summary.Status))
		sb.WriteString(fmt.Sprintf("  Sharpe Ratio        %.2f\n", summary.SharpeRatio))
		sb.WriteString(fmt.Sprintf("  Volatility (Annual) %.2f%%\n", summary.VolatilityAnnual*100))
		sb.WriteString(fmt.Sprintf("  Value at Risk (95%%) %.2f%%\n", summary.VaR95*100))
	}

	sb.WriteString("DCA plan\n")
	if strategies == nil {
		sb.WriteString("  (not yet loaded)\n")
	} else {
		plan := strategies.DCAPlan
		sb.WriteString(fmt.Sprintf("  Frequency           %s\n", plan.Frequency))
		sb.WriteString(fmt.Sprintf("  Amount per period   $%.2f\n", plan.RecommendedAmount))
		sb.WriteString(fmt.Sprintf("  Targets             %s\n", strings.Join(plan.TargetAssets, ", ")))
		if plan.Rationale != "" {
			sb.WriteString(fmt.Sprintf("  Rationale           %s\n", plan.Rationale))
		}

		sb.WriteString("Rebalancing signals\n")
		if len(strategies.Signals) == 0 {
			sb.WriteString("  No rebalancing needed at this time.\n")
		} else {
			for _, sig := range strategies.Signals {
				sb.WriteString(fmt.Sprintf("  %-4s %-6s deviation %+.2f%%\n", sig.Action, sig.Asset, sig.DeviationPct))
			}
		}

		if s := strategies.Sentiment; s != nil {
			sb.WriteString("Market sentiment\n")
			sb.WriteString(fmt.Sprintf("  %s (%d/100, %s)\n", s.Label, s.Score, s.Trend))
			if s.Suggestion != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", s.Suggestion))
			}
		}
	}

	sb.WriteString(fmt.Sprintf("Forecast (%s)\n", selected))
	if forecast == nil {
		sb.WriteString("  (not yet loaded)\n")
	} else {
		for _, p := range forecast.Points {
			sb.WriteString(fmt.Sprintf("  day %2d  $%12.2f  [%.2f .. %.2f]\n", p.Day, p.Price, p.Lower, p.Upper))
		}
	}

	return sb.String()
}

// formatProfile renders the profile modal state and draft.
func formatProfile(state sessions.ProfileState, draft models.Profile) string {
	if state == sessions.ProfileClosed {
		return "Profile: closed\n"
	}
	return fmt.Sprintf("Profile: %s  risk=%s  goal=%s\n", state, draft.RiskTolerance, draft.InvestmentGoal)
}
