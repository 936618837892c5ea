package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/model"
)

// AllocationEntry is one slice of an allocation breakdown: a label (asset
// type or ticker) and the market value held under it.
type AllocationEntry struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// DividendMonthGroup is one month of dividend history. Month is the
// "YYYY-MM" key; Items are sorted descending by date within the group.
type DividendMonthGroup struct {
	Month string           `json:"month"`
	Total decimal.Decimal  `json:"total"`
	Items []model.Dividend `json:"items"`
}

// TotalBalance returns the sum of quantity * currentPrice over all assets.
func TotalBalance(assets []model.Asset) decimal.Decimal {
	total := decimal.Zero
	for _, asset := range assets {
		total = total.Add(asset.MarketValue())
	}
	return total
}

// TotalDividends returns the sum of all dividend amounts.
func TotalDividends(dividends []model.Dividend) decimal.Decimal {
	total := decimal.Zero
	for _, dividend := range dividends {
		total = total.Add(dividend.Amount)
	}
	return total
}

// AllocationByType groups market value by asset type, sorted descending by
// value. Ties break alphabetically so repeated calls on an unchanged
// snapshot yield identical output.
func AllocationByType(assets []model.Asset) []AllocationEntry {
	values := make(map[string]decimal.Decimal)
	for _, asset := range assets {
		key := string(asset.Type)
		values[key] = values[key].Add(asset.MarketValue())
	}

	entries := make([]AllocationEntry, 0, len(values))
	for name, value := range values {
		entries = append(entries, AllocationEntry{Name: name, Value: value})
	}
	sortAllocation(entries)
	return entries
}

// AllocationByAsset groups market value by ticker, optionally restricted to
// one asset type, sorted descending by value. The second return value is
// the total over the filtered set: relative percentages must be computed
// against it, not the unfiltered portfolio total, when a filter is active.
func AllocationByAsset(assets []model.Asset, typeFilter *model.AssetType) ([]AllocationEntry, decimal.Decimal) {
	entries := make([]AllocationEntry, 0, len(assets))
	total := decimal.Zero

	for _, asset := range assets {
		if typeFilter != nil && asset.Type != *typeFilter {
			continue
		}
		value := asset.MarketValue()
		entries = append(entries, AllocationEntry{Name: asset.Ticker, Value: value})
		total = total.Add(value)
	}

	sortAllocation(entries)
	return entries, total
}

// GroupDividendsByMonth groups dividends by the (year, month) of their date.
// Groups are returned most recent month first; within a group, items are
// sorted descending by date and Total is the sum of the group's amounts.
func GroupDividendsByMonth(dividends []model.Dividend) []DividendMonthGroup {
	byMonth := make(map[string][]model.Dividend)
	for _, dividend := range dividends {
		key := dividend.Date.Format("2006-01")
		byMonth[key] = append(byMonth[key], dividend)
	}

	groups := make([]DividendMonthGroup, 0, len(byMonth))
	for month, items := range byMonth {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Date.After(items[j].Date)
		})

		total := decimal.Zero
		for _, item := range items {
			total = total.Add(item.Amount)
		}

		groups = append(groups, DividendMonthGroup{Month: month, Total: total, Items: items})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Month > groups[j].Month
	})
	return groups
}

func sortAllocation(entries []AllocationEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value.Equal(entries[j].Value) {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Value.GreaterThan(entries[j].Value)
	})
}
