package analysis

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/de-tools/sales-pulse/pkg/models/domain"
)

var zhPrinter = message.NewPrinter(language.TraditionalChinese)

func formatAmount(v float64) string {
	return zhPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// Summarize renders one deterministic text summary of an analysis result.
// Pure function of its input; the same result always yields the same text.
func Summarize(result *domain.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s:本期銷售額 %s 元,比較期 %s 元,",
		result.PeriodLabel, formatAmount(result.CurrentTotal), formatAmount(result.ComparisonTotal))

	switch {
	case result.Delta == 0:
		b.WriteString("持平。")
	case math.IsInf(result.PercentDelta, 0):
		// Comparison period had no sales; a percentage is meaningless.
		fmt.Fprintf(&b, "%s %s 元。", directionWord(result.Delta), formatAmount(math.Abs(result.Delta)))
	default:
		fmt.Fprintf(&b, "%s%s %.1f%%。",
			intensityWord(result.PercentDelta), directionWord(result.Delta), math.Abs(result.PercentDelta))
	}

	if top := firstOfSign(result.Drivers, 1); top != nil {
		fmt.Fprintf(&b, "%s「%s」貢獻了 %s 元的成長。",
			result.Dimension.Label(), top.Label, formatAmount(top.Delta))
	}
	if bottom := firstOfSign(result.Drivers, -1); bottom != nil {
		fmt.Fprintf(&b, "%s「%s」減少了 %s 元。",
			result.Dimension.Label(), bottom.Label, formatAmount(math.Abs(bottom.Delta)))
	}

	return b.String()
}

// SummarizeLookup renders the text of an entity lookup. A missing entity is a
// normal answer, not an error.
func SummarizeLookup(result *domain.EntityLookupResult) string {
	if !result.Exists {
		return fmt.Sprintf("查無%s「%s」的銷售資料。", result.Dimension.Label(), result.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s「%s」", result.Dimension.Label(), result.Name)
	if len(result.Rows) == 0 {
		b.WriteString("在查詢期間內沒有銷售紀錄。")
		return b.String()
	}
	for _, row := range result.Rows {
		fmt.Fprintf(&b, "累計銷售額 %s 元,共 %s 件。",
			formatAmount(row.TotalAmount), zhPrinter.Sprint(number.Decimal(row.TotalQuantity)))
	}
	return b.String()
}

func intensityWord(percentDelta float64) string {
	abs := math.Abs(percentDelta)
	switch {
	case abs > 50:
		return "大幅"
	case abs >= 20:
		return "明顯"
	default:
		return "小幅"
	}
}

func directionWord(delta float64) string {
	if delta < 0 {
		return "下滑"
	}
	return "成長"
}

// firstOfSign returns the highest-impact driver of the given sign. Rows are
// already ordered by |Delta| descending.
func firstOfSign(rows []domain.DriverRow, sign int) *domain.DriverRow {
	for i := range rows {
		if sign > 0 && rows[i].Delta > 0 {
			return &rows[i]
		}
		if sign < 0 && rows[i].Delta < 0 {
			return &rows[i]
		}
	}
	return nil
}
