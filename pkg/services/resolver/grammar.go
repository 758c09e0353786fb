package resolver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/sales-pulse/pkg/models/domain"
)

// windowPair is the outcome of one grammar: two inclusive windows plus the
// human-readable period label assembled alongside them.
type windowPair struct {
	current    domain.TimeWindow
	comparison domain.TimeWindow
	label      string
}

// grammar is a pure matcher over normalized text. The cascade tries grammars
// in order; the first one returning a non-nil pair wins outright.
type grammar struct {
	name  string
	match func(text string, ref time.Time) *windowPair
}

var (
	reSlashDash = regexp.MustCompile(`(\d{4})[/-](\d{1,2})`)
	// Year tokens capture an optional month/quarter tail; a token only counts
	// as "year only" when the tail is empty. This replaces the negative
	// lookahead of the source grammar, which Go's regexp does not support.
	reYearToken = regexp.MustCompile(`(\d{4})年(\d{1,2}月|Q\d)?`)
	reYearMonth = regexp.MustCompile(`(\d{4})年(\d{1,2})月`)
	// Quarter mentions capture an optional year prefix, numeric or relative.
	// A mention with an empty prefix is a "pure" quarter.
	reQuarterToken = regexp.MustCompile(`((\d{4})年|去年|前年|今年)?Q(\d)`)
)

var relativeYearOffsets = map[string]int{
	"去年": 1,
	"前年": 2,
	"今年": 0,
}

// temporalGrammars is the fixed cascade. Priority and per-grammar defaulting
// rules follow the documented resolution order; every level has an explicit
// default, so resolution always terminates.
var temporalGrammars = []grammar{
	{name: "numeric-year-month", match: matchSlashDash},
	{name: "year-only", match: matchYearOnly},
	{name: "cjk-year-month", match: matchYearMonth},
	{name: "quarter-family", match: matchQuarterFamily},
}

type yearMonth struct {
	year  int
	month time.Month
}

func matchSlashDash(text string, _ time.Time) *windowPair {
	return monthPairFromMatches(collectYearMonths(reSlashDash.FindAllStringSubmatch(text, -1)))
}

func matchYearMonth(text string, _ time.Time) *windowPair {
	return monthPairFromMatches(collectYearMonths(reYearMonth.FindAllStringSubmatch(text, -1)))
}

func collectYearMonths(matches [][]string) []yearMonth {
	var out []yearMonth
	for _, m := range matches {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			continue
		}
		out = append(out, yearMonth{year: year, month: time.Month(month)})
	}
	return out
}

func monthPairFromMatches(mentions []yearMonth) *windowPair {
	switch {
	case len(mentions) >= 2:
		cur, cmp := mentions[0], mentions[1]
		return &windowPair{
			current:    domain.MonthWindow(cur.year, cur.month),
			comparison: domain.MonthWindow(cmp.year, cmp.month),
			label: fmt.Sprintf("%d年%02d月 vs %d年%02d月",
				cur.year, cur.month, cmp.year, cmp.month),
		}
	case len(mentions) == 1:
		cur := mentions[0]
		current := domain.MonthWindow(cur.year, cur.month)
		prev := current.Start.AddDate(0, -1, 0)
		return &windowPair{
			current:    current,
			comparison: domain.MonthWindow(prev.Year(), prev.Month()),
			label:      fmt.Sprintf("%d年%02d月 vs 上月", cur.year, cur.month),
		}
	}
	return nil
}

func matchYearOnly(text string, _ time.Time) *windowPair {
	var years []int
	for _, m := range reYearToken.FindAllStringSubmatch(text, -1) {
		if m[2] != "" {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		years = append(years, year)
	}
	switch {
	case len(years) >= 2:
		return &windowPair{
			current:    domain.YearWindow(years[0]),
			comparison: domain.YearWindow(years[1]),
			label:      fmt.Sprintf("%d年 vs %d年", years[0], years[1]),
		}
	case len(years) == 1:
		return &windowPair{
			current:    domain.YearWindow(years[0]),
			comparison: domain.YearWindow(years[0] - 1),
			label:      fmt.Sprintf("%d年 vs 去年", years[0]),
		}
	}
	return nil
}

type quarterMention struct {
	year     int
	quarter  int
	pure     bool
	relative string
}

func collectQuarters(text string) []quarterMention {
	var out []quarterMention
	for _, m := range reQuarterToken.FindAllStringSubmatch(text, -1) {
		quarter, _ := strconv.Atoi(m[3])
		if quarter < 1 || quarter > 4 {
			continue
		}
		mention := quarterMention{quarter: quarter}
		switch {
		case m[2] != "":
			mention.year, _ = strconv.Atoi(m[2])
		case m[1] != "":
			mention.relative = m[1]
		default:
			mention.pure = true
		}
		out = append(out, mention)
	}
	return out
}

func matchQuarterFamily(text string, ref time.Time) *windowPair {
	if !strings.Contains(text, "Q") && !strings.Contains(text, "季") {
		return nil
	}

	mentions := collectQuarters(text)

	var pure, explicit, relative []quarterMention
	for _, m := range mentions {
		switch {
		case m.pure:
			pure = append(pure, m)
		case m.relative != "":
			relative = append(relative, m)
		default:
			explicit = append(explicit, m)
		}
	}

	switch {
	case len(pure) >= 2:
		return &windowPair{
			current:    domain.QuarterWindow(ref.Year(), pure[0].quarter),
			comparison: domain.QuarterWindow(ref.Year(), pure[1].quarter),
			label:      fmt.Sprintf("Q%d vs Q%d", pure[0].quarter, pure[1].quarter),
		}
	case len(pure) == 1:
		curYear, curQ := ref.Year(), pure[0].quarter
		cmpYear, cmpQ := previousQuarter(curYear, curQ)
		return &windowPair{
			current:    domain.QuarterWindow(curYear, curQ),
			comparison: domain.QuarterWindow(cmpYear, cmpQ),
			label:      fmt.Sprintf("Q%d vs Q%d", curQ, cmpQ),
		}
	case len(explicit) >= 2:
		cur, cmp := explicit[0], explicit[1]
		return quarterPair(cur.year, cur.quarter, cmp.year, cmp.quarter)
	case len(explicit) == 1 && len(relative) >= 1:
		cur := explicit[0]
		cmpYear := cur.year - relativeYearOffsets[relative[0].relative]
		return quarterPair(cur.year, cur.quarter, cmpYear, relative[0].quarter)
	case len(explicit) == 1:
		cur := explicit[0]
		cmpYear, cmpQ := previousQuarter(cur.year, cur.quarter)
		return quarterPair(cur.year, cur.quarter, cmpYear, cmpQ)
	}

	// Quarter marker present but no recognizable quarter pattern: current
	// calendar quarter of the reference date vs the one before it.
	curQ := int(ref.Month()-1)/3 + 1
	cmpYear, cmpQ := previousQuarter(ref.Year(), curQ)
	return &windowPair{
		current:    domain.QuarterWindow(ref.Year(), curQ),
		comparison: domain.QuarterWindow(cmpYear, cmpQ),
		label:      fmt.Sprintf("%d年Q%d vs 上季", ref.Year(), curQ),
	}
}

func quarterPair(curYear, curQ, cmpYear, cmpQ int) *windowPair {
	return &windowPair{
		current:    domain.QuarterWindow(curYear, curQ),
		comparison: domain.QuarterWindow(cmpYear, cmpQ),
		label:      fmt.Sprintf("%d年Q%d vs %d年Q%d", curYear, curQ, cmpYear, cmpQ),
	}
}

func previousQuarter(year, quarter int) (int, int) {
	if quarter == 1 {
		return year - 1, 4
	}
	return year, quarter - 1
}

// fallbackPair is the global default: current calendar month of the
// reference date vs the previous month.
func fallbackPair(ref time.Time) *windowPair {
	current := domain.MonthWindow(ref.Year(), ref.Month())
	prev := current.Start.AddDate(0, -1, 0)
	return &windowPair{
		current:    current,
		comparison: domain.MonthWindow(prev.Year(), prev.Month()),
		label:      fmt.Sprintf("%d年%02d月 vs 上月", ref.Year(), ref.Month()),
	}
}
