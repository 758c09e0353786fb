package resolver

import (
	"regexp"
	"strings"

	"github.com/de-tools/sales-pulse/pkg/models/domain"
)

// entityPattern extracts one candidate name per dimension: a run of CJK
// characters directly after the dimension's anchor keyword, trimmed of the
// metric suffix words that commonly follow a name (客戶台塑銷售額 → 台塑).
type entityPattern struct {
	dimension domain.Dimension
	triggers  []string
	anchor    *regexp.Regexp
	maxRunes  int
}

// nameSuffixes are metric words that terminate a name in the source text.
// Go's regexp has no lookahead, so the capture runs greedily over the CJK
// class and the suffix is stripped afterwards.
var nameSuffixes = []string{"銷售額", "業績", "銷售", "消費"}

// Patterns are tried in the original branch order: customer, staff, product,
// region. Product names run longer than person and place names.
var entityPatterns = []entityPattern{
	{domain.DimensionCustomer, []string{"客戶", "customer", "消費"}, regexp.MustCompile(`客戶\s*(\p{Han}+)`), 4},
	{domain.DimensionStaff, []string{"業務員", "銷售員", "staff", "業績"}, regexp.MustCompile(`業務員\s*(\p{Han}+)`), 4},
	{domain.DimensionProduct, []string{"產品", "商品", "product"}, regexp.MustCompile(`產品\s*(\p{Han}+)`), 10},
	{domain.DimensionRegion, []string{"地區", "區域", "region", "地方"}, regexp.MustCompile(`地區\s*(\p{Han}+)`), 4},
}

const minNameRunes = 2

// ExtractFocus pulls at most one candidate entity from the query text. The
// candidate's existence in the store is resolved later; absence of any
// candidate returns nil.
func ExtractFocus(text string) *domain.FocusEntity {
	lowered := strings.ToLower(text)
	for _, p := range entityPatterns {
		if !containsAny(lowered, p.triggers) {
			continue
		}
		for _, m := range p.anchor.FindAllStringSubmatch(text, -1) {
			if name, ok := trimCandidate(m[1], p.maxRunes); ok {
				return &domain.FocusEntity{Dimension: p.dimension, Name: name}
			}
		}
	}
	return nil
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func trimCandidate(raw string, maxRunes int) (string, bool) {
	trimmed := raw
	for changed := true; changed; {
		changed = false
		for _, suffix := range nameSuffixes {
			if strings.HasSuffix(trimmed, suffix) {
				trimmed = strings.TrimSuffix(trimmed, suffix)
				changed = true
			}
		}
	}
	runes := []rune(trimmed)
	if len(runes) < minNameRunes {
		return "", false
	}
	// A metric word left in the middle means the capture swallowed query
	// phrasing rather than a name.
	for _, suffix := range nameSuffixes {
		if strings.Contains(trimmed, suffix) {
			return "", false
		}
	}
	if len(runes) > maxRunes {
		runes = runes[:maxRunes]
	}
	return string(runes), true
}
