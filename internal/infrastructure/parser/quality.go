package parser

import (
	"slices"
	"strings"
)

// QualityOrder lists resolution markers from most to least preferred.
var QualityOrder = []string{"1080p", "720p", "V_720P", "v720p", "V_H264_600", "480p"}

// unranked sorts after every marker in QualityOrder.
const unranked = 99

func qualityRank(u string) int {
	for i, marker := range QualityOrder {
		if strings.Contains(u, marker) {
			return i
		}
	}
	return unranked
}

// RankByQuality returns a copy of urls sorted by QualityOrder. Equal ranks keep
// their input order.
func RankByQuality(urls []string) []string {
	ranked := slices.Clone(urls)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return qualityRank(a) - qualityRank(b)
	})
	return ranked
}

func bestQuality(urls []string) (string, bool) {
	if len(urls) == 0 {
		return "", false
	}
	return RankByQuality(urls)[0], true
}
