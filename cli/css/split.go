package css

import (
	"regexp"
	"strconv"
	"strings"
)

// pxPerEm is the root font size used to convert pixel breakpoints.
const pxPerEm = 16.0

var minWidthRe = regexp.MustCompile(`(?i)min-width\s*:\s*([0-9]*\.?[0-9]+)\s*(px|em|rem)`)

// MinWidthEm returns the first min-width of a media query in em.
func MinWidthEm(query string) (float64, bool) {
	match := minWidthRe.FindStringSubmatch(query)
	if match == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	if strings.EqualFold(match[2], "px") {
		value /= pxPerEm
	}
	return value, true
}

// isLarge reports whether a top-level node belongs to the large part.
func isLarge(node *Node, breakpointEm float64) bool {
	if node.Kind != AtRuleNode || node.Name != "@media" || !node.Block {
		return false
	}
	width, ok := MinWidthEm(node.Prelude)
	return ok && width >= breakpointEm
}

// Split partitions the top-level nodes of the sheet. Media blocks whose
// min-width is at or above breakpointEm go to large, everything else to base.
func Split(sheet *Stylesheet, breakpointEm float64) (base, large *Stylesheet) {
	base, large = &Stylesheet{}, &Stylesheet{}
	for _, node := range sheet.Nodes {
		if isLarge(node, breakpointEm) {
			large.Nodes = append(large.Nodes, node)
		} else {
			base.Nodes = append(base.Nodes, node)
		}
	}
	return base, large
}
