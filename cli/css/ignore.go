package css

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultIgnore is the default list of critical CSS ignore patterns.
var DefaultIgnore = []string{
	"@font-face",
	`/url\(/`,
	"/print/",
	"/animation/g",
	"/interpolation/g",
	"/-webkit/g",
	"/-moz/g",
	"/-ms/g",
	"/speak/g",
	"/list-style-image/g",
	"/list-style-type/g",
}

type matcher struct {
	exact string
	re    *regexp.Regexp
}

func (m matcher) match(s string) bool {
	if m.re != nil {
		return m.re.MatchString(s)
	}
	return m.exact == s
}

// IgnoreList matches selectors, at-rule types, declaration properties,
// declaration values and media queries.
type IgnoreList struct {
	matchers []matcher
}

// parsePattern converts "/re/flags" into a regular expression. Other
// patterns are matched exactly.
func parsePattern(pattern string) (matcher, error) {
	end := strings.LastIndex(pattern, "/")
	if len(pattern) < 2 || pattern[0] != '/' || end < 1 {
		return matcher{exact: pattern}, nil
	}
	expr, flags := pattern[1:end], pattern[end+1:]
	var goFlags string
	for _, flag := range flags {
		switch flag {
		case 'i', 'm', 's':
			goFlags += string(flag)
		case 'g', 'u', 'y':
		default:
			return matcher{}, fmt.Errorf("unknown flag %q in pattern %s", flag, pattern)
		}
	}
	if goFlags != "" {
		expr = "(?" + goFlags + ")" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return matcher{}, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}
	return matcher{re: re}, nil
}

// NewIgnoreList compiles ignore patterns.
func NewIgnoreList(patterns []string) (*IgnoreList, error) {
	list := &IgnoreList{}
	for _, pattern := range patterns {
		m, err := parsePattern(pattern)
		if err != nil {
			return nil, err
		}
		list.matchers = append(list.matchers, m)
	}
	return list, nil
}

// Match reports whether any pattern matches s.
func (l *IgnoreList) Match(s string) bool {
	for _, m := range l.matchers {
		if m.match(s) {
			return true
		}
	}
	return false
}

func (l *IgnoreList) filterNodes(nodes []*Node) []*Node {
	kept := make([]*Node, 0, len(nodes))
	for _, node := range nodes {
		switch node.Kind {
		case CommentNode:
			continue
		case DeclarationNode:
			if l.Match(node.Name) || l.Match(node.Prelude) {
				continue
			}
		case RulesetNode:
			if l.Match(strings.Join(node.Selectors, ",")) {
				continue
			}
			node.Children = l.filterNodes(node.Children)
			if len(node.Children) == 0 {
				continue
			}
		case AtRuleNode:
			if l.Match(node.Name) {
				continue
			}
			if node.Name == "@media" && l.Match(node.Prelude) {
				continue
			}
			if node.Block {
				node.Children = l.filterNodes(node.Children)
				if len(node.Children) == 0 {
					continue
				}
			}
		}
		kept = append(kept, node)
	}
	return kept
}

// Filter removes matching rules and declarations in place. Rules and
// blocks left empty are dropped along with comments.
func (l *IgnoreList) Filter(sheet *Stylesheet) *Stylesheet {
	sheet.Nodes = l.filterNodes(sheet.Nodes)
	return sheet
}

// Merge concatenates sheets dropping top-level nodes already present.
func Merge(sheets ...*Stylesheet) *Stylesheet {
	merged := &Stylesheet{}
	seen := make(map[string]struct{})
	for _, sheet := range sheets {
		for _, node := range sheet.Nodes {
			key := node.String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged.Nodes = append(merged.Nodes, node)
		}
	}
	return merged
}
