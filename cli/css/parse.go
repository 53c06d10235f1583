// Package css provides the stylesheet transforms of the asset pipeline:
// breakpoint splitting, critical-path filtering and minification.
package css

import (
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// NodeKind is a kind of stylesheet node.
type NodeKind int

const (
	// RulesetNode is a selector list with a declaration block.
	RulesetNode NodeKind = iota
	// AtRuleNode is an at-rule, with or without a block.
	AtRuleNode
	// DeclarationNode is a property: value pair.
	DeclarationNode
	// CommentNode is a comment.
	CommentNode
)

// Node is a stylesheet node.
type Node struct {
	Kind NodeKind
	// Name is an at-rule name with the leading @ or a declaration property.
	Name string
	// Selectors of a ruleset.
	Selectors []string
	// Prelude is an at-rule prelude, a declaration value or comment text.
	Prelude string
	// Block is true if the at-rule has a block.
	Block bool
	// Children of a ruleset or a block at-rule.
	Children []*Node
}

// Stylesheet is a parsed stylesheet: a flat list of top-level nodes.
type Stylesheet struct {
	Nodes []*Node
}

// tokensText joins token data. Whitespace runs between tokens become a
// single space, leading and trailing whitespace is dropped, and every other
// token is kept as is.
func tokensText(tokens []css.Token) string {
	start, end := 0, len(tokens)
	for start < end && tokens[start].TokenType == css.WhitespaceToken {
		start++
	}
	for end > start && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	var sb strings.Builder
	space := false
	for _, token := range tokens[start:end] {
		if token.TokenType == css.WhitespaceToken {
			space = true
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(token.Data)
	}
	return sb.String()
}

// Parse parses stylesheet source into nodes.
func Parse(src []byte) (*Stylesheet, error) {
	parser := css.NewParser(parse.NewInputBytes(src), false)
	root := &Node{}
	stack := []*Node{root}
	var selectors []string

	top := func() *Node { return stack[len(stack)-1] }
	push := func(node *Node) {
		top().Children = append(top().Children, node)
		stack = append(stack, node)
	}
	pop := func() {
		if len(stack) > 1 {
			stack = stack[:len(stack)-1]
		}
	}

	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			return &Stylesheet{Nodes: root.Children}, nil
		case css.CommentGrammar:
			top().Children = append(top().Children, &Node{Kind: CommentNode, Prelude: string(data)})
		case css.QualifiedRuleGrammar:
			selectors = append(selectors, tokensText(parser.Values()))
		case css.BeginRulesetGrammar:
			selectors = append(selectors, tokensText(parser.Values()))
			push(&Node{Kind: RulesetNode, Selectors: selectors})
			selectors = nil
		case css.BeginAtRuleGrammar:
			push(&Node{
				Kind:    AtRuleNode,
				Name:    strings.ToLower(string(data)),
				Prelude: tokensText(parser.Values()),
				Block:   true,
			})
		case css.AtRuleGrammar:
			top().Children = append(top().Children, &Node{
				Kind:    AtRuleNode,
				Name:    strings.ToLower(string(data)),
				Prelude: tokensText(parser.Values()),
			})
		case css.EndRulesetGrammar, css.EndAtRuleGrammar:
			pop()
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			top().Children = append(top().Children, &Node{
				Kind:    DeclarationNode,
				Name:    string(data),
				Prelude: tokensText(parser.Values()),
			})
		}
	}
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Kind {
	case CommentNode:
		sb.WriteString(n.Prelude)
	case DeclarationNode:
		sb.WriteString(n.Name)
		sb.WriteByte(':')
		sb.WriteString(n.Prelude)
	case RulesetNode:
		sb.WriteString(strings.Join(n.Selectors, ","))
		n.writeBlock(sb)
	case AtRuleNode:
		sb.WriteString(n.Name)
		if n.Prelude != "" {
			sb.WriteByte(' ')
			sb.WriteString(n.Prelude)
		}
		if n.Block {
			n.writeBlock(sb)
		} else {
			sb.WriteByte(';')
		}
	}
}

func (n *Node) writeBlock(sb *strings.Builder) {
	sb.WriteByte('{')
	for i, child := range n.Children {
		if i > 0 && child.Kind == DeclarationNode && n.Children[i-1].Kind == DeclarationNode {
			sb.WriteByte(';')
		}
		child.write(sb)
	}
	sb.WriteByte('}')
}

// String serializes the node.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

// Bytes serializes the stylesheet, one top-level node per line.
func (s *Stylesheet) Bytes() []byte {
	var sb strings.Builder
	for _, node := range s.Nodes {
		node.write(&sb)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}
