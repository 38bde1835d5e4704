package core

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"mxshs/vsv/src/domain"
)

type NodeKind int

const (
	NodeOther NodeKind = iota
	// NodeSection opens a round and counts toward the round limit.
	NodeSection
	// NodeBoundary closes the open round without opening a new one.
	NodeBoundary
	NodeMatch
)

// Node is one element of a results listing, reduced to what the grouping
// pass needs. Match fields are raw text as found on the page.
type Node struct {
	Kind      NodeKind
	HomeTeam  string
	AwayTeam  string
	HomeScore string
	AwayScore string
	ID        string
}

// ReadNodes flattens every container holding a sport section into one node
// sequence. Each container run is terminated by a boundary node.
func ReadNodes(s *goquery.Selection, sel Selector) []Node {
	var nodes []Node
	seen := make(map[*html.Node]struct{})

	s.Find("." + sel.Section + "." + sel.Sport).Each(func(i int, marker *goquery.Selection) {
		parent := marker.Parent()
		if parent.Length() == 0 {
			return
		}
		if _, ok := seen[parent.Get(0)]; ok {
			return
		}
		seen[parent.Get(0)] = struct{}{}

		parent.Children().Each(func(i int, c *goquery.Selection) {
			nodes = append(nodes, readNode(c, sel))
		})
		nodes = append(nodes, Node{Kind: NodeBoundary})
	})

	return nodes
}

func readNode(s *goquery.Selection, sel Selector) Node {
	switch {
	case s.HasClass(sel.Section) && s.HasClass(sel.Sport):
		return Node{Kind: NodeSection}
	case s.HasClass(sel.Section):
		return Node{Kind: NodeBoundary}
	case s.HasClass(sel.Match):
		id, _ := s.Attr("id")
		return Node{
			Kind:      NodeMatch,
			HomeTeam:  s.Find(sel.HomeTeam).First().Text(),
			AwayTeam:  s.Find(sel.AwayTeam).First().Text(),
			HomeScore: s.Find(sel.HomeScore).First().Text(),
			AwayScore: s.Find(sel.AwayScore).First().Text(),
			ID:        id,
		}
	default:
		return Node{Kind: NodeOther}
	}
}

// GroupMatches walks the node sequence and keeps the matches listed under
// the first limit sections. Incomplete or unparsable matches are dropped.
func GroupMatches(nodes []Node, limit int, idPrefix string) []domain.RawMatch {
	matches := []domain.RawMatch{}
	sections := 0
	open := false

	for _, n := range nodes {
		switch n.Kind {
		case NodeSection:
			if sections >= limit {
				return matches
			}
			sections++
			open = true
		case NodeBoundary:
			open = false
		case NodeMatch:
			if !open {
				continue
			}
			if m, ok := n.rawMatch(idPrefix); ok {
				matches = append(matches, m)
			}
		}
	}

	return matches
}

func (n Node) rawMatch(idPrefix string) (domain.RawMatch, bool) {
	home := strings.TrimSpace(n.HomeTeam)
	away := strings.TrimSpace(n.AwayTeam)
	id := strings.TrimPrefix(strings.TrimSpace(n.ID), idPrefix)

	if home == "" || away == "" || id == "" {
		return domain.RawMatch{}, false
	}

	scoreHome, ok := parseScore(n.HomeScore)
	if !ok {
		return domain.RawMatch{}, false
	}
	scoreAway, ok := parseScore(n.AwayScore)
	if !ok {
		return domain.RawMatch{}, false
	}

	return domain.RawMatch{
		HomeTeam:  home,
		AwayTeam:  away,
		ScoreHome: scoreHome,
		ScoreAway: scoreAway,
		MatchID:   id,
	}, true
}

func parseScore(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ExtractMatches reads up to limit rounds of finished matches from a
// results page.
func ExtractMatches(s *goquery.Selection, sel Selector, limit int) []domain.RawMatch {
	return GroupMatches(ReadNodes(s, sel), limit, sel.IDPrefix)
}
