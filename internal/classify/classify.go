// Package classify derives a coarse disability-type signal from a document
// transcript via keyword matching. It is a heuristic used to route
// accessibility-specific handling downstream, not a diagnosis.
package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Type is the classification outcome.
type Type string

const (
	TypeBlind  Type = "blind"
	TypeDeaf   Type = "deaf"
	TypeNormal Type = "normal"
)

// Rule matches a set of boundary-delimited keywords against lowercased
// text and maps a hit to a Type. Rules are evaluated in order; the first
// hit wins.
type Rule struct {
	Type    Type
	pattern *regexp.Regexp
}

// Classifier applies an ordered rule list.
type Classifier struct {
	rules []Rule
}

// compileRule builds a word-boundary alternation over the keywords so
// "deafening" never matches "deaf". Multi-word phrases match with any
// run of whitespace between words.
func compileRule(t Type, keywords []string) (Rule, error) {
	if len(keywords) == 0 {
		return Rule{}, fmt.Errorf("rule %q has no keywords", t)
	}
	alts := make([]string, len(keywords))
	for i, kw := range keywords {
		words := strings.Fields(strings.ToLower(kw))
		if len(words) == 0 {
			return Rule{}, fmt.Errorf("rule %q has an empty keyword", t)
		}
		for j, w := range words {
			words[j] = regexp.QuoteMeta(w)
		}
		alts[i] = strings.Join(words, `\s+`)
	}
	re, err := regexp.Compile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
	if err != nil {
		return Rule{}, fmt.Errorf("compile rule %q: %w", t, err)
	}
	return Rule{Type: t, pattern: re}, nil
}

// Default returns the built-in classifier: blind before deaf, normal as
// fallthrough.
func Default() *Classifier {
	c, err := New([]RuleSpec{
		{Type: TypeBlind, Keywords: []string{"blind", "blindness"}},
		{Type: TypeDeaf, Keywords: []string{"deaf", "hearing impaired"}},
	})
	if err != nil {
		// The built-in rules are constant; a compile failure is a bug.
		panic(err)
	}
	return c
}

// RuleSpec is the declarative form of a rule.
type RuleSpec struct {
	Type     Type     `yaml:"type"`
	Keywords []string `yaml:"keywords"`
}

// New compiles an ordered rule list into a Classifier.
func New(specs []RuleSpec) (*Classifier, error) {
	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		switch s.Type {
		case TypeBlind, TypeDeaf:
		default:
			return nil, fmt.Errorf("unknown classification type %q", s.Type)
		}
		r, err := compileRule(s.Type, s.Keywords)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return &Classifier{rules: rules}, nil
}

// Classify returns the first rule hit against the case-folded text, or
// TypeNormal when nothing matches.
func (c *Classifier) Classify(text string) Type {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		if r.pattern.MatchString(lower) {
			return r.Type
		}
	}
	return TypeNormal
}
