// Package content decides what the bot posts: the category rotation and
// the generation of post text with static fallbacks.
package content

import (
	"fmt"
	"strings"
)

// Category is a kind of content the bot can generate.
type Category string

const (
	CodingTip         Category = "coding_tip"
	MotivationalQuote Category = "motivational_quote"
	TechFact          Category = "tech_fact"
	CareerAdvice      Category = "career_advice"
)

// DefaultCategory is used whenever a category is empty or unknown.
const DefaultCategory = CodingTip

// AllCategories lists every known category in rotation order.
func AllCategories() []Category {
	return []Category{CodingTip, MotivationalQuote, TechFact, CareerAdvice}
}

// Known reports whether c is one of the known categories.
func (c Category) Known() bool {
	_, ok := templates[c]
	return ok
}

// OrDefault returns c when known, DefaultCategory otherwise.
func (c Category) OrDefault() Category {
	if c.Known() {
		return c
	}
	return DefaultCategory
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a category name. Matching ignores case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Known() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// ParseCategories parses a list of names, dropping duplicates while
// keeping the first occurrence order.
func ParseCategories(names []string) ([]Category, error) {
	seen := make(map[Category]bool, len(names))
	out := make([]Category, 0, len(names))
	for _, name := range names {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no categories enabled")
	}
	return out, nil
}
