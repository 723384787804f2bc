// Package classroom folds sub-room identifiers of divisible halls into one
// canonical display column.
package classroom

import (
	"fmt"
	"sort"
	"strings"
)

// Group declares a canonical room and the raw names that fold into it.
type Group struct {
	Canonical string   `yaml:"canonical" json:"canonical"`
	Aliases   []string `yaml:"aliases" json:"aliases"`
}

// Normalizer resolves raw classroom names. It is immutable after NewNormalizer.
type Normalizer struct {
	groups    []Group
	canonical map[string]string
	aliases   map[string][]string
}

// NewNormalizer validates groups and indexes them. A raw name may fold into at
// most one canonical room and a canonical room may not be another group's alias.
func NewNormalizer(groups []Group) (*Normalizer, error) {
	n := &Normalizer{
		canonical: make(map[string]string),
		aliases:   make(map[string][]string),
	}

	for _, g := range groups {
		name := strings.TrimSpace(g.Canonical)
		if name == "" {
			return nil, fmt.Errorf("classroom group with empty canonical name")
		}
		if _, dup := n.aliases[name]; dup {
			return nil, fmt.Errorf("classroom group %q declared twice", name)
		}
		n.aliases[name] = []string{name}
		n.groups = append(n.groups, Group{Canonical: name})
	}

	for gi, g := range groups {
		name := strings.TrimSpace(g.Canonical)
		for _, raw := range g.Aliases {
			alias := strings.TrimSpace(raw)
			if alias == "" || alias == name {
				continue
			}
			if _, isGroup := n.aliases[alias]; isGroup {
				return nil, fmt.Errorf("alias %q of %q is itself a canonical classroom", alias, name)
			}
			if prev, taken := n.canonical[alias]; taken {
				return nil, fmt.Errorf("alias %q folds into both %q and %q", alias, prev, name)
			}
			n.canonical[alias] = name
			n.aliases[name] = append(n.aliases[name], alias)
			n.groups[gi].Aliases = append(n.groups[gi].Aliases, alias)
		}
	}

	return n, nil
}

// Canonical maps a raw name to its canonical room. Unknown names pass through.
func (n *Normalizer) Canonical(raw string) string {
	if n == nil {
		return raw
	}
	if name, ok := n.canonical[raw]; ok {
		return name
	}
	return raw
}

// Same reports whether two raw names resolve to one room.
func (n *Normalizer) Same(a, b string) bool {
	return n.Canonical(a) == n.Canonical(b)
}

// BaseList returns the deduplicated, sorted canonical names of raws.
func (n *Normalizer) BaseList(raws []string) []string {
	seen := make(map[string]struct{}, len(raws))
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		name := n.Canonical(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// AliasesOf lists every raw name that folds into canonical, itself first.
func (n *Normalizer) AliasesOf(canonical string) []string {
	if n != nil {
		if list, ok := n.aliases[canonical]; ok {
			return append([]string(nil), list...)
		}
	}
	return []string{canonical}
}

// Groups returns a copy of the configured groups.
func (n *Normalizer) Groups() []Group {
	if n == nil {
		return nil
	}
	out := make([]Group, len(n.groups))
	for i, g := range n.groups {
		out[i] = Group{Canonical: g.Canonical, Aliases: append([]string(nil), g.Aliases...)}
	}
	return out
}
