package rank

import (
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
)

// ActionWeights are the signed contributions each interaction adds to
// a preference profile. Reference values, not re-derived.
var ActionWeights = map[domain.Action]float64{
	domain.ActionThumbsUp:   1.0,
	domain.ActionSave:       0.8,
	domain.ActionShare:      0.7,
	domain.ActionRead:       0.5,
	domain.ActionThumbsDown: -1.0,
}

// Profile is the materialized per-user aggregate of category and
// source affinity. It is always reconstructible from the interaction
// log via Replay; nothing here is an independent source of truth.
type Profile struct {
	Categories map[domain.Category]float64
	Sources    map[string]float64
}

func NewProfile() *Profile {
	return &Profile{
		Categories: make(map[domain.Category]float64),
		Sources:    make(map[string]float64),
	}
}

// Empty reports whether the profile carries no signal at all. An empty
// profile disables preference scoring in favor of pure recency.
func (p *Profile) Empty() bool {
	if p == nil {
		return true
	}
	return len(p.Categories) == 0 && len(p.Sources) == 0
}

func (p *Profile) CategoryPreference(c domain.Category) float64 {
	if p == nil {
		return 0
	}
	return p.Categories[c]
}

func (p *Profile) SourcePreference(source string) float64 {
	if p == nil {
		return 0
	}
	return p.Sources[source]
}

// Apply adds the action's weight for the article's category and source.
func (p *Profile) Apply(action domain.Action, category domain.Category, source string) {
	w, ok := ActionWeights[action]
	if !ok {
		return
	}
	p.Categories[category] += w
	if source != "" {
		p.Sources[source] += w
	}
}

// Retract removes a previously applied action's weight, used when a
// semantic toggle flips (a like replacing a dislike must erase the
// dislike's contribution exactly once).
func (p *Profile) Retract(action domain.Action, category domain.Category, source string) {
	w, ok := ActionWeights[action]
	if !ok {
		return
	}
	p.Categories[category] -= w
	if source != "" {
		p.Sources[source] -= w
	}
}

// ArticleRef is the minimal article metadata replay needs.
type ArticleRef struct {
	Category domain.Category
	Source   string
}

// Replay rebuilds a profile from the append-only interaction log.
// Per (article, action) the weight lands once, and thumbs are mutually
// exclusive: a later thumbs_up retracts an earlier thumbs_down on the
// same article, and vice versa. Interactions whose article is no
// longer resolvable are skipped.
func Replay(interactions []domain.Interaction, refs map[string]ArticleRef) *Profile {
	profile := NewProfile()

	applied := make(map[string]bool)           // (article|action) already counted
	thumbs := make(map[string]domain.Action)   // current thumb per article

	for _, in := range interactions {
		ref, ok := refs[in.ArticleID]
		if !ok {
			continue
		}

		switch in.Action {
		case domain.ActionThumbsUp, domain.ActionThumbsDown:
			current, has := thumbs[in.ArticleID]
			if has && current == in.Action {
				continue // same thumb repeated; idempotent
			}
			if has {
				profile.Retract(current, ref.Category, ref.Source)
			}
			profile.Apply(in.Action, ref.Category, ref.Source)
			thumbs[in.ArticleID] = in.Action

		default:
			key := in.ArticleID + "|" + string(in.Action)
			if applied[key] {
				continue
			}
			applied[key] = true
			profile.Apply(in.Action, ref.Category, ref.Source)
		}
	}

	return profile
}
