// services/skill_match.go - Skill compatibility scoring
package services

import (
	"math"
	"math/rand"
	"strings"
)

// maxMatchPercentage caps the reported score so a listing never implies a
// guaranteed fit.
const maxMatchPercentage = 90

// SkillMatcher scores how well a candidate's skills satisfy a team's
// required skills. The jitter source is injectable: production matchers
// perturb each score by a few points, tests pin it to zero.
type SkillMatcher struct {
	jitter func(n int) int // returns a value in [0, n)
}

// NewSkillMatcher returns a matcher with the default random perturbation.
func NewSkillMatcher() *SkillMatcher {
	return &SkillMatcher{jitter: rand.Intn}
}

// NewDeterministicMatcher returns a matcher without perturbation, so the
// same inputs always produce the same score.
func NewDeterministicMatcher() *SkillMatcher {
	return &SkillMatcher{}
}

// Match returns an integer percentage in [0, 90]. Either set being empty
// yields 0. Exact matches count double; a partial match is a substring
// relation in either direction, which intentionally also fires for exact
// matches.
func (m *SkillMatcher) Match(userSkills, teamSkills []string) int {
	if len(userSkills) == 0 || len(teamSkills) == 0 {
		return 0
	}

	team := make([]string, 0, len(teamSkills))
	teamSet := make(map[string]struct{}, len(teamSkills))
	for _, raw := range teamSkills {
		skill := normalizeSkill(raw)
		if skill == "" {
			continue
		}
		if _, seen := teamSet[skill]; seen {
			continue
		}
		teamSet[skill] = struct{}{}
		team = append(team, skill)
	}
	if len(team) == 0 {
		return 0
	}

	var exact, partial int
	for _, raw := range userSkills {
		skill := normalizeSkill(raw)
		if skill == "" {
			continue
		}
		if _, ok := teamSet[skill]; ok {
			exact++
		}
		for _, t := range team {
			if strings.Contains(t, skill) || strings.Contains(skill, t) {
				partial++
				break
			}
		}
	}

	raw := float64(exact*2+partial) / float64(len(team)*2)
	pct := int(math.Round(raw * 100))
	if pct > maxMatchPercentage {
		pct = maxMatchPercentage
	}

	if m.jitter != nil {
		pct += m.jitter(11) - 5
	}
	if pct < 0 {
		pct = 0
	}
	if pct > maxMatchPercentage {
		pct = maxMatchPercentage
	}

	return pct
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
