// Package matching scores candidate profiles against job requirements.
package matching

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spigell/resume-matcher/internal/resume"
)

const (
	fullScore    = 100
	partialScore = 50

	experienceEpsilon = 1e-9

	maxSkillRecommendations = 3
)

// Requirements is what a job asks for. A nil or empty constraint scores 100
// on its dimension; MinExperience <= 0 counts as absent.
type Requirements struct {
	Skills         []string `json:"skills" yaml:"skills"`
	MinExperience  float64  `json:"minExperience,omitempty" yaml:"minExperience" validate:"gte=0"`
	Education      []string `json:"education,omitempty" yaml:"education"`
	Certifications []string `json:"certifications,omitempty" yaml:"certifications"`
}

type Breakdown struct {
	SkillsMatch         int `json:"skillsMatch"`
	ExperienceMatch     int `json:"experienceMatch"`
	EducationMatch      int `json:"educationMatch"`
	CertificationsMatch int `json:"certificationsMatch"`
}

// MatchResult is the outcome of comparing one profile with one set of
// requirements. Skill lists keep the requirement's spelling.
type MatchResult struct {
	Score           int       `json:"score"`
	Breakdown       Breakdown `json:"breakdown"`
	MatchedSkills   []string  `json:"matchedSkills"`
	MissingSkills   []string  `json:"missingSkills"`
	Recommendations []string  `json:"recommendations"`
}

// Score compares a profile with job requirements. It is pure and never fails.
func Score(p *resume.ParsedResumeData, req Requirements) MatchResult {
	if p == nil {
		p = resume.Empty()
	}

	skills, matched, missing := scoreSkills(p.Skills.Pooled(), req.Skills)
	experience := scoreExperience(p.TotalYearsOfExperience, req.MinExperience)
	education, wantedEducation := scoreEducation(p.Education, req.Education)
	certifications := scoreCertifications(p.Certifications, req.Certifications)

	weighted := skills*4 + float64(experience*3) + float64(education*2) + certifications

	result := MatchResult{
		Score: roundHalfUp(weighted / 10),
		Breakdown: Breakdown{
			SkillsMatch:         roundHalfUp(skills),
			ExperienceMatch:     experience,
			EducationMatch:      education,
			CertificationsMatch: roundHalfUp(certifications),
		},
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Recommendations: []string{},
	}

	if len(missing) > 0 {
		top := missing
		if len(top) > maxSkillRecommendations {
			top = top[:maxSkillRecommendations]
		}
		result.Recommendations = append(result.Recommendations,
			"Consider gaining experience in: "+strings.Join(top, ", "))
	}
	if experience < 70 && req.MinExperience > 0 {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("Position requires %s+ years of experience", strconv.FormatFloat(req.MinExperience, 'f', -1, 64)))
	}
	if education < fullScore && len(wantedEducation) > 0 {
		result.Recommendations = append(result.Recommendations,
			"Preferred education: "+strings.Join(wantedEducation, " or "))
	}

	return result
}

func scoreSkills(candidate, required []string) (float64, []string, []string) {
	pool := folded(candidate)
	wanted := nonBlank(required)

	matched := make([]string, 0, len(wanted))
	missing := make([]string, 0)
	if len(wanted) == 0 {
		return fullScore, matched, missing
	}

	for _, skill := range wanted {
		if overlaps(pool, strings.ToLower(skill)) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	return ratio(len(matched), len(wanted)), matched, missing
}

// scoreExperience bands the ratio of actual to required years at 1.0, 0.7
// and 0.5. Thresholds are compared on years, with experienceEpsilon absorbing
// float error such as 4*0.7 != 2.8.
func scoreExperience(actual, minimum float64) int {
	if minimum <= 0 {
		return fullScore
	}

	reaches := func(share float64) bool {
		return actual+experienceEpsilon >= minimum*share
	}

	switch {
	case reaches(1):
		return 100
	case reaches(0.7):
		return 70
	case reaches(0.5):
		return 50
	default:
		return 30
	}
}

func scoreEducation(entries []resume.Education, required []string) (int, []string) {
	wanted := nonBlank(required)
	if len(wanted) == 0 {
		return fullScore, nil
	}

	degrees := make([]string, 0, len(entries))
	for _, e := range entries {
		degrees = append(degrees, strings.ToLower(strings.TrimSpace(e.Degree+" "+e.Field)))
	}

	for _, w := range wanted {
		needle := strings.ToLower(w)
		for _, d := range degrees {
			if strings.Contains(d, needle) {
				return fullScore, wanted
			}
		}
	}

	return partialScore, wanted
}

func scoreCertifications(certs []resume.Certification, required []string) float64 {
	wanted := nonBlank(required)
	if len(wanted) == 0 {
		return fullScore
	}

	names := make([]string, 0, len(certs))
	for _, c := range certs {
		names = append(names, c.Name)
	}
	pool := folded(names)

	matched := 0
	for _, w := range wanted {
		if overlaps(pool, strings.ToLower(w)) {
			matched++
		}
	}

	return ratio(matched, len(wanted))
}

// overlaps reports whether needle and any pool entry contain one another.
func overlaps(pool []string, needle string) bool {
	for _, have := range pool {
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			return true
		}
	}
	return false
}

// folded lower-cases and trims values, dropping blanks so that an empty
// entry never matches everything.
func folded(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func ratio(n, total int) float64 {
	return float64(n) / float64(total) * 100
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
