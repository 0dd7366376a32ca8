package resume

import (
	"math"
	"strings"

	"github.com/spigell/resume-matcher/internal/temporal"
)

// Normalize fills every absent field with its zero value, trims strings,
// canonicalises experience dates and derives missing durations. When the
// reported total experience is zero but entries exist, the total is
// recomputed from the entries. It is applied to the output of every producer
// and is idempotent. A nil profile yields an empty one.
func Normalize(p *ParsedResumeData) *ParsedResumeData {
	if p == nil {
		p = &ParsedResumeData{}
	}

	info := &p.PersonalInfo
	for _, field := range []*string{
		&info.FirstName, &info.LastName, &info.Email, &info.Phone,
		&info.Location, &info.LinkedinURL, &info.GithubURL, &info.PortfolioURL,
	} {
		*field = strings.TrimSpace(*field)
	}

	p.Summary = strings.TrimSpace(p.Summary)

	p.Experience = nonNil(p.Experience)
	for i := range p.Experience {
		normalizeExperience(&p.Experience[i])
	}

	p.Education = nonNil(p.Education)
	for i := range p.Education {
		e := &p.Education[i]
		trimAll(&e.Institution, &e.Degree, &e.Field, &e.StartYear, &e.EndYear, &e.GPA, &e.Honors)
	}

	p.Skills.Technical = cleanList(p.Skills.Technical)
	p.Skills.Soft = cleanList(p.Skills.Soft)
	p.Skills.Languages = cleanList(p.Skills.Languages)
	p.Skills.Tools = cleanList(p.Skills.Tools)

	p.Certifications = nonNil(p.Certifications)
	p.Projects = nonNil(p.Projects)
	for i := range p.Projects {
		p.Projects[i].Technologies = cleanList(p.Projects[i].Technologies)
	}
	p.Publications = nonNil(p.Publications)
	p.Awards = nonNil(p.Awards)
	p.VolunteerExperience = nonNil(p.VolunteerExperience)

	total := p.TotalYearsOfExperience
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		total = 0
	}
	if total == 0 && len(p.Experience) > 0 {
		total = temporal.TotalExperience(Spans(p.Experience))
	}
	p.TotalYearsOfExperience = temporal.RoundTenth(total)

	return p
}

func normalizeExperience(e *Experience) {
	trimAll(&e.Company, &e.Position, &e.Location, &e.Description, &e.Duration)

	if temporal.IsOpenEnded(e.EndDate) {
		e.IsCurrent = true
	}
	e.StartDate = temporal.Normalize(e.StartDate, false)
	e.EndDate = temporal.Normalize(e.EndDate, true)

	if e.Duration == "" {
		e.Duration = temporal.Duration(e.StartDate, e.EndDate)
	}
	e.Highlights = cleanList(e.Highlights)
}

// Spans projects experience entries onto the span type used for totals.
func Spans(entries []Experience) []temporal.Span {
	spans := make([]temporal.Span, 0, len(entries))
	for _, e := range entries {
		spans = append(spans, temporal.Span{Start: e.StartDate, End: e.EndDate})
	}
	return spans
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// cleanList trims entries and drops blank ones. Duplicates are kept.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
