package source

import (
	"strings"

	"github.com/spigell/resume-matcher/internal/resume"
	"github.com/spigell/resume-matcher/internal/temporal"
)

// jsonResume covers the parts of the JSON Resume standard
// (https://jsonresume.org/schema) that map onto the canonical profile.
type jsonResume struct {
	Basics struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		URL      string `json:"url"`
		Summary  string `json:"summary"`
		Location struct {
			City   string `json:"city"`
			Region string `json:"region"`
		} `json:"location"`
		Profiles []struct {
			Network string `json:"network"`
			URL     string `json:"url"`
		} `json:"profiles"`
	} `json:"basics"`
	Work []struct {
		Name       string   `json:"name"`
		Company    string   `json:"company"`
		Position   string   `json:"position"`
		Location   string   `json:"location"`
		StartDate  string   `json:"startDate"`
		EndDate    string   `json:"endDate"`
		Summary    string   `json:"summary"`
		Highlights []string `json:"highlights"`
	} `json:"work"`
	Education []struct {
		Institution string `json:"institution"`
		Area        string `json:"area"`
		StudyType   string `json:"studyType"`
		StartDate   string `json:"startDate"`
		EndDate     string `json:"endDate"`
		Score       string `json:"score"`
	} `json:"education"`
	Skills []struct {
		Name     string   `json:"name"`
		Keywords []string `json:"keywords"`
	} `json:"skills"`
	Languages []struct {
		Language string `json:"language"`
	} `json:"languages"`
	Certificates []struct {
		Name   string `json:"name"`
		Issuer string `json:"issuer"`
		Date   string `json:"date"`
		URL    string `json:"url"`
	} `json:"certificates"`
	Projects []struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Keywords    []string `json:"keywords"`
		URL         string   `json:"url"`
		StartDate   string   `json:"startDate"`
		EndDate     string   `json:"endDate"`
	} `json:"projects"`
	Publications []struct {
		Name        string `json:"name"`
		Publisher   string `json:"publisher"`
		ReleaseDate string `json:"releaseDate"`
		URL         string `json:"url"`
	} `json:"publications"`
	Awards []struct {
		Title   string `json:"title"`
		Awarder string `json:"awarder"`
		Date    string `json:"date"`
		Summary string `json:"summary"`
	} `json:"awards"`
	Volunteer []struct {
		Organization string `json:"organization"`
		Position     string `json:"position"`
		StartDate    string `json:"startDate"`
		EndDate      string `json:"endDate"`
		Summary      string `json:"summary"`
	} `json:"volunteer"`
}

// isJSONResume reports whether a decoded document follows the JSON Resume
// standard, recognised by its basics section.
func isJSONResume(doc map[string]any) bool {
	_, ok := doc["basics"].(map[string]any)
	return ok
}

// decodeJSONResume decodes field by field. A value with an unexpected shape
// keeps its zero value and is reported in dropped. A plain string location is
// taken as the city.
func decodeJSONResume(doc map[string]any) (jr *jsonResume, dropped []string) {
	if basics, ok := doc["basics"].(map[string]any); ok {
		if city, ok := basics["location"].(string); ok {
			patched := shallowCopy(basics)
			patched["location"] = map[string]any{"city": city}
			doc = shallowCopy(doc)
			doc["basics"] = patched
		}
	}

	jr = &jsonResume{}
	return jr, resume.DecodeLenient(doc, jr)
}

func shallowCopy(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// mapJSONResume converts a JSON Resume document field by field.
func mapJSONResume(jr *jsonResume) *resume.ParsedResumeData {
	p := &resume.ParsedResumeData{}

	b := jr.Basics
	p.PersonalInfo.FirstName, p.PersonalInfo.LastName = splitName(b.Name)
	p.PersonalInfo.Email = b.Email
	p.PersonalInfo.Phone = b.Phone
	p.PersonalInfo.Location = b.Location.City
	p.PersonalInfo.PortfolioURL = b.URL
	for _, profile := range b.Profiles {
		switch strings.ToLower(strings.TrimSpace(profile.Network)) {
		case "linkedin":
			if p.PersonalInfo.LinkedinURL == "" {
				p.PersonalInfo.LinkedinURL = profile.URL
			}
		case "github":
			if p.PersonalInfo.GithubURL == "" {
				p.PersonalInfo.GithubURL = profile.URL
			}
		}
	}
	p.Summary = b.Summary

	for _, w := range jr.Work {
		company := w.Name
		if company == "" {
			company = w.Company
		}
		end := w.EndDate
		if strings.TrimSpace(end) == "" {
			end = temporal.Present
		}
		p.Experience = append(p.Experience, resume.Experience{
			Company:     company,
			Position:    w.Position,
			Location:    w.Location,
			StartDate:   w.StartDate,
			EndDate:     end,
			IsCurrent:   strings.TrimSpace(w.EndDate) == "",
			Description: w.Summary,
			Highlights:  w.Highlights,
		})
	}

	for _, e := range jr.Education {
		p.Education = append(p.Education, resume.Education{
			Institution: e.Institution,
			Degree:      e.StudyType,
			Field:       e.Area,
			StartYear:   yearOf(e.StartDate),
			EndYear:     yearOf(e.EndDate),
			GPA:         e.Score,
		})
	}

	for _, s := range jr.Skills {
		if len(s.Keywords) == 0 {
			p.Skills.Technical = append(p.Skills.Technical, s.Name)
			continue
		}
		p.Skills.Technical = append(p.Skills.Technical, s.Keywords...)
	}
	for _, l := range jr.Languages {
		p.Skills.Languages = append(p.Skills.Languages, l.Language)
	}

	for _, c := range jr.Certificates {
		p.Certifications = append(p.Certifications, resume.Certification{
			Name:   c.Name,
			Issuer: c.Issuer,
			Date:   c.Date,
		})
	}

	for _, pr := range jr.Projects {
		p.Projects = append(p.Projects, resume.Project{
			Name:         pr.Name,
			Description:  pr.Description,
			Technologies: pr.Keywords,
			URL:          pr.URL,
			StartDate:    pr.StartDate,
			EndDate:      pr.EndDate,
		})
	}

	for _, pub := range jr.Publications {
		p.Publications = append(p.Publications, resume.Publication{
			Title:       pub.Name,
			Publication: pub.Publisher,
			Date:        pub.ReleaseDate,
			URL:         pub.URL,
		})
	}

	for _, a := range jr.Awards {
		p.Awards = append(p.Awards, resume.Award{
			Name:        a.Title,
			Issuer:      a.Awarder,
			Date:        a.Date,
			Description: a.Summary,
		})
	}

	for _, v := range jr.Volunteer {
		p.VolunteerExperience = append(p.VolunteerExperience, resume.Volunteer{
			Organization: v.Organization,
			Role:         v.Position,
			StartDate:    v.StartDate,
			EndDate:      v.EndDate,
			Description:  v.Summary,
		})
	}

	return resume.Normalize(p)
}

// splitName splits on the first space: everything after it is the last name.
func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	first, last, _ := strings.Cut(full, " ")
	return first, strings.TrimSpace(last)
}

func yearOf(date string) string {
	year, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	return year
}
