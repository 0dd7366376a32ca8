package resume

import "strings"

// Merge combines profiles imported from several sources. Scalar fields take
// the first non-empty value, sequences are concatenated in argument order,
// skill buckets are de-duplicated case-insensitively keeping the first
// spelling, and total experience is the largest reported value.
func Merge(profiles ...*ParsedResumeData) *ParsedResumeData {
	out := &ParsedResumeData{}

	for _, p := range profiles {
		if p == nil {
			continue
		}

		mergeInfo(&out.PersonalInfo, p.PersonalInfo)
		firstNonEmpty(&out.Summary, p.Summary)

		if p.TotalYearsOfExperience > out.TotalYearsOfExperience {
			out.TotalYearsOfExperience = p.TotalYearsOfExperience
		}

		out.Experience = append(out.Experience, p.Experience...)
		out.Education = append(out.Education, p.Education...)
		out.Certifications = append(out.Certifications, p.Certifications...)
		out.Projects = append(out.Projects, p.Projects...)
		out.Publications = append(out.Publications, p.Publications...)
		out.Awards = append(out.Awards, p.Awards...)
		out.VolunteerExperience = append(out.VolunteerExperience, p.VolunteerExperience...)

		out.Skills.Technical = union(out.Skills.Technical, p.Skills.Technical)
		out.Skills.Soft = union(out.Skills.Soft, p.Skills.Soft)
		out.Skills.Languages = union(out.Skills.Languages, p.Skills.Languages)
		out.Skills.Tools = union(out.Skills.Tools, p.Skills.Tools)
	}

	return Normalize(out)
}

func mergeInfo(dst *PersonalInfo, src PersonalInfo) {
	firstNonEmpty(&dst.FirstName, src.FirstName)
	firstNonEmpty(&dst.LastName, src.LastName)
	firstNonEmpty(&dst.Email, src.Email)
	firstNonEmpty(&dst.Phone, src.Phone)
	firstNonEmpty(&dst.Location, src.Location)
	firstNonEmpty(&dst.LinkedinURL, src.LinkedinURL)
	firstNonEmpty(&dst.GithubURL, src.GithubURL)
	firstNonEmpty(&dst.PortfolioURL, src.PortfolioURL)
}

func firstNonEmpty(dst *string, value string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = value
	}
}

func union(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))

	for _, list := range [][]string{base, extra} {
		for _, item := range list {
			key := strings.ToLower(strings.TrimSpace(item))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
	}

	return out
}
