package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/resume-matcher/internal/resume"
)

// Vocabulary is the fixed list of skills the deterministic extractor looks for.
var Vocabulary = []string{
	"JavaScript", "TypeScript", "Python", "Java", "React", "Node.js", "Angular", "Vue",
	"SQL", "MongoDB", "PostgreSQL", "AWS", "Docker", "Kubernetes", "Git", "Agile",
	"Machine Learning", "AI", "DevOps", "CI/CD", "REST API", "GraphQL", "HTML", "CSS",
	"C++", "C#", "Go", "Ruby", "PHP", "Swift", "Kotlin", "Django", "Flask", "Express",
	"TensorFlow", "PyTorch", "Pandas", "NumPy", "Redis", "Elasticsearch", "Terraform",
	"Next.js", "Nest.js", "Spring Boot", "FastAPI", "Rust", "Scala", "MATLAB",
	"Azure", "GCP", "Heroku", "Vercel", "Netlify", "Jenkins", "CircleCI", "GitHub Actions",
	"Figma", "Sketch", "Adobe XD", "Photoshop", "Illustrator", "Jira", "Confluence",
	"Scrum", "Kanban", "TDD", "BDD", "Microservices", "REST", "SOAP", "gRPC",
}

var (
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe    = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubRe   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
	yearsRe    = regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of)?\s*experience`)
	nameRe     = regexp.MustCompile(`(?m)^([A-Z][a-z]+)[ \t]+([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)?)`)

	summaryRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Summary|Profile|About|Objective)\s*:?\s*([^\n]{50,500})`),
		regexp.MustCompile(`(?m)^([A-Z][^.!?]*(?:[.!?][^.!?]*){1,3})`),
	}
)

// Regex is the network-free extractor. It only fills contact details,
// vocabulary skills, a years-of-experience hint, a summary and a name.
type Regex struct {
	vocabulary []string
}

func NewRegex() *Regex {
	return &Regex{vocabulary: Vocabulary}
}

func (r *Regex) Name() string { return "regex" }

// Extract never returns an error.
func (r *Regex) Extract(_ context.Context, text string) (*resume.ParsedResumeData, error) {
	p := &resume.ParsedResumeData{}

	p.PersonalInfo.Email = emailRe.FindString(text)
	p.PersonalInfo.Phone = phoneRe.FindString(text)

	if m := linkedinRe.FindString(text); m != "" {
		p.PersonalInfo.LinkedinURL = "https://" + m
	}
	if m := githubRe.FindString(text); m != "" {
		p.PersonalInfo.GithubURL = "https://" + m
	}

	p.Skills.Technical = r.matchSkills(text)

	if m := yearsRe.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			p.TotalYearsOfExperience = float64(years)
		}
	}

	for _, re := range summaryRes {
		if m := re.FindStringSubmatch(text); m != nil {
			p.Summary = strings.TrimSpace(m[1])
			break
		}
	}

	if m := nameRe.FindStringSubmatch(text); m != nil {
		p.PersonalInfo.FirstName = m[1]
		p.PersonalInfo.LastName = m[2]
	}

	return resume.Normalize(p), nil
}

func (r *Regex) matchSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, skill := range r.vocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	return found
}
