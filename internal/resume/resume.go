// Package resume holds the canonical candidate profile produced by every
// intake path, together with the single normalisation pass they all share.
package resume

// ParsedResumeData is the canonical candidate profile. Every field is always
// present; consumers branch on emptiness, never on absence.
type ParsedResumeData struct {
	PersonalInfo           PersonalInfo    `json:"personalInfo"`
	Summary                string          `json:"summary"`
	TotalYearsOfExperience float64         `json:"totalYearsOfExperience"`
	Experience             []Experience    `json:"experience"`
	Education              []Education     `json:"education"`
	Skills                 Skills          `json:"skills"`
	Certifications         []Certification `json:"certifications"`
	Projects               []Project       `json:"projects"`
	Publications           []Publication   `json:"publications"`
	Awards                 []Award         `json:"awards"`
	VolunteerExperience    []Volunteer     `json:"volunteerExperience"`
}

type PersonalInfo struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	LinkedinURL  string `json:"linkedinUrl"`
	GithubURL    string `json:"githubUrl"`
	PortfolioURL string `json:"portfolioUrl"`
}

// Experience is a single work history entry. StartDate and EndDate are
// YYYY-MM when parseable; EndDate is "Present" for ongoing roles.
type Experience struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	IsCurrent   bool     `json:"isCurrent"`
	Duration    string   `json:"duration"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartYear   string `json:"startYear"`
	EndYear     string `json:"endYear"`
	GPA         string `json:"gpa"`
	Honors      string `json:"honors"`
}

// Skills splits skills into four disjoint buckets.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
	Tools     []string `json:"tools"`
}

type Certification struct {
	Name           string `json:"name"`
	Issuer         string `json:"issuer"`
	Date           string `json:"date"`
	ExpirationDate string `json:"expirationDate"`
	CredentialID   string `json:"credentialId"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
}

type Publication struct {
	Title       string `json:"title"`
	Publication string `json:"publication"`
	Date        string `json:"date"`
	URL         string `json:"url"`
}

type Award struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type Volunteer struct {
	Organization string `json:"organization"`
	Role         string `json:"role"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
}

// Empty returns a profile with every field at its zero-value default.
func Empty() *ParsedResumeData {
	return Normalize(&ParsedResumeData{})
}

// Pooled returns the technical, soft and tool skills in one slice.
// Language skills are not part of the pool.
func (s Skills) Pooled() []string {
	pool := make([]string, 0, len(s.Technical)+len(s.Soft)+len(s.Tools))
	pool = append(pool, s.Technical...)
	pool = append(pool, s.Soft...)
	pool = append(pool, s.Tools...)
	return pool
}
