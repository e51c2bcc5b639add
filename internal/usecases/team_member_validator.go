package usecases

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"

	"veab-goa.backend/internal/domain/entities"
)

// SocialLinkForm is one row of the socials editor.
type SocialLinkForm struct {
	Platform string `json:"platform" validate:"min=1"`
	URL      string `json:"url" validate:"url"`
}

// TeamMemberForm holds the admin dialog fields as entered. DisplayOrder may
// be a JSON number, a string, null or absent.
type TeamMemberForm struct {
	Name         string           `json:"name" validate:"min=2"`
	Role         string           `json:"role" validate:"min=2"`
	ImageURL     string           `json:"imageUrl" validate:"omitempty,min=5"`
	DataAIHint   string           `json:"dataAiHint"`
	Intro        string           `json:"intro" validate:"min=10"`
	Profession   string           `json:"profession" validate:"min=3"`
	Socials      []SocialLinkForm `json:"socials" validate:"dive"`
	DisplayOrder any              `json:"displayOrder"`
}

// TeamMemberValues is a validated and normalized form.
type TeamMemberValues struct {
	Name         string
	Role         string
	Image        entities.ImageRef
	DataAIHint   string
	Intro        string
	Profession   string
	Socials      []entities.SocialLink
	DisplayOrder null.Int
}

var teamMemberMessages = fieldMessages{
	"name.min":             "Name must be at least 2 characters.",
	"role.min":             "Role must be at least 2 characters.",
	"imageUrl.min":         "Image URL (path in Storage) must be at least 5 characters. E.g., team-images/your-image.png",
	"intro.min":            "Introduction must be at least 10 characters.",
	"profession.min":       "Profession must be at least 3 characters.",
	"socials.platform.min": "Platform name cannot be empty",
	"socials.url.url":      "Social URL must be a valid URL (e.g., https://... or mailto:...)",
}

// ValidateTeamMember trims and checks a raw form. It has no side effects.
func ValidateTeamMember(form TeamMemberForm) (*TeamMemberValues, error) {
	trimmed := TeamMemberForm{
		Name:         strings.TrimSpace(form.Name),
		Role:         strings.TrimSpace(form.Role),
		ImageURL:     strings.TrimSpace(form.ImageURL),
		DataAIHint:   strings.TrimSpace(form.DataAIHint),
		Intro:        strings.TrimSpace(form.Intro),
		Profession:   strings.TrimSpace(form.Profession),
		DisplayOrder: form.DisplayOrder,
	}
	for _, s := range form.Socials {
		trimmed.Socials = append(trimmed.Socials, SocialLinkForm{
			Platform: strings.TrimSpace(s.Platform),
			URL:      strings.TrimSpace(s.URL),
		})
	}

	if verr := checkForm(trimmed, teamMemberMessages); verr != nil {
		return nil, verr
	}

	socials := make([]entities.SocialLink, 0, len(trimmed.Socials))
	for _, s := range trimmed.Socials {
		socials = append(socials, entities.SocialLink{Platform: s.Platform, URL: s.URL})
	}
	return &TeamMemberValues{
		Name:         trimmed.Name,
		Role:         trimmed.Role,
		Image:        entities.ParseImageRef(trimmed.ImageURL),
		DataAIHint:   trimmed.DataAIHint,
		Intro:        trimmed.Intro,
		Profession:   trimmed.Profession,
		Socials:      socials,
		DisplayOrder: NormalizeDisplayOrder(trimmed.DisplayOrder),
	}, nil
}

// Display orders outside the int32 range are treated as unset.
const (
	minDisplayOrder = math.MinInt32
	maxDisplayOrder = math.MaxInt32
)

// NormalizeDisplayOrder coerces a raw display order. Anything that is not a
// finite number in the int32 range becomes unset; fractions are truncated.
func NormalizeDisplayOrder(raw any) null.Int {
	switch v := raw.(type) {
	case nil:
		return null.Int{}
	case int:
		return orderFromInt(int64(v))
	case int64:
		return orderFromInt(v)
	case float64:
		return orderFromFloat(v)
	case json.Number:
		return orderFromString(v.String())
	case string:
		return orderFromString(v)
	case null.Int:
		if !v.Valid {
			return v
		}
		return orderFromInt(int64(v.Int))
	default:
		return null.Int{}
	}
}

func orderFromString(s string) null.Int {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Int{}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return orderFromInt(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return null.Int{}
	}
	return orderFromFloat(f)
}

func orderFromFloat(f float64) null.Int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return null.Int{}
	}
	f = math.Trunc(f)
	if f < minDisplayOrder || f > maxDisplayOrder {
		return null.Int{}
	}
	return null.IntFrom(int(f))
}

func orderFromInt(n int64) null.Int {
	if n < minDisplayOrder || n > maxDisplayOrder {
		return null.Int{}
	}
	return null.IntFrom(int(n))
}
