package entities

import (
	"sort"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// SocialLink is one entry of a member's ordered social profile list.
type SocialLink struct {
	Platform string `json:"platform" bson:"platform"`
	URL      string `json:"url" bson:"url"`
}

// TeamMember is a person shown on the public team page.
type TeamMember struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Profession   string       `json:"profession"`
	Intro        string       `json:"intro"`
	Image        ImageRef     `json:"imageUrl"`
	DataAIHint   string       `json:"dataAiHint,omitempty"`
	Socials      []SocialLink `json:"socials"`
	DisplayOrder null.Int     `json:"displayOrder"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// TeamMemberView pairs a member with its resolved display image. HasImage is
// false when the display URL is a resolution sentinel.
type TeamMemberView struct {
	*TeamMember
	DisplayImageURL string `json:"displayImageUrl"`
	HasImage        bool   `json:"hasImage"`
}

func NewTeamMemberView(member *TeamMember, displayURL string) *TeamMemberView {
	return &TeamMemberView{
		TeamMember:      member,
		DisplayImageURL: displayURL,
		HasImage:        !IsImageSentinel(displayURL),
	}
}

// LessTeamMember orders by displayOrder ascending with unordered members
// last, then by name, then by id.
func LessTeamMember(a, b *TeamMember) bool {
	if a.DisplayOrder.Valid != b.DisplayOrder.Valid {
		return a.DisplayOrder.Valid
	}
	if a.DisplayOrder.Valid && a.DisplayOrder.Int != b.DisplayOrder.Int {
		return a.DisplayOrder.Int < b.DisplayOrder.Int
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// SortTeamMembers sorts members in place using LessTeamMember.
func SortTeamMembers(members []*TeamMember) {
	sort.SliceStable(members, func(i, j int) bool {
		return LessTeamMember(members[i], members[j])
	})
}
