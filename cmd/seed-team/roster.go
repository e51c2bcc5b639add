package main

import "veab-goa.backend/internal/usecases"

var defaultRoster = []usecases.TeamMemberForm{
	{
		Name:       "Chandrakant Shinde",
		Role:       "President",
		ImageURL:   "team-images/chandrakant_shinde.png",
		DataAIHint: "man portrait",
		Intro:      "Leading VEAB Goa with a passion for environmental conservation and community engagement.",
		Profession: "Environmental Leader",
		Socials: []usecases.SocialLinkForm{
			{Platform: "Mail", URL: "mailto:president@veabgoa.org"},
			{Platform: "LinkedIn", URL: "https://linkedin.com/in/chandrakantshinde"},
		},
		DisplayOrder: 1,
	},
	{
		Name:       "Sangam Patil",
		Role:       "Vice President",
		ImageURL:   "team-images/sangam_patil.jpg",
		DataAIHint: "person smiling",
		Intro:      "Dedicated to wildlife protection and ecological research, supporting VEAB's vision.",
		Profession: "Wildlife Biologist",
		Socials: []usecases.SocialLinkForm{
			{Platform: "Mail", URL: "mailto:vp@veabgoa.org"},
			{Platform: "Twitter", URL: "https://twitter.com/sangampatil"},
		},
		DisplayOrder: 2,
	},
	{
		Name:       "Deepak Gawas",
		Role:       "Secretary",
		ImageURL:   "team-images/deepak_gawas.png",
		DataAIHint: "man outdoors",
		Intro:      "Manages VEAB's operations and outreach, fostering community involvement in conservation.",
		Profession: "Community Organizer",
		Socials: []usecases.SocialLinkForm{
			{Platform: "Mail", URL: "mailto:secretary@veabgoa.org"},
		},
		DisplayOrder: 3,
	},
	{
		Name:       "Ramesh Zarmekar",
		Role:       "Treasurer",
		ImageURL:   "team-images/ramesh_zarmekar.png",
		DataAIHint: "person professional",
		Intro:      "Oversees VEAB's financial health, ensuring resources are effectively used for conservation projects.",
		Profession: "Finance Manager",
		Socials: []usecases.SocialLinkForm{
			{Platform: "Mail", URL: "mailto:treasurer@veabgoa.org"},
		},
		DisplayOrder: 4,
	},
}
