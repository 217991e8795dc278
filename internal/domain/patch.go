package domain

// ProfilePatch is a partial update to a profile. Nil fields are left
// untouched; non-nil list fields replace the existing list wholesale.
type ProfilePatch struct {
	Name              *string `json:"name,omitempty"`
	Age               *int    `json:"age,omitempty"`
	Gender            *string `json:"gender,omitempty"`
	LookingFor        *string `json:"lookingFor,omitempty"`
	Location          *string `json:"location,omitempty"`
	Occupation        *string `json:"occupation,omitempty"`
	Education         *string `json:"education,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	RelationshipGoals *string `json:"relationshipGoals,omitempty"`
	Smoking           *string `json:"smoking,omitempty"`
	Drinking          *string `json:"drinking,omitempty"`

	Interests      *[]string `json:"interests,omitempty"`
	Hobbies        *[]string `json:"hobbies,omitempty"`
	Languages      *[]string `json:"languages,omitempty"`
	FirstDateIdeas *[]string `json:"firstDateIdeas,omitempty"`
	Photos         *[]string `json:"photos,omitempty"`

	Personality  *map[string]string `json:"personality,omitempty"`
	IdealPartner *string            `json:"idealPartner,omitempty"`
}

// IsEmpty reports whether the patch carries no changes.
func (pt *ProfilePatch) IsEmpty() bool {
	return pt == nil || *pt == (ProfilePatch{})
}

// ApplyPatch merges the patch into the profile. List fields are
// deduplicated preserving first-occurrence order.
func (p *Profile) ApplyPatch(pt *ProfilePatch) {
	if pt == nil {
		return
	}
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Age != nil {
		p.Age = *pt.Age
	}
	if pt.Gender != nil {
		p.Gender = *pt.Gender
	}
	if pt.LookingFor != nil {
		p.LookingFor = *pt.LookingFor
	}
	if pt.Location != nil {
		p.Location = *pt.Location
	}
	if pt.Occupation != nil {
		p.Occupation = *pt.Occupation
	}
	if pt.Education != nil {
		p.Education = *pt.Education
	}
	if pt.Bio != nil {
		p.Bio = *pt.Bio
	}
	if pt.RelationshipGoals != nil {
		p.RelationshipGoals = *pt.RelationshipGoals
	}
	if pt.Smoking != nil {
		p.Smoking = *pt.Smoking
	}
	if pt.Drinking != nil {
		p.Drinking = *pt.Drinking
	}
	if pt.Interests != nil {
		p.Interests = dedup(*pt.Interests)
	}
	if pt.Hobbies != nil {
		p.Hobbies = dedup(*pt.Hobbies)
	}
	if pt.Languages != nil {
		p.Languages = dedup(*pt.Languages)
	}
	if pt.FirstDateIdeas != nil {
		p.FirstDateIdeas = dedup(*pt.FirstDateIdeas)
	}
	if pt.Photos != nil {
		p.Photos = dedup(*pt.Photos)
	}
	if pt.Personality != nil {
		p.Personality = make(map[string]string, len(*pt.Personality))
		for k, v := range *pt.Personality {
			p.Personality[k] = v
		}
	}
	if pt.IdealPartner != nil {
		p.IdealPartner = *pt.IdealPartner
	}
}
