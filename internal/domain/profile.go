package domain

// ProfileStatus tracks where a profile sits in its lifecycle on the
// matching service.
type ProfileStatus string

const (
	StatusIncomplete ProfileStatus = "incomplete"
	StatusPending    ProfileStatus = "pending"
	StatusActive     ProfileStatus = "active"
)

// Profile is the user's dating profile. Email is the unique key; ID is
// assigned by the remote service once the profile has been persisted.
type Profile struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`

	Name              string `json:"name"`
	Age               int    `json:"age"`
	Gender            string `json:"gender"`
	LookingFor        string `json:"lookingFor"`
	Location          string `json:"location"`
	Occupation        string `json:"occupation"`
	Education         string `json:"education"`
	Bio               string `json:"bio"`
	RelationshipGoals string `json:"relationshipGoals"`
	Smoking           string `json:"smoking"`
	Drinking          string `json:"drinking"`

	Interests      []string `json:"interests"`
	Hobbies        []string `json:"hobbies"`
	Languages      []string `json:"languages"`
	FirstDateIdeas []string `json:"firstDateIdeas"`
	Photos         []string `json:"photos"`

	Personality  map[string]string `json:"personality,omitempty"`
	IdealPartner string            `json:"idealPartner,omitempty"`

	Status ProfileStatus `json:"status"`
}

// NewProfile returns an empty profile for the given email. Collections are
// initialized so cache round-trips keep them as empty lists rather than null.
func NewProfile(email string) *Profile {
	return &Profile{
		Email:          email,
		Interests:      []string{},
		Hobbies:        []string{},
		Languages:      []string{},
		FirstDateIdeas: []string{},
		Photos:         []string{},
		Personality:    map[string]string{},
		Status:         StatusIncomplete,
	}
}

// IsComplete reports whether the profile satisfies the onboarding
// completeness invariant: name, age, gender, lookingFor, location and bio
// all set. Completeness gates the transition to the waiting screen.
func (p *Profile) IsComplete() bool {
	if p == nil {
		return false
	}
	return p.Name != "" &&
		p.Age > 0 &&
		p.Gender != "" &&
		p.LookingFor != "" &&
		p.Location != "" &&
		p.Bio != ""
}

// Clone returns a deep copy. The synchronization engine snapshots profiles
// before optimistic writes, so shared slices or maps would break rollback.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Interests = cloneList(p.Interests)
	c.Hobbies = cloneList(p.Hobbies)
	c.Languages = cloneList(p.Languages)
	c.FirstDateIdeas = cloneList(p.FirstDateIdeas)
	c.Photos = cloneList(p.Photos)
	if p.Personality != nil {
		c.Personality = make(map[string]string, len(p.Personality))
		for k, v := range p.Personality {
			c.Personality[k] = v
		}
	}
	return &c
}

func cloneList(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

// dedup preserves first-occurrence order and drops repeats. Collection
// fields disallow duplicates per entry.
func dedup(src []string) []string {
	if src == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(src))
	out := make([]string, 0, len(src))
	for _, v := range src {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
