package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeProfile() *Profile {
	p := NewProfile("sam@example.com")
	p.Name = "Sam"
	p.Age = 29
	p.Gender = "male"
	p.LookingFor = "female"
	p.Location = "Oslo"
	p.Bio = "Hiker, coffee nerd."
	p.Interests = []string{"hiking", "coffee"}
	return p
}

func TestIsComplete(t *testing.T) {
	t.Run("all required fields set", func(t *testing.T) {
		assert.True(t, completeProfile().IsComplete())
	})

	t.Run("each missing required field breaks completeness", func(t *testing.T) {
		mutations := map[string]func(*Profile){
			"name":       func(p *Profile) { p.Name = "" },
			"age":        func(p *Profile) { p.Age = 0 },
			"gender":     func(p *Profile) { p.Gender = "" },
			"lookingFor": func(p *Profile) { p.LookingFor = "" },
			"location":   func(p *Profile) { p.Location = "" },
			"bio":        func(p *Profile) { p.Bio = "" },
		}
		for field, mutate := range mutations {
			p := completeProfile()
			mutate(p)
			assert.False(t, p.IsComplete(), "profile missing %s must be incomplete", field)
		}
	})

	t.Run("optional fields do not gate completeness", func(t *testing.T) {
		p := completeProfile()
		p.Occupation = ""
		p.Education = ""
		p.Personality = nil
		assert.True(t, p.IsComplete())
	})

	t.Run("nil profile is incomplete", func(t *testing.T) {
		var p *Profile
		assert.False(t, p.IsComplete())
	})
}

func TestClone(t *testing.T) {
	p := completeProfile()
	p.Personality = map[string]string{"energyLevel": "High"}

	c := p.Clone()
	require.Empty(t, cmp.Diff(p, c))

	c.Interests[0] = "skydiving"
	c.Personality["energyLevel"] = "Low"
	assert.Equal(t, "hiking", p.Interests[0])
	assert.Equal(t, "High", p.Personality["energyLevel"])
}

func TestCacheRoundTrip(t *testing.T) {
	p := completeProfile()
	p.Languages = []string{"norwegian", "english", "german"}
	p.FirstDateIdeas = []string{"coffee", "museum"}
	p.Photos = []string{"https://cdn.example.com/1.jpg"}
	p.Personality = map[string]string{"loveLanguage": "Quality Time"}
	p.IdealPartner = "Someone curious"
	p.Status = StatusActive

	payload, err := json.Marshal(p)
	require.NoError(t, err)

	var back Profile
	require.NoError(t, json.Unmarshal(payload, &back))

	assert.Empty(t, cmp.Diff(p, &back), "round-trip must preserve every field, list order included")
}

func TestApplyPatch(t *testing.T) {
	t.Run("nil fields leave profile untouched", func(t *testing.T) {
		p := completeProfile()
		before := p.Clone()
		p.ApplyPatch(&ProfilePatch{})
		assert.Empty(t, cmp.Diff(before, p))
	})

	t.Run("scalar and list updates", func(t *testing.T) {
		p := completeProfile()
		bio := "New bio"
		hobbies := []string{"chess", "running", "chess"}
		p.ApplyPatch(&ProfilePatch{Bio: &bio, Hobbies: &hobbies})

		assert.Equal(t, "New bio", p.Bio)
		assert.Equal(t, []string{"chess", "running"}, p.Hobbies, "duplicates dropped, order preserved")
		assert.Equal(t, "Sam", p.Name, "untouched fields survive")
	})

	t.Run("personality replaces wholesale", func(t *testing.T) {
		p := completeProfile()
		p.Personality = map[string]string{"old": "value"}
		answers := map[string]string{"decisionMaking": "Intuitive"}
		p.ApplyPatch(&ProfilePatch{Personality: &answers})
		assert.Equal(t, map[string]string{"decisionMaking": "Intuitive"}, p.Personality)
	})
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, (&ProfilePatch{}).IsEmpty())
	var nilPatch *ProfilePatch
	assert.True(t, nilPatch.IsEmpty())

	name := "Sam"
	assert.False(t, (&ProfilePatch{Name: &name}).IsEmpty())
}
