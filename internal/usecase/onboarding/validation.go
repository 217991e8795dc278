package onboarding

import (
	"github.com/go-playground/validator/v10"

	"github.com/matchbook-app/matchbook-client/internal/domain"
)

var validate = validator.New()

// ProfileInput carries the onboarding form fields. Age arrives as an
// integer; the presentation layer parses the text input.
type ProfileInput struct {
	Name              string   `json:"name"`
	Age               int      `json:"age"`
	Gender            string   `json:"gender"`
	LookingFor        string   `json:"lookingFor"`
	Location          string   `json:"location"`
	Occupation        string   `json:"occupation"`
	Education         string   `json:"education"`
	Bio               string   `json:"bio"`
	RelationshipGoals string   `json:"relationshipGoals"`
	Smoking           string   `json:"smoking"`
	Drinking          string   `json:"drinking"`
	Interests         []string `json:"interests"`
	Hobbies           []string `json:"hobbies"`
	Languages         []string `json:"languages"`
	FirstDateIdeas    []string `json:"firstDateIdeas"`
	Photos            []string `json:"photos"`
}

// validateEmail checks syntax only; existence is the remote service's call.
func validateEmail(email string) domain.ValidationErrors {
	if email == "" {
		return domain.ValidationErrors{"email": "Email is required"}
	}
	if err := validate.Var(email, "email"); err != nil {
		return domain.ValidationErrors{"email": "Please enter a valid email address"}
	}
	return nil
}

func validatePassword(password, confirm string, isNewAccount bool) domain.ValidationErrors {
	errs := domain.ValidationErrors{}
	if password == "" {
		errs["password"] = "Password is required"
	}
	if isNewAccount && password != confirm {
		errs["confirmPassword"] = "Passwords do not match"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateProfileInput enforces the full-onboarding form rules. Messages
// match what the profile screens display inline.
func validateProfileInput(in *ProfileInput) domain.ValidationErrors {
	errs := domain.ValidationErrors{}

	if in.Name == "" {
		errs["name"] = "Name is required"
	}
	if in.Age == 0 {
		errs["age"] = "Age is required"
	} else if err := validate.Var(in.Age, "min=18,max=120"); err != nil {
		errs["age"] = "Age must be between 18 and 120"
	}
	if in.Gender == "" {
		errs["gender"] = "Gender is required"
	}
	if in.LookingFor == "" {
		errs["lookingFor"] = "Looking for is required"
	}
	if in.Location == "" {
		errs["location"] = "Location is required"
	}
	if in.Bio == "" {
		errs["bio"] = "Bio is required"
	}
	if in.RelationshipGoals == "" {
		errs["relationshipGoals"] = "Relationship goals are required"
	}
	if in.Smoking == "" {
		errs["smoking"] = "Smoking preference is required"
	}
	if in.Drinking == "" {
		errs["drinking"] = "Drinking preference is required"
	}
	if len(in.Interests) == 0 {
		errs["interests"] = "At least one interest is required"
	}
	if len(in.Hobbies) == 0 {
		errs["hobbies"] = "At least one hobby is required"
	}
	if len(in.Languages) == 0 {
		errs["languages"] = "At least one language is required"
	}
	if len(in.FirstDateIdeas) == 0 {
		errs["firstDateIdeas"] = "At least one first date idea is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
