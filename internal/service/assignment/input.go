package assignment

import (
	"fmt"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
	"github.com/heartmarshall/icebreaker-backend/pkg/textclean"
)

// AssignMembersInput holds the parameters for a direct member assignment.
// AvailableRoles is optional; the role catalog is used when it is empty.
type AssignMembersInput struct {
	Members        []domain.Member
	AvailableRoles []domain.Role
}

// Validate checks all fields and collects all errors.
func (i AssignMembersInput) Validate() error {
	if len(i.Members) == 0 {
		return domain.NewValidationErrors(domain.CodeInvalidInput, []domain.FieldError{
			{Field: "members", Message: "Members array is required and must not be empty"},
		})
	}

	var errs []domain.FieldError
	for n, m := range i.Members {
		field := func(name string) string { return fmt.Sprintf("members[%d].%s", n, name) }

		if m.ID == "" || m.Name == "" {
			errs = append(errs, domain.FieldError{Field: field("id"), Message: "Each member must have an id and name"})
		}
		if m.Birthday == "" {
			errs = append(errs, domain.FieldError{Field: field("birthday"), Message: "Each member must have a birthday"})
		}
		if m.Age < 1 || m.Age > 100 {
			errs = append(errs, domain.FieldError{Field: field("age"), Message: "Member age must be between 1 and 100"})
		}
		if m.Hometown == "" {
			errs = append(errs, domain.FieldError{Field: field("hometown"), Message: "Each member must have a hometown"})
		}
		if m.Organization == "" {
			errs = append(errs, domain.FieldError{Field: field("organization"), Message: "Each member must have an organization"})
		}
		if m.Motivation == "" {
			errs = append(errs, domain.FieldError{Field: field("motivation"), Message: "Each member must have a motivation"})
		}
	}

	for n, r := range i.AvailableRoles {
		field := func(name string) string { return fmt.Sprintf("availableRoles[%d].%s", n, name) }

		if r.ID == "" || r.Title == "" {
			errs = append(errs, domain.FieldError{Field: field("id"), Message: "Each role must have an id and title"})
		}
		if r.EnglishTitle == "" {
			errs = append(errs, domain.FieldError{Field: field("englishTitle"), Message: "Each role must have an englishTitle"})
		}
		if r.Description == "" {
			errs = append(errs, domain.FieldError{Field: field("description"), Message: "Each role must have a description"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(domain.CodeValidation, errs)
	}
	return nil
}

// clean returns a copy with markup stripped from every free-text field.
func (i AssignMembersInput) clean() AssignMembersInput {
	out := AssignMembersInput{
		Members:        make([]domain.Member, len(i.Members)),
		AvailableRoles: make([]domain.Role, len(i.AvailableRoles)),
	}
	for n, m := range i.Members {
		out.Members[n] = domain.Member{
			ID:           textclean.Clean(m.ID),
			Name:         textclean.Clean(m.Name),
			Birthday:     textclean.Clean(m.Birthday),
			Age:          m.Age,
			Hometown:     textclean.Clean(m.Hometown),
			Organization: textclean.Clean(m.Organization),
			Motivation:   textclean.Clean(m.Motivation),
		}
	}
	for n, r := range i.AvailableRoles {
		out.AvailableRoles[n] = domain.Role{
			ID:           textclean.Clean(r.ID),
			Title:        textclean.Clean(r.Title),
			EnglishTitle: textclean.Clean(r.EnglishTitle),
			Description:  textclean.Clean(r.Description),
		}
	}
	return out
}

func (i AssignMembersInput) roles() []domain.Role {
	if len(i.AvailableRoles) == 0 {
		return domain.RoleCatalog()
	}
	return i.AvailableRoles
}
