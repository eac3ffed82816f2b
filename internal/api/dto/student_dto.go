package dto

import "github.com/architdhariwal/sms-backend/internal/domain"

// StudentRegisterRequest payload for new students.
type StudentRegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	AdmissionNumber string `json:"admissionNumber" validate:"required"`
	Class           string `json:"class" validate:"required"`
	Section         string `json:"section" validate:"required"`
	Gender          string `json:"gender" validate:"required"`
	MobileNumber    string `json:"mobileNumber" validate:"required"`
	Address         string `json:"address" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
}

// Student converts the request into a domain value without the password.
func (r StudentRegisterRequest) Student() domain.Student {
	return domain.Student{
		Name:            r.Name,
		AdmissionNumber: r.AdmissionNumber,
		Class:           r.Class,
		Section:         r.Section,
		Gender:          r.Gender,
		MobileNumber:    r.MobileNumber,
		Address:         r.Address,
	}
}

// StudentUpdateRequest is a partial update; nil fields are left untouched.
type StudentUpdateRequest struct {
	Name         *string `json:"name" validate:"omitnil,min=1"`
	Class        *string `json:"class" validate:"omitnil,min=1"`
	Section      *string `json:"section" validate:"omitnil,min=1"`
	Gender       *string `json:"gender" validate:"omitnil,min=1"`
	MobileNumber *string `json:"mobileNumber" validate:"omitnil,min=1"`
	Address      *string `json:"address" validate:"omitnil,min=1"`
}

// Patch returns the provided fields keyed by their stored names.
func (r StudentUpdateRequest) Patch() domain.Patch {
	p := domain.Patch{}
	domain.Set(p, "name", r.Name)
	domain.Set(p, "class", r.Class)
	domain.Set(p, "section", r.Section)
	domain.Set(p, "gender", r.Gender)
	domain.Set(p, "mobileNumber", r.MobileNumber)
	domain.Set(p, "address", r.Address)
	return p
}

// StudentResponse is the public view of a student; the credential hash never leaves the service.
type StudentResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AdmissionNumber string `json:"admissionNumber"`
	Class           string `json:"class"`
	Section         string `json:"section"`
	Gender          string `json:"gender"`
	MobileNumber    string `json:"mobileNumber"`
	Address         string `json:"address"`
}

// NewStudentResponse shapes a domain student.
func NewStudentResponse(s domain.Student) StudentResponse {
	return StudentResponse{
		ID:              s.ID,
		Name:            s.Name,
		AdmissionNumber: s.AdmissionNumber,
		Class:           s.Class,
		Section:         s.Section,
		Gender:          s.Gender,
		MobileNumber:    s.MobileNumber,
		Address:         s.Address,
	}
}

// NewStudentListResponse shapes a list of students.
func NewStudentListResponse(students []domain.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}
