package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/architdhariwal/sms-backend/internal/api/dto"
	"github.com/architdhariwal/sms-backend/internal/domain"
	"github.com/architdhariwal/sms-backend/internal/service"
)

const (
	studentResource  = "Student"
	studentDuplicate = "Admission number already exists"
)

// StudentsHandler exposes registration and student CRUD.
type StudentsHandler struct {
	auth     *service.AuthService
	students Records[domain.Student]
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(authService *service.AuthService, students Records[domain.Student]) *StudentsHandler {
	return &StudentsHandler{auth: authService, students: students}
}

// Register handles POST /api/students/register.
func (h *StudentsHandler) Register(c *fiber.Ctx) error {
	var req dto.StudentRegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	student, err := h.auth.RegisterStudent(c.UserContext(), req.Student(), req.Password)
	if err != nil {
		return repoError(err, studentResource, studentDuplicate)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"data":    fiber.Map{"student": dto.NewStudentResponse(student)},
	})
}

// List handles GET /api/students.
func (h *StudentsHandler) List(c *fiber.Ctx) error {
	students, err := h.students.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStudentListResponse(students))
}

// Get handles GET /api/students/:admissionNumber.
func (h *StudentsHandler) Get(c *fiber.Ctx) error {
	student, err := h.students.FindByKey(c.UserContext(), c.Params("admissionNumber"))
	if err != nil {
		return repoError(err, studentResource, studentDuplicate)
	}
	return c.JSON(dto.NewStudentResponse(student))
}

// Update handles PUT /api/students/:admissionNumber.
func (h *StudentsHandler) Update(c *fiber.Ctx) error {
	var req dto.StudentUpdateRequest
	if err := bindPatch(c, &req); err != nil {
		return err
	}

	student, err := h.students.Update(c.UserContext(), c.Params("admissionNumber"), req.Patch())
	if err != nil {
		return repoError(err, studentResource, studentDuplicate)
	}
	return c.JSON(fiber.Map{
		"message": "Student updated successfully",
		"student": dto.NewStudentResponse(student),
	})
}

// Delete handles DELETE /api/students/:admissionNumber.
func (h *StudentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.students.Delete(c.UserContext(), c.Params("admissionNumber")); err != nil {
		return repoError(err, studentResource, studentDuplicate)
	}
	return c.JSON(dto.MessageResponse{Message: "Student deleted successfully"})
}
