package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/college-records/internal/api/dto"
	"github.com/spec-kit/college-records/internal/auth"
	"github.com/spec-kit/college-records/internal/domain"
	"github.com/spec-kit/college-records/internal/repository"
	"github.com/spec-kit/college-records/internal/service"
)

// StudentsHandler exposes the student directory endpoints.
type StudentsHandler struct {
	students *service.StudentService
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(studentService *service.StudentService) *StudentsHandler {
	return &StudentsHandler{students: studentService}
}

// List GET /students.
func (h *StudentsHandler) List(c *fiber.Ctx) error {
	filter := parseStudentFilter(c)
	students, err := h.students.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		items = append(items, dto.NewStudentResponse(&students[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /students/:studentId.
func (h *StudentsHandler) Get(c *fiber.Ctx) error {
	student, err := h.students.Get(c.Context(), c.Params("studentId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStudentResponse(student)})
}

// Create POST /students.
func (h *StudentsHandler) Create(c *fiber.Ctx) error {
	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	principal, _ := auth.PrincipalFromContext(c)
	student, err := h.students.Create(c.Context(), principal, studentInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStudentResponse(student)})
}

// Update PUT /students/:studentId.
func (h *StudentsHandler) Update(c *fiber.Ctx) error {
	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	principal, _ := auth.PrincipalFromContext(c)
	student, err := h.students.Update(c.Context(), principal, c.Params("studentId"), studentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStudentResponse(student)})
}

// Delete DELETE /students/:studentId.
func (h *StudentsHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	if err := h.students.Delete(c.Context(), principal, c.Params("studentId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func studentInput(req dto.StudentRequest) service.StudentInput {
	return service.StudentInput{
		StudentID: req.StudentID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Programme: req.Programme,
		Semester:  req.Semester,
		Status:    req.Status,
		GPA:       req.GPA,
	}
}

func parseStudentFilter(c *fiber.Ctx) repository.StudentFilter {
	filter := repository.StudentFilter{}
	if programme := c.Query("programme"); programme != "" {
		filter.Programme = &programme
	}
	if semester := c.Query("semester"); semester != "" {
		if parsed, err := strconv.Atoi(semester); err == nil {
			filter.Semester = &parsed
		}
	}
	if status := c.Query("status"); status != "" {
		s := domain.StudentStatus(status)
		filter.Status = &s
	}
	return filter
}
