package handler

import (
	"strconv"

	hierarchyapp "github.com/orgchart/backend/internal/application/hierarchy"
	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/orgchart/backend/internal/interfaces/http/dto"
	"github.com/orgchart/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EmployeeHandler handles employee-related API endpoints
type EmployeeHandler struct {
	BaseHandler
	employees *hierarchyapp.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employees *hierarchyapp.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// CreateEmployeeRequest represents a request to create an employee
type CreateEmployeeRequest struct {
	FirstName    string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName     string  `json:"last_name" binding:"required,min=1,max=100"`
	Email        string  `json:"email" binding:"required,email"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

// UpdateEmployeeRequest represents a request to update an employee
type UpdateEmployeeRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

// AssignEmployeeRequest represents a request to assign an employee to a department
type AssignEmployeeRequest struct {
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

// RegisterRoutes implements router.RouteRegistrar
func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/employees")
	{
		employees.POST("", h.Create)
		employees.GET("", h.List)
		employees.GET("/:id", h.Get)
		employees.PUT("/:id", h.Update)
		employees.DELETE("/:id", h.Delete)
		employees.POST("/:id/assign", h.Assign)
		employees.POST("/:id/unassign", h.Unassign)
	}

	rg.GET("/departments/:id/employees", h.ListByDepartment)
}

// Create handles POST /employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := hierarchyapp.CreateEmployeeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		departmentID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			h.BadRequest(c, "Invalid department ID format")
			return
		}
		input.DepartmentID = &departmentID
	}

	emp, err := h.employees.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, emp)
}

// List handles GET /employees with ?page=, ?page_size= and ?search=
func (h *EmployeeHandler) List(c *gin.Context) {
	filter := shared.Filter{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
		Search:   c.Query("search"),
	}

	page, err := h.employees.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, page)
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}

// Get handles GET /employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	emp, err := h.employees.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, emp)
}

// Update handles PUT /employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employees.Update(c.Request.Context(), hierarchyapp.UpdateEmployeeInput{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, emp)
}

// Delete handles DELETE /employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	if err := h.employees.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Assign handles POST /employees/:id/assign
func (h *EmployeeHandler) Assign(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	var req AssignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		h.BadRequest(c, "Invalid department ID format")
		return
	}

	emp, err := h.employees.Assign(c.Request.Context(), id, departmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, emp)
}

// Unassign handles POST /employees/:id/unassign
func (h *EmployeeHandler) Unassign(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	emp, err := h.employees.Unassign(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, emp)
}

// ListByDepartment handles GET /departments/:id/employees
func (h *EmployeeHandler) ListByDepartment(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	employees, err := h.employees.ListByDepartment(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, employees)
}

func (h *EmployeeHandler) employeeID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// Ensure EmployeeHandler implements RouteRegistrar
var _ router.RouteRegistrar = (*EmployeeHandler)(nil)
