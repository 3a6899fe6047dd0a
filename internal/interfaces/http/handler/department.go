package handler

import (
	hierarchyapp "github.com/orgchart/backend/internal/application/hierarchy"
	"github.com/orgchart/backend/internal/interfaces/http/dto"
	"github.com/orgchart/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DepartmentHandler handles department-related API endpoints
type DepartmentHandler struct {
	BaseHandler
	engine hierarchyapp.Engine
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(engine hierarchyapp.Engine) *DepartmentHandler {
	return &DepartmentHandler{engine: engine}
}

// CreateDepartmentRequest represents a request to create a department
type CreateDepartmentRequest struct {
	Name     string  `json:"name" binding:"required,min=1"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// UpdateDepartmentRequest represents a request to rename a department
type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=1"`
}

// MoveDepartmentRequest represents a request to re-parent a department.
// A null parent_id makes the department a root.
type MoveDepartmentRequest struct {
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// RegisterRoutes implements router.RouteRegistrar
func (h *DepartmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	departments := rg.Group("/departments")
	{
		departments.POST("", h.Create)
		departments.GET("", h.List)
		departments.GET("/tree", h.Tree)
		departments.GET("/:id", h.Get)
		departments.PUT("/:id", h.Update)
		departments.DELETE("/:id", h.Delete)
		departments.POST("/:id/move", h.Move)
		departments.GET("/:id/children", h.Children)
		departments.GET("/:id/parent", h.Parent)
		departments.GET("/:id/descendants", h.Descendants)
		departments.GET("/:id/ancestors", h.Ancestors)
	}
}

// Create handles POST /departments
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := hierarchyapp.CreateDepartmentInput{Name: req.Name}
	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			h.BadRequest(c, "Invalid parent ID format")
			return
		}
		input.ParentID = &parentID
	}

	dept, err := h.engine.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, dept)
}

// List handles GET /departments with optional ?search= filtering
func (h *DepartmentHandler) List(c *gin.Context) {
	var (
		departments []hierarchyapp.DepartmentDTO
		err         error
	)
	if search := c.Query("search"); search != "" {
		departments, err = h.engine.SearchByName(c.Request.Context(), search)
	} else {
		departments, err = h.engine.List(c.Request.Context())
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, departments)
}

// Tree handles GET /departments/tree
func (h *DepartmentHandler) Tree(c *gin.Context) {
	departments, err := h.engine.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, hierarchyapp.BuildDepartmentTree(departments))
}

// Get handles GET /departments/:id
func (h *DepartmentHandler) Get(c *gin.Context) {
	id, ok := h.departmentID(c)
	if !ok {
		return
	}

	dept, err := h.engine.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dept)
}

// Update handles PUT /departments/:id (rename only; moves go through Move)
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := h.departmentID(c)
	if !ok {
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dept, err := h.engine.Update(c.Request.Context(), hierarchyapp.UpdateDepartmentInput{
		ID:   id,
		Name: &req.Name,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dept)
}

// Move handles POST /departments/:id/move
func (h *DepartmentHandler) Move(c *gin.Context) {
	id, ok := h.departmentID(c)
	if !ok {
		return
	}

	var req MoveDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := hierarchyapp.UpdateDepartmentInput{ID: id, ChangeParent: true}
	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			h.BadRequest(c, "Invalid parent ID format")
			return
		}
		input.ParentID = &parentID
	}

	dept, err := h.engine.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dept)
}

// Delete handles DELETE /departments/:id
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := h.departmentID(c)
	if !ok {
		return
	}

	if err := h.engine.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Children handles GET /departments/:id/children
func (h *DepartmentHandler) Children(c *gin.Context) {
	id, ok := h.departmentID(c)
	if !ok {
		return
	}

	children, err := h.engine.Children(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, children)
}

// Parent handles GET /departments/:id/parent
func (h *DepartmentHandler) Parent(c *gin.Context) {
	id, ok := h.departmentID(c)
	if !ok {
		return
	}

	parent, err := h.engine.Parent(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, parent)
}

// Descendants handles GET /departments/:id/descendants
func (h *DepartmentHandler) Descendants(c *gin.Context) {
	id, ok := h.departmentID(c)
	if !ok {
		return
	}

	descendants, err := h.engine.Descendants(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, descendants)
}

// Ancestors handles GET /departments/:id/ancestors
func (h *DepartmentHandler) Ancestors(c *gin.Context) {
	id, ok := h.departmentID(c)
	if !ok {
		return
	}

	ancestors, err := h.engine.Ancestors(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, ancestors)
}

func (h *DepartmentHandler) departmentID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid department ID format")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid department ID format")
		return uuid.Nil, false
	}
	return id, true
}

// Ensure DepartmentHandler implements RouteRegistrar
var _ router.RouteRegistrar = (*DepartmentHandler)(nil)
