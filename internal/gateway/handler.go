package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-gpt-api/internal/shared/server/respond"
)

// Handler wires the gateway HTTP endpoints to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the gateway routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/tables", h.listTables)
	r.GET("/schema", h.getSchema)
	r.POST("/query", h.query)
	r.POST("/insert", h.insert)
	r.POST("/update", h.update)
	r.POST("/delete", h.delete)
	r.POST("/execute-sql", h.executeSQL)
	r.POST("/create-table", h.createTable)
}

func (h *Handler) listTables(c *gin.Context) {
	tables, err := h.Svc.ListTables(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, "Tables retrieved successfully", tables)
}

func (h *Handler) getSchema(c *gin.Context) {
	schema, err := h.Svc.GetSchema(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, "Schema retrieved successfully", schema)
}

func (h *Handler) query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Table == "" {
		respond.Error(c, http.StatusBadRequest, "table is required")
		return
	}

	rows, err := h.Svc.Query(c.Request.Context(), QuerySpec{
		Table:   req.Table,
		Select:  req.Select,
		Filters: req.Filters,
		Limit:   req.Limit,
		Order:   req.Order,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, "Query executed successfully", rows)
}

func (h *Handler) insert(c *gin.Context) {
	var req insertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Table == "" {
		respond.Error(c, http.StatusBadRequest, "table is required")
		return
	}
	records, err := req.records()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.Svc.Insert(c.Request.Context(), req.Table, records)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, "Data inserted successfully", rows)
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Table == "" {
		respond.Error(c, http.StatusBadRequest, "table is required")
		return
	}
	if req.MatchColumn == "" {
		respond.Error(c, http.StatusBadRequest, "match_column is required")
		return
	}
	if req.MatchValue == nil {
		respond.Error(c, http.StatusBadRequest, "match_value is required")
		return
	}

	rows, err := h.Svc.Update(c.Request.Context(), req.Table, req.Data, req.MatchColumn, req.MatchValue)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, "Rows updated successfully", rows)
}

func (h *Handler) delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Table == "" {
		respond.Error(c, http.StatusBadRequest, "table is required")
		return
	}
	if req.MatchColumn == "" {
		respond.Error(c, http.StatusBadRequest, "match_column is required")
		return
	}
	if req.MatchValue == nil {
		respond.Error(c, http.StatusBadRequest, "match_value is required")
		return
	}

	rows, err := h.Svc.Delete(c.Request.Context(), req.Table, req.MatchColumn, req.MatchValue)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, "Rows deleted successfully", rows)
}

func (h *Handler) executeSQL(c *gin.Context) {
	var req executeSQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		respond.Error(c, http.StatusBadRequest, "query is required")
		return
	}

	result, err := h.Svc.ExecuteRaw(c.Request.Context(), req.Query, req.Params)
	if err != nil {
		h.fail(c, err)
		return
	}
	if result.SoftError != "" {
		respond.OK(c, "Query executed", gin.H{"error": result.SoftError})
		return
	}
	respond.OK(c, "Query executed successfully", result.Rows)
}

func (h *Handler) createTable(c *gin.Context) {
	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TableName == "" {
		respond.Error(c, http.StatusBadRequest, "table_name is required")
		return
	}
	if len(req.Columns) == 0 {
		respond.Error(c, http.StatusBadRequest, "columns is required")
		return
	}

	err := h.Svc.CreateTable(c.Request.Context(), TableSpec{
		Name:       req.TableName,
		Columns:    req.Columns,
		PrimaryKey: req.PrimaryKey,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, "Table created successfully", gin.H{"table_name": req.TableName})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, err.Error())
	}
}
