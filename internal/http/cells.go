package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/postomat/internal/converter"
	"github.com/mrlokans/postomat/internal/entities"
)

// CellsResponse mirrors the controller's status envelope.
type CellsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
	Data    any    `json:"data"`
}

type CellsController struct {
	locker    LockerClient
	converter *converter.Converter
}

func NewCellsController(locker LockerClient, conv *converter.Converter) *CellsController {
	if conv == nil {
		conv = converter.Default()
	}
	return &CellsController{locker: locker, converter: conv}
}

// List returns every cell. ?case=camel switches keys to camelCase and
// ?active=0|1 filters on the active flag.
func (h *CellsController) List(c *gin.Context) {
	camel, ok := parseCaseQuery(c)
	if !ok {
		return
	}

	var activeFilter *int
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.Atoi(raw)
		if err != nil || (active != 0 && active != 1) {
			respondBadRequest(c, "active must be 0 or 1")
			return
		}
		activeFilter = &active
	}

	cells, err := h.locker.GetStatus(c.Request.Context())
	if err != nil {
		respondLockerError(c, err)
		return
	}
	if activeFilter != nil {
		cells = entities.FilterActive(cells, *activeFilter)
	}

	data, err := h.converter.Dump(cells, camel)
	if err != nil {
		respondInternalError(c, err, "dump cells")
		return
	}
	if data == nil {
		data = []any{}
	}

	c.JSON(http.StatusOK, CellsResponse{Message: "OK", Count: len(cells), Data: data})
}

// Get returns the cell with the given slot number.
func (h *CellsController) Get(c *gin.Context) {
	camel, ok := parseCaseQuery(c)
	if !ok {
		return
	}
	cellID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cell, err := h.locker.GetCell(c.Request.Context(), cellID)
	if err != nil {
		respondLockerError(c, err)
		return
	}

	data, err := h.converter.Dump(cell, camel)
	if err != nil {
		respondInternalError(c, err, "dump cell")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "OK", Data: data})
}

// Open unlocks a cell. Exactly one request is sent to the controller.
func (h *CellsController) Open(c *gin.Context) {
	cellID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.locker.OpenCell(c.Request.Context(), cellID); err != nil {
		respondLockerError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "cell " + strconv.Itoa(cellID) + " opened",
		Data:    gin.H{"cell_id": cellID},
	})
}

func parseCaseQuery(c *gin.Context) (camel bool, ok bool) {
	switch c.DefaultQuery("case", "snake") {
	case "snake":
		return false, true
	case "camel":
		return true, true
	default:
		respondBadRequest(c, "case must be snake or camel")
		return false, false
	}
}
