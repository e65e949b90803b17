// Package mocklocker is an in-memory stand-in for the locker controller's
// storage API, seeded with the example five-cell status.
package mocklocker

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/postomat/internal/converter"
	"github.com/mrlokans/postomat/internal/entities"
	"github.com/mrlokans/postomat/internal/fixtures"
)

// Server holds the simulated cells. Opening an active cell toggles its session.
type Server struct {
	mu        sync.Mutex
	cells     []entities.Cell
	converter *converter.Converter
	now       func() time.Time
}

// New seeds a server from the embedded status fixture.
func New() (*Server, error) {
	data, err := fixtures.StatusCells()
	if err != nil {
		return nil, err
	}
	conv := converter.Default()
	cells, err := converter.Load[[]entities.Cell](conv, data, true)
	if err != nil {
		return nil, err
	}
	return &Server{cells: cells, converter: conv, now: time.Now}, nil
}

// Router exposes the storage API.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/storage", s.status)
	router.GET("/storage/:id/open", s.open)
	return router
}

func (s *Server) status(c *gin.Context) {
	s.mu.Lock()
	data, err := s.converter.Dump(s.cells, true)
	s.mu.Unlock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entities.StatusEnvelope{Message: "OK", Data: data})
}

func (s *Server) open(c *gin.Context) {
	cellID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid cell id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cell, ok := entities.FindCell(s.cells, cellID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "cell not found"})
		return
	}
	if !cell.IsActive() {
		c.JSON(http.StatusConflict, gin.H{"message": "cell is inactive"})
		return
	}

	if cell.HasSession() {
		cell.SessionID = nil
	} else {
		session := uuid.NewString()
		cell.SessionID = &session
	}
	cell.UpdatedAt = s.now().UTC()

	slog.Info("mock cell opened", slog.Int("cell_id", cellID), slog.Bool("session", cell.HasSession()))
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}
