package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photohub/internal/models"
	"photohub/internal/services"
)

type StudioHandler struct {
	service services.StudioService
}

func NewStudioHandler(service services.StudioService) *StudioHandler {
	return &StudioHandler{service: service}
}

type studioRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	PricePerHour int64   `json:"price_per_hour" binding:"required,min=0"`
}

// @Summary      Создать студию
// @Description  Город и район заполняются обратным геокодированием по координатам
// @Tags         Studios
// @Accept       json
// @Produce      json
// @Param        studio  body      studioRequest  true  "Студия"
// @Success      201     {object}  models.Studio
// @Failure      400     {object}  map[string]string
// @Router       /studios [post]
func (h *StudioHandler) Create(c *gin.Context) {
	userID, _ := getCaller(c)

	var req studioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	studio := &models.Studio{
		OwnerID:      userID,
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		PricePerHour: req.PricePerHour,
	}
	if err := h.service.CreateStudio(studio); err != nil {
		log.Printf("[studio][create] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create studio"})
		return
	}
	c.JSON(http.StatusCreated, studio)
}

func (h *StudioHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	studios, err := h.service.ListStudios(c.Query("city"), limit, offset)
	if err != nil {
		log.Printf("[studio][list] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list studios"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"studios": studios})
}

func (h *StudioHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid studio id"})
		return
	}
	studio, err := h.service.GetStudioByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "studio not found"})
		return
	}
	c.JSON(http.StatusOK, studio)
}

func (h *StudioHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid studio id"})
		return
	}

	studio, err := h.service.GetStudioByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "studio not found"})
		return
	}

	userID, isAdmin := getCaller(c)
	if studio.OwnerID != userID && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req studioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	studio.Name = req.Name
	studio.Description = req.Description
	studio.Address = req.Address
	studio.Latitude = req.Latitude
	studio.Longitude = req.Longitude
	studio.PricePerHour = req.PricePerHour

	if err := h.service.UpdateStudio(studio); err != nil {
		log.Printf("[studio][update] failed: id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update studio"})
		return
	}
	c.JSON(http.StatusOK, studio)
}

func (h *StudioHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid studio id"})
		return
	}

	studio, err := h.service.GetStudioByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "studio not found"})
		return
	}

	userID, isAdmin := getCaller(c)
	if studio.OwnerID != userID && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.service.DeleteStudio(id); err != nil {
		log.Printf("[studio][delete] failed: id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete studio"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Studio deleted"})
}
