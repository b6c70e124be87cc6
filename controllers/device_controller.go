package controllers

import (
	"net/http"
	"strconv"

	"github.com/frans1979valk/vastelijn-portal/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	Headwind *services.HeadwindClient
}

func NewDeviceController(client *services.HeadwindClient) *DeviceController {
	return &DeviceController{Headwind: client}
}

type CreateDeviceInput struct {
	Label     string `json:"label" binding:"required"`
	ConfigKey string `json:"config_key"`
}

func (dc *DeviceController) List(c *gin.Context) {
	ownerID := c.GetUint("userID")
	devices, err := services.ListDevices(ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, devices)
}

func (dc *DeviceController) Create(c *gin.Context) {
	ownerID := c.GetUint("userID")

	var input CreateDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, err := services.CreateDevice(dc.Headwind, ownerID, input.Label, input.ConfigKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, device)
}

func (dc *DeviceController) Get(c *gin.Context) {
	ownerID := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device id"})
		return
	}

	device, err := services.GetDevice(ownerID, uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}

	c.JSON(http.StatusOK, device)
}
