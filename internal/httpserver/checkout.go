package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campreg/internal/domain"
	checkoutsvc "campreg/internal/service/checkout"
	registrationsvc "campreg/internal/service/registration"
)

func getCheckoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.Param("sessionKey"))
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sessionKey required"})
			return
		}
		res := svc.Load(c.Request.Context(), key, c.Query("camp"))
		c.JSON(http.StatusOK, res)
	}
}

type checkoutActionsRequest struct {
	Camp    string               `json:"camp,omitempty"`
	Actions []checkoutsvc.Action `json:"actions"`
}

func checkoutActionsHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.Param("sessionKey"))
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sessionKey required"})
			return
		}
		var req checkoutActionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		res, err := svc.Apply(c.Request.Context(), key, req.Camp, req.Actions)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

type submitRequest struct {
	Camp string `json:"camp,omitempty"`
}

func submitHandler(svc registrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.Param("sessionKey"))
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sessionKey required"})
			return
		}
		var req submitRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
		}
		reg, err := svc.Submit(c.Request.Context(), key, req.Camp)
		if err != nil {
			switch {
			case errors.Is(err, registrationsvc.ErrNoCamp), errors.Is(err, registrationsvc.ErrIncomplete):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			case errors.Is(err, domain.ErrCampFull):
				c.JSON(http.StatusConflict, gin.H{"error": "camp full"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusCreated, reg)
	}
}

func getRegistrationHandler(svc registrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reg, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, reg)
	}
}
