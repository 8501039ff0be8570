package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campreg/internal/domain"
)

func listCampsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		camps, err := svc.ListCamps(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if camps == nil {
			camps = []domain.CampSession{}
		}
		c.JSON(http.StatusOK, gin.H{"camps": camps})
	}
}

func getCampHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		camp, err := svc.GetCamp(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "camp not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, camp)
	}
}

func listAddOnsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		addons, err := svc.ListAddOns(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "camp not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if addons == nil {
			addons = []domain.AddOn{}
		}
		c.JSON(http.StatusOK, gin.H{"addOns": addons})
	}
}

type validatePromoRequest struct {
	Code string `json:"code" binding:"required"`
}

func validatePromoHandler(svc promoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validatePromoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code required"})
			return
		}
		promo, err := svc.Validate(c.Request.Context(), req.Code)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "promo code not found"})
			case errors.Is(err, domain.ErrPromoInactive):
				c.JSON(http.StatusGone, gin.H{"error": "promo code inactive"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, promo)
	}
}

func getAthleteHandler(repo athleteRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		athlete, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "athlete not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, athlete)
	}
}

func listAthletesHandler(repo athleteRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.Query("parentEmail"))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parentEmail required"})
			return
		}
		athletes, err := repo.ListByParentEmail(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if athletes == nil {
			athletes = []domain.Athlete{}
		}
		c.JSON(http.StatusOK, gin.H{"athletes": athletes})
	}
}
