package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/models"
	"github.com/tripmitra/api/internal/services"
)

func BlockchainOperation(ps *services.ProofService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.BlockchainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}
		if req.Action == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("Action is required"))
			return
		}

		result, err := ps.Execute(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(result, fmt.Sprintf("Blockchain %s completed successfully", req.Action)))
	}
}

func ListProofs(ps *services.ProofService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.ProofFilter{
			Hash:       c.Query("hash"),
			FacilityID: c.Query("facilityId"),
			Verified:   boolQuery(c, "verified"),
		}

		proofs, stats, err := ps.ListProofs(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"proofs":     proofs,
			"statistics": stats,
		}, "Blockchain proofs retrieved successfully"))
	}
}

// VerifyProof checks a stored proof against its on-chain receipt.
func VerifyProof(ps *services.ProofService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := ps.VerifyByHash(c.Request.Context(), c.Param("hash"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(result, "Blockchain proof verified successfully"))
	}
}
