package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/almatienda/catalog-service/internal/database"
)

// ListBranches returns the organization's branches
// @Summary List branches
// @Tags organization
// @Produce json
// @Success 200 {array} database.Branch
// @Router /internal/branches [get]
func ListBranches(c *gin.Context) {
	branches, err := database.ListBranches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list branches"})
		return
	}
	c.JSON(http.StatusOK, branches)
}

// ListPaymentMethods returns the accepted payment methods
// @Summary List payment methods
// @Tags organization
// @Produce json
// @Success 200 {array} database.PaymentMethod
// @Router /internal/payment-methods [get]
func ListPaymentMethods(c *gin.Context) {
	methods, err := database.ListPaymentMethods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payment methods"})
		return
	}
	c.JSON(http.StatusOK, methods)
}

// ListUsers returns back-office users with their roles
// @Summary List users
// @Tags organization
// @Produce json
// @Success 200 {array} database.UserWithRole
// @Router /internal/users [get]
func ListUsers(c *gin.Context) {
	users, err := database.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListRoles returns the user roles
// @Summary List roles
// @Tags organization
// @Produce json
// @Success 200 {array} database.Role
// @Router /internal/roles [get]
func ListRoles(c *gin.Context) {
	roles, err := database.ListRoles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list roles"})
		return
	}
	c.JSON(http.StatusOK, roles)
}
