package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func CheckManager(c *gin.Context) {
	manager := c.MustGet("manager").(bool)

	if !manager {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Manager role required"})
		return
	}
}
