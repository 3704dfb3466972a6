package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usr "github.com/zero3nine/AgriLinkWeb/internal/user"
)

func getUserHandler(repo usr.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		// email stays between the user and the auth service
		u.Email = ""
		c.JSON(http.StatusOK, u)
	}
}

// listUsersHandler backs the seller dashboard's delivery-provider picker.
func listUsersHandler(repo usr.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.Query("role")
		if role == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role query parameter is required"})
			return
		}
		users, err := repo.ListByRole(c.Request.Context(), role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
			return
		}
		if users == nil {
			users = []usr.User{}
		}
		for i := range users {
			users[i].Email = ""
		}
		c.JSON(http.StatusOK, users)
	}
}
