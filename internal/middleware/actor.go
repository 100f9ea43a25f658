package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// actorIDHeader names the header the upstream gateway sets after it
// authenticates the request.
const actorIDHeader = "X-Actor-ID"

// ActorMiddleware requires the actor header on every mutating request and
// stores its value for audit trails. Reads pass through without it.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorIDHeader)
		if actorID == "" && c.Request.Method != http.MethodGet {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + actorIDHeader + " header"})
			return
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}
	actorID, ok := actorVal.(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
