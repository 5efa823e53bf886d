package utils

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash stores a one-shot message shown on the next rendered page.
func Flash(ctx *gin.Context, message string) {
	session := sessions.Default(ctx)
	session.AddFlash(message)
	if err := session.Save(); err != nil {
		log.Println("Failed to save flash message:", err)
	}
}

// TakeFlashes drains and returns the pending flash messages.
func TakeFlashes(ctx *gin.Context) []string {
	session := sessions.Default(ctx)
	raw := session.Flashes()
	if len(raw) > 0 {
		if err := session.Save(); err != nil {
			log.Println("Failed to clear flash messages:", err)
		}
	}
	messages := make([]string, 0, len(raw))
	for _, entry := range raw {
		if message, ok := entry.(string); ok {
			messages = append(messages, message)
		}
	}
	return messages
}

// SessionCartID reads the anonymous cart id stored in the session.
func SessionCartID(ctx *gin.Context) uint {
	session := sessions.Default(ctx)
	if id, ok := session.Get("cart_id").(uint); ok {
		return id
	}
	return 0
}

// SaveSessionCartID remembers the anonymous cart id in the session.
func SaveSessionCartID(ctx *gin.Context, cartID uint) {
	session := sessions.Default(ctx)
	session.Set("cart_id", cartID)
	if err := session.Save(); err != nil {
		log.Println("Failed to save session cart id:", err)
	}
}
