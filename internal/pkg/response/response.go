// Package response renders the API's JSON envelope. Every endpoint answers
// either {"success":true,"data":...} or
// {"success":false,"error":{"code":...,"message":...}}, so clients can
// branch on success without inspecting HTTP status codes.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes the failure envelope. code is a stable machine-readable
// token (VALIDATION_ERROR, FORBIDDEN, ILLEGAL_TRANSITION, ...); message is
// for humans and may change freely.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
