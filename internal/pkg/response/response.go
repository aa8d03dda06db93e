package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// ServerError logs the underlying error and answers 500 with a generic
// message. The raw error text is attached only when debug is set; with
// debug off the caller learns nothing about the failure.
func ServerError(c *gin.Context, code string, message string, err error, debug bool) {
	log.Printf("server_error method=%s path=%s error=%q", c.Request.Method, c.Request.URL.Path, err)
	if debug {
		ErrorWithDetails(c, http.StatusInternalServerError, code, message, err.Error())
		return
	}
	Error(c, http.StatusInternalServerError, code, message)
}
