package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeJSONStrings strips markup from every top-level string field of a
// JSON object body. Entities are decoded again afterwards so "R&D" stays as typed.
func SanitizeJSONStrings() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		var body map[string]interface{}
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		for k, v := range body {
			if str, ok := v.(string); ok {
				body[k] = html.UnescapeString(strictPolicy.Sanitize(str))
			}
		}

		var newBody bytes.Buffer
		enc := json.NewEncoder(&newBody)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}
		c.Request.ContentLength = int64(newBody.Len())
		c.Request.Body = io.NopCloser(&newBody)

		c.Next()
	}
}
