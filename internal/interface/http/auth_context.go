package http

import "github.com/gin-gonic/gin"

const sessionSubjectKey = "session_subject"

func setSubject(c *gin.Context, subject string) {
	c.Set(sessionSubjectKey, subject)
}

func getSubject(c *gin.Context) (string, bool) {
	value, ok := c.Get(sessionSubjectKey)
	if !ok {
		return "", false
	}
	subject, ok := value.(string)
	return subject, ok && subject != ""
}
