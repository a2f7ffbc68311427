package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode silences Gin's debug output outside development.
func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}
