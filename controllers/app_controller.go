package controllers

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/estatelist/estatelist_backend/models"
)

type AppController struct{}

func NewAppController() *AppController {
	return &AppController{}
}

// DownloadApp streams the Android build with an attachment disposition
// so browsers save it instead of rendering bytes. The file lives under
// uploads/app and is replaced out of band on each release.
func (ac *AppController) DownloadApp(c echo.Context) error {
	apkPath := os.Getenv("APK_PATH")
	if apkPath == "" {
		apkPath = "uploads/app/estatelist.apk"
	}

	if _, err := os.Stat(apkPath); err != nil {
		return c.JSON(http.StatusNotFound, models.Fail("App package not available"))
	}

	return c.Attachment(apkPath, "estatelist.apk")
}
