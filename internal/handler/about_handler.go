package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func AboutAuthor(c *gin.Context) {
	render(c, http.StatusOK, "about/author.html", gin.H{"title": "Об авторе"})
}

func AboutTech(c *gin.Context) {
	render(c, http.StatusOK, "about/tech.html", gin.H{"title": "Технологии"})
}
