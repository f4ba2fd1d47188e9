package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	handle := func(method, path string, h http.HandlerFunc) {
		router.HandlerFunc(method, path, app.instrument(method, path, h))
	}

	handle(http.MethodGet, "/api/health", app.healthCheckHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	// blog service
	handle(http.MethodGet, "/api/blogs", app.listBlogsHandler)
	handle(http.MethodPost, "/api/blogs", app.createBlogHandler)
	handle(http.MethodGet, "/api/blogs/:id", app.getBlogHandler)
	handle(http.MethodPut, "/api/blogs/:id", app.updateBlogHandler)
	handle(http.MethodDelete, "/api/blogs/:id", app.deleteBlogHandler)
	handle(http.MethodPost, "/api/blogs/:id/like", app.likeBlogHandler)

	// comment service
	handle(http.MethodGet, "/api/comments/:blogId", app.listCommentsHandler)
	handle(http.MethodPost, "/api/comments", app.createCommentHandler)
	handle(http.MethodPut, "/api/comments/:id", app.updateCommentHandler)
	handle(http.MethodDelete, "/api/comments/:id", app.deleteCommentHandler)
	handle(http.MethodPost, "/api/comments/:id/like", app.likeCommentHandler)

	return app.recoverPanic(app.requestID(app.logRequest(app.enableCORS(app.rateLimit(router)))))
}
