package events

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamhub/middleware"
	"teamhub/services"
	"teamhub/store"
)

// EventsController streams collection replacements as server-sent events.
// Each event carries the full new content of the collection.
func EventsController(router *gin.Engine, svc *services.Service) {
	router.GET("/events/:collection", middleware.AccessTokenMiddleware(svc), func(c *gin.Context) {
		principal, _ := middleware.CurrentPrincipal(c)
		if store.Collection(c.Param("collection")) == store.PasswordResets && !services.CanDelete(principal) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		Stream(c, svc.Directory())
	})
}

func Stream(c *gin.Context, dir *store.Directory) {
	collection := store.Collection(c.Param("collection"))
	if !known(collection) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown collection"})
		return
	}

	events, cancel := dir.Subscribe(collection)
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Collection), payload(ev))
			return true
		}
	})
}

func known(c store.Collection) bool {
	for _, k := range store.Collections {
		if k == c {
			return true
		}
	}
	return false
}

func payload(ev store.Event) gin.H {
	body := gin.H{"version": ev.Version, "at": ev.At}
	switch ev.Collection {
	case store.Tasks:
		body["items"] = ev.Snapshot.Tasks
	case store.Announcements:
		body["items"] = ev.Snapshot.Announcements
	case store.ChatMessages:
		body["items"] = ev.Snapshot.ChatMessages
	case store.Documents:
		body["items"] = ev.Snapshot.Documents
	case store.Users:
		body["items"] = ev.Snapshot.Users
	case store.PasswordResets:
		body["items"] = ev.Snapshot.PasswordResets
	}
	return body
}
