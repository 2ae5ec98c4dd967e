package connection

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"teamhub/blobstore"
	"teamhub/config"
	"teamhub/controller/analytics"
	"teamhub/controller/announcement"
	"teamhub/controller/assistant"
	"teamhub/controller/auth"
	"teamhub/controller/chat"
	"teamhub/controller/document"
	"teamhub/controller/events"
	"teamhub/controller/task"
	"teamhub/controller/user"
	"teamhub/docstore"
	"teamhub/services"
	"teamhub/store"
	"teamhub/syncer"
)

// NewRouter registers every controller on a fresh gin engine.
func NewRouter(svc *services.Service, ai *services.Assistant, origins []string) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!"})
	})

	auth.SignInController(router, svc)
	auth.SignUpController(router, svc)
	auth.PasswordResetController(router, svc)
	user.UserController(router, svc)
	task.TaskController(router, svc)
	announcement.AnnouncementController(router, svc)
	chat.ChatController(router, svc)
	document.DocumentController(router, svc)
	assistant.AssistantController(router, svc, ai)
	analytics.AnalyticsController(router, svc)
	events.EventsController(router, svc)
	return router
}

// StartServer connects to Firebase, starts the sync layer and serves HTTP
// until ctx is cancelled.
func StartServer(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	fb, err := FBConnection(ctx, cfg)
	if err != nil {
		return err
	}
	defer fb.Close()

	remote := docstore.NewFirestoreStore(fb.Firestore)
	blobs := blobstore.NewGCSStore(fb.Bucket, fb.BucketName)
	dir := store.NewDirectory()

	watcher := syncer.New(remote, dir)
	watcher.Start(ctx)
	defer watcher.Stop()
	go func() {
		for err := range watcher.Errors() {
			log.Printf("sync: %v", err)
		}
	}()

	svc := services.NewService(remote, blobs, dir, services.NewSessionManager(cfg.JWTSecret, cfg.SessionTTL))

	var gen services.TextGenerator
	if g, err := services.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		log.Printf("assistant disabled: %v", err)
	} else {
		gen = g
	}
	ai := services.NewAssistant(svc, gen)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: NewRouter(svc, ai, cfg.CORSOrigins)}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Serving on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
