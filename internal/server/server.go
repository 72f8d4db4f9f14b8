// Package server contains the HTTP handlers and route wiring for the
// application's API endpoints.
package server

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/iamsihlegqeza/sterkspruit/internal/cache"
	"github.com/iamsihlegqeza/sterkspruit/internal/config"
	"github.com/iamsihlegqeza/sterkspruit/internal/database"
	"github.com/iamsihlegqeza/sterkspruit/internal/googleauth"
	"github.com/iamsihlegqeza/sterkspruit/internal/middleware"
	"github.com/iamsihlegqeza/sterkspruit/internal/models"
	"github.com/iamsihlegqeza/sterkspruit/internal/repository"
	"github.com/iamsihlegqeza/sterkspruit/internal/service"
	"github.com/iamsihlegqeza/sterkspruit/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "sterkspruit-api"
	tokenAudience = "sterkspruit-client"
)

// Server holds all dependencies and provides the HTTP handlers.
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	prom   *fiberprometheus.FiberPrometheus
	app    *fiber.App

	auth          *service.AuthService
	blogs         *service.BlogService
	comments      *service.CommentService
	notifications *service.NotificationService
	users         *service.UserService
	uploader      storage.Uploader
}

// NewServer creates a server instance wired to a real database, Redis
// and S3.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	var uploader storage.Uploader
	if cfg.S3Bucket != "" {
		uploader, err = storage.NewS3Uploader(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
	}

	var verifier googleauth.Verifier
	if cfg.GoogleClientID != "" {
		verifier = googleauth.NewVerifier(cfg.GoogleClientID)
	}

	return NewServerWithDeps(cfg, db, cache.GetClient(), uploader, verifier), nil
}

// NewServerWithDeps creates a server from pre-built dependencies. Tests
// use it to swap in sqlite, a nil Redis client, or fake uploaders.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, uploader storage.Uploader, verifier googleauth.Verifier) *Server {
	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	return &Server{
		config: cfg,
		db:     db,
		redis:  redisClient,
		prom:   middleware.InitMetrics("sterkspruit"),

		auth:          service.NewAuthService(userRepo, verifier),
		blogs:         service.NewBlogService(blogRepo, userRepo),
		comments:      service.NewCommentService(commentRepo, blogRepo),
		notifications: service.NewNotificationService(notificationRepo),
		users:         service.NewUserService(userRepo),
		uploader:      uploader,
	}
}

// SetupMiddleware configures the middleware chain for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.MetricsMiddleware(s.prom))
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// Global rate limiting per IP; route-level limits come on top.
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	s.prom.RegisterAt(app, "/metrics")
}

// SetupRoutes binds every endpoint of the API.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.HealthCheck)

	// Account routes
	app.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	app.Post("/signin", middleware.RateLimit(s.redis, 10, 5*time.Minute, "signin"), s.Signin)
	app.Post("/google-auth", middleware.RateLimit(s.redis, 10, 5*time.Minute, "google_auth"), s.GoogleAuth)
	app.Post("/change-password", s.AuthRequired(), s.ChangePassword)

	// Public read surface
	app.Post("/latest-blogs", s.LatestBlogs)
	app.Post("/all-latest-blogs-count", s.AllLatestBlogsCount)
	app.Post("/trending-blogs", s.TrendingBlogs)
	app.Post("/search-blogs", middleware.RateLimit(s.redis, 30, time.Minute, "search"), s.SearchBlogs)
	app.Post("/search-blogs-count", s.SearchBlogsCount)
	app.Post("/search-users", s.SearchUsers)
	app.Post("/get-profile", s.GetProfile)
	app.Post("/get-blog", s.GetBlog)
	app.Post("/get-blog-comments", s.GetBlogComments)
	app.Post("/get-replies", s.GetReplies)
	app.Post("/user-written-blogs", s.AuthRequired(), s.UserWrittenBlogs)
	app.Post("/user-written-blogs-count", s.AuthRequired(), s.UserWrittenBlogsCount)

	// Authoring
	app.Get("/get-upload-url", s.AuthRequired(), s.GetUploadURL)
	app.Post("/create-blog", s.AuthRequired(), s.AdminRequired(), middleware.RateLimit(s.redis, 5, 5*time.Minute, "create_blog"), s.CreateBlog)
	app.Post("/delete-blog", s.AuthRequired(), s.AdminRequired(), s.DeleteBlog)

	// Interaction
	app.Post("/like-blog", s.AuthRequired(), s.LikeBlog)
	app.Post("/is-liked-by-user", s.AuthRequired(), s.IsLikedByUser)
	app.Post("/add-comment", s.AuthRequired(), middleware.RateLimit(s.redis, 20, time.Minute, "add_comment"), s.AddComment)
	app.Post("/delete-comment", s.AuthRequired(), s.DeleteComment)

	// Notifications
	app.Get("/new-notification", s.AuthRequired(), s.NewNotification)
	app.Post("/notifications", s.AuthRequired(), s.Notifications)
	app.Post("/all-notifications-count", s.AuthRequired(), s.AllNotificationsCount)

	// Profile editing
	app.Post("/update-profile", s.AuthRequired(), s.UpdateProfile)
	app.Post("/update-profile-img", s.AuthRequired(), s.UpdateProfileImg)
}

// HealthCheck reports the health of the server and its dependencies.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It validates the
// bearer token and stores userID and isAdmin in the request locals.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		isAdmin, _ := claims["admin"].(bool)

		c.Locals("userID", uint(userID))
		c.Locals("isAdmin", isAdmin)

		return c.Next()
	}
}

// optionalUserID extracts the user ID from the Authorization header
// without enforcing it. Public routes use it to unlock extras like
// draft access.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// AdminRequired gates a route on the admin claim set by AuthRequired.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, ok := c.Locals("isAdmin").(bool); !ok || !isAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("You don't have permissions to do this"))
		}
		return c.Next()
	}
}

// Start builds the fiber app and serves until Shutdown is called.
func (s *Server) Start() error {
	s.app = fiber.New(fiber.Config{
		AppName:   "Sterkspruit API",
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(s.app)
	s.SetupRoutes(s.app)

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown stops the HTTP server, then closes the database and Redis
// connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("stopping http server", "error", err)
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("closing sql DB", "error", cerr)
		}
	}
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("closing redis", "error", rerr)
		}
	}
	middleware.Logger.Info("server shutdown complete")
	return nil
}
