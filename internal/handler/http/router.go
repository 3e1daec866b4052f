package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/curately/curately/internal/handler/http/middleware"
	"github.com/curately/curately/internal/infrastructure/jwt"
	usecasecontract "github.com/curately/curately/internal/usecase/contract"
)

type Router struct {
	curationHandler    *CurationHandler
	interactionHandler *InteractionHandler
	recommendHandler   *RecommendationHandler
	jwtManager         *jwt.Manager
}

func NewRouter(
	curationUsecase usecasecontract.ICurationUseCase,
	engagementUsecase usecasecontract.IEngagementUseCase,
	recommendUsecase usecasecontract.IRecommendationUseCase,
	jwtManager *jwt.Manager,
) *Router {
	return &Router{
		curationHandler:    NewCurationHandler(curationUsecase),
		interactionHandler: NewInteractionHandler(engagementUsecase),
		recommendHandler:   NewRecommendationHandler(recommendUsecase),
		jwtManager:         jwtManager,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// rate limiter configuration
	lmt := tollbooth.NewLimiter(10, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(tollbooth_gin.LimitHandler(lmt))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	// Public routes; a bearer token is honored when present so detail reads
	// and recommendations can use the member context.
	curations := v1.Group("/curations")
	curations.Use(middleware.OptionalAuth(r.jwtManager))
	{
		curations.GET("/trending", r.recommendHandler.TrendingHandler)
		curations.GET("/:curationID", r.curationHandler.GetCurationDetailHandler)
		curations.GET("/:curationID/like", r.interactionHandler.GetLikeStateHandler)
		curations.GET("/:curationID/recommend", r.recommendHandler.RecommendHandler)
	}

	// Protected routes (authentication required)
	protected := v1.Group("/curations")
	protected.Use(middleware.AuthMiddleWare(r.jwtManager))
	{
		protected.POST("", r.curationHandler.CreateCurationHandler)
		protected.POST("/:curationID/like", r.interactionHandler.ToggleLikeHandler)
		protected.DELETE("/:curationID", r.curationHandler.DeleteCurationHandler)
	}

	members := v1.Group("/members")
	members.Use(middleware.AuthMiddleWare(r.jwtManager))
	{
		members.GET("/me/likes", r.interactionHandler.GetLikedCurationsHandler)
	}
}
