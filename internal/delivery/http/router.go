package http

import (
	"github.com/gin-gonic/gin"

	"github.com/matchbook-app/matchbook-client/internal/delivery/http/handler"
)

// Router wires the local API the browser UI renders from.
type Router struct {
	onboardingHandler *handler.OnboardingHandler
	profileHandler    *handler.ProfileHandler
}

func NewRouter(
	onboardingHandler *handler.OnboardingHandler,
	profileHandler *handler.ProfileHandler,
) *Router {
	return &Router{
		onboardingHandler: onboardingHandler,
		profileHandler:    profileHandler,
	}
}

// Setup configures all routes.
func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/check-email", r.onboardingHandler.CheckEmail)
			auth.POST("/signin", r.onboardingHandler.SignIn)
			auth.POST("/edit-email", r.onboardingHandler.EditEmail)
			auth.POST("/signout", r.onboardingHandler.SignOut)
		}

		profile := api.Group("/profile")
		{
			profile.GET("", r.profileHandler.GetProfile)
			profile.POST("", r.profileHandler.SubmitProfile)
			profile.PATCH("", r.profileHandler.PatchProfile)
			profile.POST("/refresh", r.profileHandler.RefreshProfile)
			profile.PUT("/personality", r.onboardingHandler.SubmitPersonality)
			profile.POST("/personality/skip", r.onboardingHandler.SkipPersonality)
			profile.POST("/suggest-bio", r.profileHandler.SuggestBio)
		}

		api.GET("/state", r.onboardingHandler.State)
	}

	return router
}
