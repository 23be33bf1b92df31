// internal/router/router.go
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	"github.com/unclebandit/creatorhub-backend/internal/controller"
	"github.com/unclebandit/creatorhub-backend/internal/handler"
	"github.com/unclebandit/creatorhub-backend/internal/metrics"
	"github.com/unclebandit/creatorhub-backend/internal/middleware"
)

type Deps struct {
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	Tokens       *auth.Tokens
	RateLimiter  *middleware.RateLimiter
	MaxBodyBytes int64

	Auth      *controller.AuthController
	Profile   *controller.ProfileController
	Campaigns *controller.CampaignController
	Creators  *controller.CreatorController
	Posts     *controller.PostController
	Admin     *controller.AdminController
	Screens   *handler.ScreenHandler
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(d.Logger), middleware.Instrument(d.Metrics))
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Middleware)
	}
	if d.MaxBodyBytes > 0 {
		r.Use(middleware.MaxBodyBytes(d.MaxBodyBytes))
	}
	r.Use(middleware.Authenticate(d.Tokens))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", d.Metrics.Handler())

	// Public routes
	r.Post("/auth/signup", d.Auth.SignUp)
	r.Post("/auth/signin", d.Auth.SignIn)
	r.Get("/testimonials", d.Admin.PublicTestimonials)
	r.Post("/testimonials", d.Admin.SubmitTestimonial)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/profile", d.Profile.GetProfile)
		r.Put("/profile", d.Profile.UpdateProfile)
		r.Post("/profile/upgrade", d.Profile.Upgrade)
		r.Get("/overview", d.Profile.Overview)

		// Campaign routes
		r.Get("/campaigns", d.Campaigns.ListCampaigns)
		r.Post("/campaigns", d.Campaigns.CreateCampaign)
		r.Get("/campaigns/{id}", d.Campaigns.GetCampaign)
		r.Put("/campaigns/{id}", d.Campaigns.UpdateCampaign)
		r.Delete("/campaigns/{id}", d.Campaigns.DeleteCampaign)
		r.Get("/campaigns/{id}/creators", d.Campaigns.ListCampaignCreators)
		r.Post("/campaigns/{id}/creators", d.Campaigns.AttachCreator)
		r.Delete("/campaign-creators/{attachmentID}", d.Campaigns.DetachCreator)

		r.Get("/creators", d.Creators.ListCreators)
		r.Get("/creators/{id}", d.Creators.GetCreator)

		r.Get("/posts", d.Posts.ListPosts)
		r.Post("/posts", d.Posts.Compose)
		r.Delete("/posts/{id}", d.Posts.DeletePost)
		r.Get("/social-accounts", d.Posts.ListAccounts)
		r.Post("/social-accounts", d.Posts.ConnectAccount)
		r.Delete("/social-accounts/{id}", d.Posts.DisconnectAccount)
		r.Get("/assets", d.Posts.ListAssets)
		r.Post("/assets", d.Posts.RegisterAsset)
		r.Delete("/assets/{id}", d.Posts.DeleteAsset)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", d.Admin.ListUsers)
			r.Get("/stats", d.Admin.Stats)
			r.Get("/testimonials", d.Admin.Testimonials)
			r.Post("/testimonials/{id}/approve", d.Admin.ApproveTestimonial)
			r.Delete("/testimonials/{id}", d.Admin.RejectTestimonial)
		})

		r.Route("/screens", func(r chi.Router) {
			r.Post("/", d.Screens.OpenScreenHandler)
			r.Get("/{id}", d.Screens.GetScreenHandler)
			r.Delete("/{id}", d.Screens.CloseScreenHandler)
			r.Post("/{id}/refresh", d.Screens.RefreshScreenHandler)
			r.Get("/{id}/creators", d.Screens.CreatorsHandler)
			r.Get("/{id}/campaigns", d.Screens.CampaignsHandler)
			r.Get("/{id}/users", d.Screens.UsersHandler)
			r.Post("/{id}/shortlist", d.Screens.ShortlistHandler)
			r.Post("/{id}/testimonials/{testimonialID}/approve", d.Screens.ApproveTestimonialHandler)
			r.Delete("/{id}/testimonials/{testimonialID}", d.Screens.RejectTestimonialHandler)
			r.Post("/{id}/captions", d.Screens.CaptionHandler)
			r.Post("/{id}/captions/{itemID}/regenerate", d.Screens.RegenerateHandler)
			r.Post("/{id}/posters", d.Screens.PosterHandler)
			r.Post("/{id}/product-captions", d.Screens.ProductCaptionHandler)
			r.Post("/{id}/video-edits", d.Screens.VideoEditHandler)
			r.Delete("/{id}/items/{itemID}", d.Screens.DeleteItemHandler)
			r.Post("/{id}/messages", d.Screens.MessageHandler)
		})
	})
	return r
}
