package router

import (
	"Hey_Blog/internal/config"
	"Hey_Blog/internal/handler"
	"Hey_Blog/internal/middleware"
	"Hey_Blog/internal/pkg"
	"Hey_Blog/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func InitRouter(cfg *config.Config, db *gorm.DB, tokens *pkg.TokenService) *gin.Engine {
	r := gin.Default()

	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailSender,
	}
	mail := service.NewEmailService(smtp, cfg.BaseURL)

	userSvc := service.NewUserService(db, tokens, mail, cfg.AdminEmail)
	followSvc := service.NewFollowService(db, cfg.FollowersPerPage)
	postSvc := service.NewPostService(db, cfg.PostsPerPage)
	commentSvc := service.NewCommentService(db, cfg.CommentsPerPage)

	user := handler.NewUserHandler(userSvc, postSvc)
	follow := handler.NewFollowHandler(followSvc, cfg.FollowersPerPage)
	post := handler.NewPostHandler(postSvc, cfg.PostsPerPage)
	comment := handler.NewCommentHandler(commentSvc, cfg.CommentsPerPage)

	resolver := middleware.NewResolver(db, tokens)
	required := resolver.AuthRequired()

	api := r.Group("/api")

	// open endpoints: registration and the token-carrying flows
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", user.Login)
		authGroup.POST("/confirm/:token", user.Confirm)
		authGroup.POST("/reset", user.RequestPasswordReset)
		authGroup.PUT("/reset/:token", user.PerformPasswordReset)
		authGroup.PUT("/email/:token", user.PerformEmailChange)
	}

	// login-state account endpoints
	account := api.Group("/auth")
	account.Use(required)
	{
		account.POST("/logout", user.Logout)
		account.POST("/tokens", user.IssueToken)
		// not under /confirm: a static segment there would collide with
		// the :token wildcard in gin's route tree
		account.POST("/resend-confirmation", user.ResendConfirmation)
		account.PUT("/password", user.ChangePassword)
		account.POST("/email", user.RequestEmailChange)
	}

	users := api.Group("/users")
	{
		users.POST("", user.Register)
		users.GET("/:id", user.Get)
		users.PUT("/:id", required, user.UpdateProfile)
		users.GET("/:id/posts", post.ListByAuthor)
		users.GET("/:id/timeline", post.Timeline)
		users.GET("/:id/followers", follow.Followers)
		users.GET("/:id/following", follow.Following)
	}

	followGroup := api.Group("/follow")
	followGroup.Use(required)
	{
		followGroup.POST("/:id", follow.Follow)
		followGroup.DELETE("/:id", follow.Unfollow)
	}
	api.GET("/relation", follow.Relation)

	posts := api.Group("/posts")
	{
		posts.GET("", post.List)
		posts.GET("/:id", post.Get)
		posts.POST("", required, post.Create)
		posts.PUT("/:id", required, post.Update)
		posts.GET("/:id/comments", comment.ListByPost)
		posts.POST("/:id/comments", required, comment.Create)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/:id", comment.Get)
		comments.PUT("/:id/disable", required, comment.Disable)
		comments.PUT("/:id/enable", required, comment.Enable)
	}

	return r
}
