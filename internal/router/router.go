package router

import (
	"reddigo/internal/handler"
	"reddigo/internal/middleware"
	"reddigo/internal/pkg"
	"reddigo/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(emailCfg pkg.SMTPConfig, imageDir string) *gin.Engine {
	r := gin.Default()

	emailSvc := service.NewEmailService(emailCfg)
	voteSvc := service.NewVoteService()

	user := handler.NewUserHandler(service.NewUserService(emailSvc))
	email := handler.NewEmailHandler(emailSvc)
	community := handler.NewCommunityHandler()
	post := handler.NewPostHandler(voteSvc)
	comment := handler.NewCommentHandler()
	vote := handler.NewVoteHandler(voteSvc)
	save := handler.NewSaveHandler()
	image := handler.NewImageHandler(service.NewImageService(imageDir))

	// 邮件验证码
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/logout", middleware.AuthMiddleware(), user.Logout)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token 相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 社区相关接口
	communityGroup := r.Group("/api/community")
	{
		communityGroup.GET("/list", community.List)
		communityGroup.GET("/:name", community.Get)

		authed := communityGroup.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("/create", community.Create)
			authed.POST("/:name/join", community.Join)
			authed.POST("/:name/leave", community.Leave)
			authed.PUT("/:name/settings", community.UpdateSettings)
		}
	}

	// 帖子流（匿名可读，带 token 则按成员身份过滤可见性）
	postGroup := r.Group("/api/post")
	postGroup.Use(middleware.OptionalAuth())
	{
		postGroup.GET("/list", post.ListNew)
		postGroup.GET("/popular", post.ListPopular)
		postGroup.GET("/community/:name/list", post.ListNew)
		postGroup.GET("/community/:name/popular", post.ListPopular)
		postGroup.GET("/:id", post.Detail)
		postGroup.GET("/:id/score", post.Score)
	}

	// 帖子写接口
	postAuthGroup := r.Group("/api/post")
	postAuthGroup.Use(middleware.AuthMiddleware())
	{
		postAuthGroup.POST("/create", post.Create)
		postAuthGroup.PUT("/:id", post.Update)
		postAuthGroup.DELETE("/:id", post.Delete)
	}

	// 评论相关接口
	commentGroup := r.Group("/api/comment")
	{
		commentGroup.GET("/post/:id", middleware.OptionalAuth(), comment.ListByPost)

		authed := commentGroup.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("/create", comment.Create)
			authed.DELETE("/:id", comment.Delete)
		}
	}

	// 投票相关接口
	voteGroup := r.Group("/api/vote")
	voteGroup.Use(middleware.AuthMiddleware())
	{
		voteGroup.POST("", vote.Cast)
		voteGroup.PUT("/:id", vote.Update)
	}

	// 收藏相关接口
	saveGroup := r.Group("/api/save")
	saveGroup.Use(middleware.AuthMiddleware())
	{
		saveGroup.POST("/post/:id", save.SavePost)
		saveGroup.DELETE("/post/:id", save.UnsavePost)
		saveGroup.POST("/comment/:id", save.SaveComment)
		saveGroup.DELETE("/comment/:id", save.UnsaveComment)
		saveGroup.GET("/posts", save.ListSavedPosts)
	}

	// 图片上传
	imageGroup := r.Group("/api/image")
	imageGroup.Use(middleware.AuthMiddleware())
	{
		imageGroup.POST("/upload", image.Upload)
	}

	return r
}
