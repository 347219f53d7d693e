package initialize

import (
	"fmt"
	"net/http"

	"inkwell/app/controllers"
	"inkwell/app/db"
	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/repo"
	"inkwell/app/services"
	"inkwell/app/session"
	"inkwell/app/view"
	"inkwell/config"
	"inkwell/global"
	"inkwell/router"

	"gorm.io/gorm"
)

type App struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Router   http.Handler
	Renderer *view.Renderer
	Sessions *session.Manager
	Users    *services.UserService
	Posts    *services.PostService
	Comments *services.CommentService
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return BuildWithConfig(cfg)
}

func BuildWithConfig(cfg *config.Config) (*App, error) {
	global.Config = cfg

	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.DB = gdb

	if err := gdb.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Repos and services
	userRepo := repo.NewUserRepository(gdb)
	postRepo := repo.NewPostRepository(gdb)
	commentRepo := repo.NewCommentRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	postSvc := services.NewPostService(postRepo)
	commentSvc := services.NewCommentService(commentRepo, postRepo)
	mailSvc := services.NewMailService(cfg.SMTP)

	if err := userSvc.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	sessions := &session.Manager{
		Secret:     []byte(cfg.Session.Secret),
		Issuer:     cfg.Session.Issuer,
		CookieName: cfg.Session.CookieName,
		ExpMin:     cfg.Session.ExpMin,
	}

	renderer, err := view.New(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}

	// Controllers
	blogCtrl := controllers.NewBlogController(postSvc, renderer, sessions)
	authCtrl := controllers.NewAuthController(userSvc, renderer, sessions)
	postCtrl := controllers.NewPostController(postSvc, commentSvc, renderer, sessions)
	contactCtrl := controllers.NewContactController(mailSvc, cfg.SMTP.Timeout, renderer, sessions)

	mw := &middleware.Auth{Sessions: sessions, Users: userSvc}
	h := router.New(blogCtrl, authCtrl, postCtrl, contactCtrl, mw)
	h = mw.WithUser(h)
	h = middleware.Logging(h)

	return &App{
		Cfg: cfg, DB: gdb, Router: h, Renderer: renderer, Sessions: sessions,
		Users: userSvc, Posts: postSvc, Comments: commentSvc,
	}, nil
}

// Close releases the template watcher and the store's connection pool.
func (a *App) Close() error {
	if a.Renderer != nil {
		_ = a.Renderer.Close()
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
