package router

import (
	"time"

	"coldstore/internal/config"
	"coldstore/internal/handler"
	"coldstore/internal/infra"
	"coldstore/internal/middleware"
	"coldstore/internal/repository"
	"coldstore/internal/service"
	"coldstore/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	sequence := infra.NewBillSequence(rdb)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	lotRepo := repository.NewLotRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	exitRepo := repository.NewExitRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	moneyRepo := repository.NewMoneyRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	registerRepo := repository.NewRegisterRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	lotSvc := service.NewLotService(lotRepo, saleRepo, auditRepo, settingsRepo)
	saleSvc := service.NewSaleService(saleRepo, lotRepo, auditRepo)
	exitSvc := service.NewExitService(exitRepo, saleRepo, settingsRepo, sequence, cfg.PDFStoragePath)
	paymentSvc := service.NewPaymentService(receiptRepo, saleRepo, lotRepo, moneyRepo, sequence)
	transferSvc := service.NewTransferService(transferRepo, discountRepo, saleRepo, sequence)
	reversalSvc := service.NewReversalService(exitRepo, receiptRepo, saleRepo, lotRepo, moneyRepo, transferRepo, discountRepo)
	reportSvc := service.NewReportService(saleRepo, receiptRepo, moneyRepo, registerRepo)
	registerSvc := service.NewRegisterService(registerRepo, settingsRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	lotH := handler.NewLotHandler(lotSvc)
	saleH := handler.NewSaleHandler(saleSvc, exitSvc, reversalSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc, reversalSvc)
	transferH := handler.NewTransferHandler(transferSvc)
	reportH := handler.NewReportHandler(reportSvc, dispatcher, cfg.StatementEmail)
	registerH := handler.NewRegisterHandler(registerSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes. Reads need a valid token; every ledger mutation also
	// needs edit access.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	edit := middleware.RequireEdit()
	v1 := r.Group("/v1", jwtMW)
	{
		lots := v1.Group("/lots")
		{
			lots.GET("", lotH.List)
			lots.GET("/:id", lotH.Get)
			lots.GET("/:id/history", lotH.EditHistory(saleSvc))
			lots.POST("", edit, lotH.Create)
			lots.PUT("/:id", edit, lotH.Update)
			lots.PUT("/:id/up-for-sale", edit, lotH.ToggleUpForSale)
			lots.POST("/:id/sales", edit, lotH.RecordSale)
			lots.POST("/:id/finalize", edit, lotH.Finalize)
			lots.POST("/season-reset", edit, lotH.SeasonReset)
		}

		sales := v1.Group("/sales")
		{
			sales.GET("", saleH.List)
			sales.GET("/:id", saleH.Get)
			sales.GET("/:id/history", saleH.EditHistory)
			sales.GET("/:id/exits", saleH.ListExits)
			sales.PUT("/:id", edit, saleH.Correct)
			sales.POST("/:id/exits", edit, saleH.RecordExit)
			sales.POST("/:id/exits/reverse-latest", edit, saleH.ReverseLatestExit)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("/receipts", edit, paymentH.RecordReceipt)
			payments.POST("/expenses", edit, paymentH.RecordExpense)
			payments.POST("/cash-transfers", edit, paymentH.RecordCashTransfer)
		}

		v1.GET("/buyers/:name/balance", paymentH.BuyerBalance)
		v1.POST("/reversals", edit, paymentH.Reverse)

		transfers := v1.Group("/transfers", edit)
		{
			transfers.POST("/buyer", transferH.BuyerToBuyer)
			transfers.POST("/farmer", transferH.FarmerToBuyer)
		}
		v1.POST("/discounts", edit, transferH.RecordDiscount)

		reports := v1.Group("/reports")
		{
			reports.GET("/balance-sheet", reportH.BalanceSheet)
			reports.GET("/profit-loss", reportH.ProfitAndLoss)
			reports.POST("/export", reportH.Export)
		}

		assets := v1.Group("/assets")
		{
			assets.GET("", registerH.ListAssets)
			assets.POST("", edit, registerH.CreateAsset)
			assets.PUT("/:id", edit, registerH.UpdateAsset)
			assets.DELETE("/:id", edit, registerH.DeleteAsset)
		}

		liabilities := v1.Group("/liabilities")
		{
			liabilities.GET("", registerH.ListLiabilities)
			liabilities.POST("", edit, registerH.CreateLiability)
			liabilities.PUT("/:id", edit, registerH.UpdateLiability)
			liabilities.DELETE("/:id", edit, registerH.DeleteLiability)
		}

		v1.GET("/settings", registerH.GetSettings)
		v1.PUT("/settings", edit, registerH.UpdateSettings)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
