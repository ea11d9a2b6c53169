package router

import (
	"time"

	"github.com/obispoem/pdv-simple/internal/config"
	"github.com/obispoem/pdv-simple/internal/handler"
	"github.com/obispoem/pdv-simple/internal/middleware"
	"github.com/obispoem/pdv-simple/internal/repository"
	"github.com/obispoem/pdv-simple/internal/service"
	"github.com/obispoem/pdv-simple/internal/worker"

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
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cashierRepo := repository.NewCashierRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, dispatcher)
	cashierSvc := service.NewCashierService(cashierRepo, saleRepo)
	reportSvc := service.NewReportService(saleRepo)
	dashboardSvc := service.NewDashboardService(reportSvc, cashierSvc, productRepo, saleRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	salesH := handler.NewSalesHandler(saleSvc)
	cashierH := handler.NewCashierHandler(cashierSvc)
	productsH := handler.NewProductsHandler(productSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.CreateSale)
			sales.GET("", salesH.ListSales)
			sales.GET("/:id", salesH.GetSale)
		}

		cashier := v1.Group("/cashier")
		{
			cashier.POST("/open", cashierH.OpenRegister)
			cashier.POST("/close", cashierH.CloseRegister)
			cashier.GET("/status", cashierH.RegisterStatus)
			cashier.GET("/history", cashierH.OperationHistory)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.CreateProduct)
			products.GET("", productsH.ListProducts)
			products.GET("/:id", productsH.GetProduct)
			products.PUT("/:id", productsH.UpdateProduct)
			products.DELETE("/:id", productsH.DeleteProduct)
		}

		categories := v1.Group("/categories")
		{
			categories.POST("", categoriesH.CreateCategory)
			categories.GET("", categoriesH.ListCategories)
			categories.GET("/:id", categoriesH.GetCategory)
			categories.DELETE("/:id", categoriesH.DeleteCategory)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/daily", reportsH.DailyReport)
			reports.GET("/payment-methods", reportsH.PaymentMethodsReport)
		}

		v1.GET("/dashboard", dashboardH.Overview)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
