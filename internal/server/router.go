// Package server wires controllers and middleware into the HTTP router.
package server

import (
	"github.com/franciscosanchezn/gin-relief-api/internal/auth"
	"github.com/franciscosanchezn/gin-relief-api/internal/controllers"
	"github.com/franciscosanchezn/gin-relief-api/internal/middleware"
	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"github.com/franciscosanchezn/gin-relief-api/internal/services"
	"github.com/franciscosanchezn/gin-relief-api/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// ServiceName is reported by the health check
const ServiceName = "gin-relief-api"

// Dependencies holds everything the router needs
type Dependencies struct {
	Store       store.Store
	Tokens      *auth.TokenIssuer
	CORSOrigins []string
	Logger      logrus.FieldLogger
}

// NewRouter initializes the Gin router and sets up the routes
func NewRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	router := gin.New()
	router.Use(
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.CORS(deps.CORSOrigins),
	)

	userService := services.NewUserService(deps.Store, deps.Tokens)
	authController := controllers.NewAuthController(userService)

	supplyController := controllers.NewSupplyController(
		services.NewResourceService(deps.Store, models.CollectionSupplies, models.SupplyUpdatableFields))
	donorController := controllers.NewDonorController(
		services.NewResourceService(deps.Store, models.CollectionDonors, nil))
	communityController := controllers.NewCommunityController(
		services.NewResourceService(deps.Store, models.CollectionCommunities, nil))
	volunteerController := controllers.NewVolunteerController(
		services.NewResourceService(deps.Store, models.CollectionVolunteers, nil))

	statusController := controllers.NewStatusController(deps.Store, ServiceName)

	router.GET("/", statusController.Root)
	router.GET("/health", statusController.Health)

	v1 := router.Group("/api/v1")
	{
		// Authentication routes
		v1.POST("/register", authController.Register)
		v1.POST("/login", authController.Login)

		// Supply routes
		v1.GET("/supplies", supplyController.GetAllSupplies)
		v1.POST("/supply", supplyController.CreateSupply)
		v1.GET("/supply/:id", supplyController.GetSupplyByID)
		v1.PUT("/supply/:id", supplyController.UpdateSupply)
		v1.DELETE("/supply/:id", supplyController.DeleteSupply)

		// Donor routes
		v1.POST("/donor", donorController.Create)
		v1.GET("/donors", donorController.List)

		// Community routes
		v1.POST("/community", communityController.Create)
		v1.GET("/community", communityController.List)

		// Volunteer routes
		v1.POST("/volunteer", volunteerController.Create)
		v1.GET("/volunteer", volunteerController.List)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
