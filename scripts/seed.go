package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/franciscosanchezn/gin-relief-api/internal/auth"
	"github.com/franciscosanchezn/gin-relief-api/internal/config"
	"github.com/franciscosanchezn/gin-relief-api/internal/database"
	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"github.com/franciscosanchezn/gin-relief-api/internal/services"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var sampleSupplies = []models.Supply{
	{Img: "https://i.ibb.co/rice.png", Title: "Rice", Category: "Food", Price: 25, Description: "25kg bag of rice"},
	{Img: "https://i.ibb.co/water.png", Title: "Drinking water", Category: "Water", Price: 8.5, Description: "Pack of twelve 1.5l bottles"},
	{Img: "https://i.ibb.co/blanket.png", Title: "Blankets", Category: "Shelter", Price: 14.99, Description: "Wool blanket, single size"},
	{Img: "https://i.ibb.co/medkit.png", Title: "First aid kit", Category: "Medical", Price: 32, Description: "Bandages, antiseptic and basic medicine"},
}

func main() {
	// Parse command line flags
	name := flag.String("name", "Dev User", "Name of the user to create")
	email := flag.String("email", "dev@relief.local", "Email of the user to create")
	password := flag.String("password", "dev-password-123", "Password of the user to create")
	withSupplies := flag.Bool("supplies", false, "Also insert sample supplies")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := database.Open(ctx, database.DatabaseConfig{
		Driver: conf.DBDriver,
		URI:    conf.DatabaseURL,
		Name:   conf.DBName,
		Path:   conf.DBPath,
	})
	if err != nil {
		log.Fatal("Failed to connect to document store: ", err)
	}
	defer s.Close(context.Background())

	userService := services.NewUserService(s, auth.NewTokenIssuer(conf.JWTSecret, conf.TokenExpires))
	switch err := userService.Register(ctx, *name, *email, *password); {
	case err == nil:
		fmt.Printf("✓ Created user %s <%s>\n", *name, *email)
	case errors.Is(err, services.ErrUserExists):
		fmt.Printf("User %s already exists\n", *email)
	default:
		log.Fatal("Failed to create user: ", err)
	}

	token, err := userService.Authenticate(ctx, *email, *password)
	if err != nil {
		log.Fatal("Failed to log in: ", err)
	}
	fmt.Printf("Token: %s\n", token)

	if *withSupplies {
		supplies := services.NewResourceService(s, models.CollectionSupplies, models.SupplyUpdatableFields)
		for _, supply := range sampleSupplies {
			result, err := supplies.Create(ctx, supply.ToDocument())
			if err != nil {
				log.Fatal("Failed to insert supply: ", err)
			}
			fmt.Printf("✓ Inserted supply %q (ID: %s)\n", supply.Title, result.InsertedID)
		}
	}

	fmt.Println("\nUse the token for testing:")
	fmt.Printf("curl http://localhost:%d/api/v1/supplies \\\n", conf.Port)
	fmt.Printf("  -H 'Authorization: Bearer %s'\n", token)
}
