package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Kariqs/amexan-store/initializers"
	"github.com/Kariqs/amexan-store/routes"
)

func init() {
	initializers.LoadEnv()
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	initializers.Config = cfg
	initializers.ConnectToDB()
	initializers.ConnectToRedis()
	initializers.SyncDatabase()
	initializers.SetupCollaborators()
	initializers.SeedAdmin()
}

func main() {
	defer initializers.Close()

	server := gin.Default()
	routes.Setup(server)
	if err := server.Run(":" + initializers.Config.Port); err != nil {
		log.Println("Server stopped:", err)
	}
}
