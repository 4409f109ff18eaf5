package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"kalkulori/database"
	"kalkulori/internal/logger"
	"kalkulori/internal/utils"

	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func main() {
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "foods.json", "JSON file with catalog foods")
	importVerified := importCmd.Bool("verified", true, "Mark imported foods as verified")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	if err := logger.Initialize(os.Getenv("LOG_LEVEL")); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	switch os.Args[1] {
	case "import":
		importCmd.Parse(os.Args[2:])
		database.ConnectDatabase()
		if err := database.MigrateDatabase(); err != nil {
			log.Fatalf("Error running migrations: %v", err)
		}

		log.Printf("Importing foods from %s", *importFile)
		inserted, skipped, err := utils.ImportFoods(*importFile, *importVerified)
		if err != nil {
			log.Fatalf("Error importing foods: %v", err)
		}
		log.Printf("Imported %d foods (%d skipped)", inserted, skipped)

	case "clear":
		database.ConnectDatabase()

		deleted, err := utils.ClearFoods()
		if err != nil {
			log.Fatalf("Error clearing foods: %v", err)
		}
		log.Printf("Deleted %d foods", deleted)

	case "stats":
		database.ConnectDatabase()

		total, verified, err := utils.FoodCount()
		if err != nil {
			log.Fatalf("Error getting stats: %v", err)
		}
		log.Printf("Catalog foods: %d total, %d verified", total, verified)

	case "help":
		printHelp()

	default:
		fmt.Printf("Unknown subcommand: %s\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Food catalog tool for kalkulori")
	fmt.Println("\nUsage:")
	fmt.Println("  seed COMMAND [OPTIONS]")
	fmt.Println("\nCommands:")
	fmt.Println("  import       Import catalog foods from a JSON file")
	fmt.Println("               Options:")
	fmt.Println("                 --file=PATH      JSON file with a food array (default: foods.json)")
	fmt.Println("                 --verified=BOOL  Mark imported foods as verified (default: true)")
	fmt.Println("")
	fmt.Println("  clear        Delete every catalog food")
	fmt.Println("  stats        Show catalog counts")
	fmt.Println("  help         Show this help message")
	fmt.Println("")
	fmt.Println("Environment variables:")
	fmt.Println("  DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE")
}
