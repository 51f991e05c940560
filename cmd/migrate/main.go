package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"dermascan/internal/repository/sqlite"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dbPath := flag.String("db", filepath.Join("data", "dermascan.db"), "Database path")
	username := flag.String("username", "", "Optional initial user to create")
	password := flag.String("password", "", "Password for the initial user")
	flag.Parse()

	fmt.Printf("Migrating database %s\n", *dbPath)

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	// New runs the schema migration
	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("Schema is up to date")

	if *username != "" {
		if *password == "" {
			log.Fatal("A password is required when creating a user")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		users := sqlite.NewUserRepository(db)
		id, err := users.Create(*username, string(hash))
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", *username, err)
		}
		fmt.Printf("Created user %s (id %d)\n", *username, id)
	}

	predictions := sqlite.NewPredictionRepository(db)
	counts, err := predictions.CountsByLabel()
	if err == nil && len(counts) > 0 {
		fmt.Println("\nStored predictions per label:")
		for label, count := range counts {
			fmt.Printf("   - %s: %d\n", label, count)
		}
	}
}
