package main

import (
	"context"
	"flag"
	"log"
	"os"

	"todo_webapp/internal/supabase"

	"github.com/joho/godotenv"
)

// Registers an admin account against the identity service, so a fresh
// deployment has someone who can pass the access guard.
func main() {
	_ = godotenv.Load()

	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: create_admin -email <email> -password <password>")
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	anonKey := os.Getenv("SUPABASE_ANON_KEY")
	if supabaseURL == "" || anonKey == "" {
		log.Fatal("SUPABASE_URL and SUPABASE_ANON_KEY must be set")
	}

	client := supabase.NewAuthClient(supabaseURL, anonKey)

	user, err := client.SignUp(context.Background(), *email, *password, map[string]any{
		"role": "admin",
	})
	if err != nil {
		log.Fatalf("sign-up failed: %v", err)
	}

	log.Printf("admin created id=%s email=%s\n", user.ID, user.Email)
}
