// Command admintoken prints a signed bearer token for the admin endpoints.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"explorewithme/config"
	"explorewithme/internal/adapters/auth"
	"explorewithme/internal/domain"
)

func main() {
	subject := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	token, err := auth.NewJWT(cfg.JWTSecret).Issue(*subject, []string{domain.RoleAdmin}, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	fmt.Fprintln(os.Stdout, token)
}
