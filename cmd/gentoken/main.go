// cmd/gentoken/main.go: Firma un token de desarrollo con JWT_SECRET.
// Uso: go run ./cmd/gentoken -user ana -rol cajero -ttl 8h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"sneakerfever/internal/config"
	"sneakerfever/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func main() {
	user := flag.String("user", "admin", "username recorded as actor")
	rol := flag.String("rol", middleware.RolAdministrador, "cajero | supervisor | administrador")
	ttl := flag.Duration("ttl", 8*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no configurado")
		os.Exit(1)
	}
	switch *rol {
	case middleware.RolCajero, middleware.RolSupervisor, middleware.RolAdministrador:
	default:
		fmt.Fprintf(os.Stderr, "rol %q invalido\n", *rol)
		os.Exit(2)
	}

	now := time.Now()
	claims := middleware.JWTClaims{
		UserID:   uuid.NewString(),
		Username: *user,
		Rol:      *rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   *user,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
