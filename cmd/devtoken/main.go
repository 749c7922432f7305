// devtoken 为本地调试签发访问令牌，密钥取自 JWT_SECRET
package main

import (
	"flag"
	"fmt"
	"os"

	"Buddy_Community/internal/config"
	"Buddy_Community/internal/model"
	"Buddy_Community/internal/pkg"
)

func main() {
	email := flag.String("email", "", "user email")
	admin := flag.Bool("admin", false, "sign with admin role")
	ttl := flag.Duration("ttl", pkg.AccessTTL, "token lifetime")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: devtoken -email alice@buddy.gg [-admin] [-ttl 30m]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	pkg.InitJWT(cfg.JWTSecret)

	role := model.RoleUser
	if *admin {
		role = model.RoleAdmin
	}
	token, err := pkg.GenerateAccess(*email, role, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
