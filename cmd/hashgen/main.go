package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/railway_station/internal/auth"
)

// 生成 bcrypt 哈希，用于手工插入或重置账号密码
func main() {
	username := flag.String("username", "admin", "用户名，仅用于输出")
	password := flag.String("password", "admin", "要哈希的明文密码")
	cost := flag.Int("cost", 0, "bcrypt cost，0 表示默认值")
	flag.Parse()

	hashedPassword, err := auth.NewBcryptHasher(*cost).Hash(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Printf("Username: %s\n", *username)
	fmt.Printf("Hashed Password: %s\n", hashedPassword)
}

// UPDATE users SET password_hash = '<hash>', updated_at = CURRENT_TIMESTAMP WHERE username = 'admin';
