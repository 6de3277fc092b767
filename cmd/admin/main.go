// Админская CLI-утилита: бан/разбан пользователей и быстрая статистика
// без поднятия HTTP API.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"arendago/backend/internal/config"
	"arendago/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	s := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "ban":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin ban <telegram_id> [duration_in_days]")
			os.Exit(1)
		}
		telegramID := parseTelegramID(os.Args[2])
		days := 7
		if len(os.Args) > 3 {
			days, err = strconv.Atoi(os.Args[3])
			if err != nil || days <= 0 {
				fmt.Println("Invalid duration. Please provide a positive integer.")
				os.Exit(1)
			}
		}
		if err := banUser(s, telegramID, days); err != nil {
			log.Fatalf("Error banning user: %v", err)
		}
		fmt.Printf("User %d has been banned for %d days.\n", telegramID, days)

	case "unban":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unban <telegram_id>")
			os.Exit(1)
		}
		telegramID := parseTelegramID(os.Args[2])
		if err := unbanUser(s, telegramID); err != nil {
			log.Fatalf("Error unbanning user: %v", err)
		}
		fmt.Printf("User %d has been unbanned.\n", telegramID)

	case "stats":
		if err := printStats(s); err != nil {
			log.Fatalf("Error computing stats: %v", err)
		}

	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <ban|unban|stats> [args]")
	os.Exit(1)
}

func parseTelegramID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Println("Invalid telegram id. Please provide an integer.")
		os.Exit(1)
	}
	return id
}

func banUser(s *storage.Service, telegramID int64, days int) error {
	user, err := s.GetUserByTelegramID(telegramID)
	if err != nil {
		return err
	}
	until := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	user.BannedUntil = &until
	return s.SaveUser(user)
}

func unbanUser(s *storage.Service, telegramID int64) error {
	user, err := s.GetUserByTelegramID(telegramID)
	if err != nil {
		return err
	}
	user.Banned = false
	user.BannedUntil = nil
	return s.SaveUser(user)
}

func printStats(s *storage.Service) error {
	users, err := s.CountUsers()
	if err != nil {
		return err
	}
	listings, err := s.CountListings()
	if err != nil {
		return err
	}
	complaints, err := s.CountComplaints()
	if err != nil {
		return err
	}
	blacklisted, err := s.CountBlacklist()
	if err != nil {
		return err
	}
	fmt.Printf("Users:       %d\n", users)
	fmt.Printf("Listings:    %d\n", listings)
	fmt.Printf("Complaints:  %d\n", complaints)
	fmt.Printf("Blacklisted: %d\n", blacklisted)
	return nil
}
