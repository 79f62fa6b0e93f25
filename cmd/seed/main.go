package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"hackmate/database"
	"hackmate/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type seedFile struct {
	Hackathons []seedHackathon `json:"hackathons"`
	Users      []seedUser      `json:"users"`
}

type seedHackathon struct {
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Location             string    `json:"location"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	MaxTeamSize          int       `json:"max_team_size"`
}

type seedUser struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	seedPath := "./seed/demo.json"
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		log.Fatal("Failed to read seed file:", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		log.Fatal("Failed to parse seed file:", err)
	}

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	fmt.Printf("Found %d hackathons, %d users\n\n", len(seed.Hackathons), len(seed.Users))

	imported := 0
	for _, h := range seed.Hackathons {
		var existing models.Hackathon
		if err := db.Where("name = ?", h.Name).First(&existing).Error; err == nil {
			fmt.Printf("Skipping (exists): %s\n", h.Name)
			continue
		}

		hackathon := models.Hackathon{
			Name:                 h.Name,
			Description:          h.Description,
			Location:             h.Location,
			RegistrationDeadline: h.RegistrationDeadline,
			StartDate:            h.StartDate,
			EndDate:              h.EndDate,
			MaxTeamSize:          h.MaxTeamSize,
		}
		if err := db.Create(&hackathon).Error; err != nil {
			log.Fatal("Failed to insert hackathon:", err)
		}
		fmt.Printf("Imported: %s\n", h.Name)
		imported++
	}

	for _, u := range seed.Users {
		var existing models.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			fmt.Printf("Skipping (exists): %s\n", u.Username)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}

		email := u.Email
		user := models.User{
			Username: u.Username,
			Email:    &email,
			Password: string(hash),
			Bio:      u.Bio,
			Skills:   u.Skills,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatal("Failed to insert user:", err)
		}
		fmt.Printf("Imported: %s\n", u.Username)
		imported++
	}

	fmt.Printf("\nDone. %d records imported.\n", imported)
}
