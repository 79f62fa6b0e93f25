// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"hackmate/models"

	"gorm.io/gorm"
)

// RunMigrations runs all database migrations. It is exported with the
// *gorm.DB parameter so the test suite can migrate an in-memory database.
func RunMigrations(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Hackathon{},
		&models.Registration{},
		&models.Team{},
		&models.TeamMember{},
		&models.JoinRequest{},
		&models.ProjectIdea{},
		&models.ProjectComment{},
		&models.ProjectEndorsement{},
		&models.Notification{},
	); err != nil {
		return err
	}

	createIndexes(db)

	log.Println("✅ All migrations completed successfully")
	return nil
}

// createIndexes creates indexes AutoMigrate does not cover
func createIndexes(db *gorm.DB) {
	// Team indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_hackathon ON teams(hackathon_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_lead ON teams(team_lead_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_code ON teams(invite_code)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_active ON teams(is_active)")

	// Membership and request indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_team ON team_members(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_members_user ON team_members(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_join_requests_team_status ON join_requests(team_id, status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_join_requests_user ON join_requests(user_id)")

	// Hackathon indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_hackathons_start ON hackathons(start_date)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_registrations_user ON registrations(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_registrations_hackathon ON registrations(hackathon_id)")

	// Project idea indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_project_ideas_hackathon ON project_ideas(hackathon_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_project_comments_project ON project_comments(project_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_project_endorsements_project ON project_endorsements(project_id)")

	// Notification indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications(user_id, is_read)")
}
