package store

import (
	"time"

	"github.com/google/uuid"

	"notenexus/models"
)

// DemoUser is the profile the simulated backend resolves every login to.
func DemoUser() models.User {
	return models.User{
		ID:          "demo-user-1",
		Email:       "user@example.com",
		DisplayName: "Demo User",
		IsVerified:  false,
		Preferences: models.DefaultPreferences(),
	}
}

// FixtureData seeds the collections a fresh login starts with. Label IDs
// are generated per seeding, so note references always resolve.
func FixtureData(userID string) ([]models.Note, []models.Label) {
	personal := models.Label{ID: uuid.New().String(), UserID: userID, Name: "Personal"}
	work := models.Label{ID: uuid.New().String(), UserID: userID, Name: "Work"}
	ideas := models.Label{ID: uuid.New().String(), UserID: userID, Name: "Ideas"}

	now := time.Now()
	notes := []models.Note{
		{
			ID:        uuid.New().String(),
			Title:     "Welcome to NoteNexus!",
			Content:   "This is your first note. You can edit it, pin it, add labels, and more!",
			IsPinned:  true,
			CreatedAt: now,
			UpdatedAt: now,
			Color:     "#FEF7CD",
			UserID:    userID,
			LabelIDs:  []string{personal.ID},
		},
		{
			ID:        uuid.New().String(),
			Title:     "Project Ideas",
			Content:   "1. Build a personal website\n2. Learn a new programming language\n3. Start a blog",
			CreatedAt: now.Add(-24 * time.Hour),
			UpdatedAt: now.Add(-24 * time.Hour),
			Color:     "#D3E4FD",
			UserID:    userID,
			LabelIDs:  []string{work.ID, ideas.ID},
		},
		{
			ID:        uuid.New().String(),
			Title:     "Shopping List",
			Content:   "- Milk\n- Eggs\n- Bread\n- Fruits",
			CreatedAt: now.Add(-48 * time.Hour),
			UpdatedAt: now.Add(-48 * time.Hour),
			Color:     "#F2FCE2",
			UserID:    userID,
			LabelIDs:  []string{personal.ID},
		},
	}

	return notes, []models.Label{personal, work, ideas}
}
