package database

import (
	"errors"
	"time"

	"givegot_backend/internal/logger"
	"givegot_backend/internal/models"

	"gorm.io/gorm"
)

type seedUser struct {
	Email      string
	Name       string
	AvatarURL  string
	Bio        string
	GivePoints int
	Teaches    []string
	Wants      []string
}

type seedBooking struct {
	MentorEmail string
	MenteeEmail string
	StartTime   time.Time
	EndTime     time.Time
	Note        string
	Rating      int
	Comment     string
}

// SeedDemoData loads a small demo dataset for local development. A second
// run is a no-op; any existing user is taken as proof the data is there.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Demo data already present, skipping seed")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		skills := map[string]string{
			"ReactJS":      "reactjs",
			"NodeJS":       "nodejs",
			"Python":       "python",
			"UI/UX Design": "ui-ux-design",
			"Marketing":    "marketing",
			"IELTS":        "ielts",
		}
		skillByName := make(map[string]*models.Skill, len(skills))
		for name, slug := range skills {
			skill := &models.Skill{Name: name, Slug: slug}
			if err := tx.Create(skill).Error; err != nil {
				return err
			}
			skillByName[name] = skill
		}

		users := []seedUser{
			{
				Email:      "mentor@example.com",
				Name:       "Alice Johnson",
				AvatarURL:  "https://api.dicebear.com/7.x/avataaars/svg?seed=1",
				Bio:        "Senior Full-Stack Developer with 10 years of experience. Love teaching ReactJS and NodeJS!",
				GivePoints: 15,
				Teaches:    []string{"ReactJS", "NodeJS"},
			},
			{
				Email:      "mentee@example.com",
				Name:       "Bob Smith",
				AvatarURL:  "https://api.dicebear.com/7.x/avataaars/svg?seed=2",
				Bio:        "Computer Science student eager to learn web development and land my first job.",
				GivePoints: 3,
				Wants:      []string{"ReactJS", "Python"},
			},
			{
				Email:      "design.guru@example.com",
				Name:       "Carol Designer",
				AvatarURL:  "https://api.dicebear.com/7.x/avataaars/svg?seed=3",
				Bio:        "UX/UI Designer specializing in beautiful, user-friendly interfaces. 5+ years in the industry.",
				GivePoints: 20,
				Teaches:    []string{"UI/UX Design"},
			},
			{
				Email:      "newbie@example.com",
				Name:       "David Lee",
				AvatarURL:  "https://api.dicebear.com/7.x/avataaars/svg?seed=4",
				Bio:        "Marketing professional transitioning to tech. Want to learn Python for data analysis.",
				GivePoints: 3,
				Wants:      []string{"Python", "Marketing"},
			},
			{
				Email:      "python.expert@example.com",
				Name:       "Emma Python",
				AvatarURL:  "https://api.dicebear.com/7.x/avataaars/svg?seed=5",
				Bio:        "Data Scientist and Python expert. Teaching Python for web development, data analysis, and machine learning.",
				GivePoints: 25,
				Teaches:    []string{"Python"},
			},
			{
				Email:      "english.teacher@example.com",
				Name:       "Frank Williams",
				AvatarURL:  "https://api.dicebear.com/7.x/avataaars/svg?seed=6",
				Bio:        "IELTS instructor with 8+ years of experience. Helped 200+ students achieve their target scores.",
				GivePoints: 30,
				Teaches:    []string{"IELTS"},
			},
		}

		userByEmail := make(map[string]*models.User, len(users))
		for i := range users {
			user := &models.User{
				Email:      users[i].Email,
				Name:       users[i].Name,
				AvatarURL:  users[i].AvatarURL,
				Bio:        users[i].Bio,
				GivePoints: users[i].GivePoints,
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			userByEmail[user.Email] = user

			for _, name := range users[i].Teaches {
				if err := linkSkill(tx, user.ID, skillByName[name], models.SkillTypeGive); err != nil {
					return err
				}
			}
			for _, name := range users[i].Wants {
				if err := linkSkill(tx, user.ID, skillByName[name], models.SkillTypeWant); err != nil {
					return err
				}
			}
		}

		bookings := []seedBooking{
			{
				MentorEmail: "mentor@example.com",
				MenteeEmail: "mentee@example.com",
				StartTime:   time.Date(2024, 2, 15, 14, 0, 0, 0, time.UTC),
				EndTime:     time.Date(2024, 2, 15, 15, 0, 0, 0, time.UTC),
				Note:        "Need help with React hooks",
				Rating:      5,
				Comment:     "Excellent session on Next.js. Alice knows her stuff and made complex topics easy to understand.",
			},
			{
				MentorEmail: "mentor@example.com",
				MenteeEmail: "newbie@example.com",
				StartTime:   time.Date(2024, 2, 10, 10, 0, 0, 0, time.UTC),
				EndTime:     time.Date(2024, 2, 10, 11, 0, 0, 0, time.UTC),
				Note:        "Introduction to React",
				Rating:      5,
				Comment:     "Alice is an amazing mentor! She explained React hooks so clearly and patiently. Highly recommend!",
			},
			{
				MentorEmail: "python.expert@example.com",
				MenteeEmail: "newbie@example.com",
				StartTime:   time.Date(2024, 2, 12, 16, 0, 0, 0, time.UTC),
				EndTime:     time.Date(2024, 2, 12, 17, 0, 0, 0, time.UTC),
				Note:        "Python basics for data analysis",
				Rating:      4,
				Comment:     "Very helpful Python session. Emma is patient and explains things well.",
			},
			{
				MentorEmail: "design.guru@example.com",
				MenteeEmail: "mentee@example.com",
				StartTime:   time.Date(2024, 2, 18, 13, 0, 0, 0, time.UTC),
				EndTime:     time.Date(2024, 2, 18, 14, 0, 0, 0, time.UTC),
				Note:        "UI/UX principles for beginners",
				Rating:      5,
				Comment:     "Carol helped me understand UI/UX principles beautifully. Great mentor!",
			},
		}

		for _, b := range bookings {
			mentor, mentee := userByEmail[b.MentorEmail], userByEmail[b.MenteeEmail]
			if mentor == nil || mentee == nil {
				return errors.New("seed booking references unknown user")
			}

			booking := &models.Booking{
				MentorID:  mentor.ID,
				MenteeID:  mentee.ID,
				StartTime: b.StartTime,
				EndTime:   b.EndTime,
				Status:    models.BookingStatusCompleted,
				Note:      b.Note,
			}
			if err := tx.Create(booking).Error; err != nil {
				return err
			}

			review := &models.Review{
				BookingID:  booking.ID,
				ReceiverID: mentor.ID,
				AuthorID:   mentee.ID,
				Rating:     b.Rating,
				Comment:    b.Comment,
			}
			if err := tx.Create(review).Error; err != nil {
				return err
			}
		}

		logger.Info("Demo data seeded",
			"skills", len(skillByName),
			"users", len(userByEmail),
			"bookings", len(bookings),
		)
		return nil
	})
}

func linkSkill(tx *gorm.DB, userID string, skill *models.Skill, skillType models.SkillType) error {
	if skill == nil {
		return errors.New("seed user references unknown skill")
	}
	return tx.Create(&models.UserSkill{
		UserID:  userID,
		SkillID: skill.ID,
		Type:    skillType,
	}).Error
}
