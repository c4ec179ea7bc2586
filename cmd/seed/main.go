package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tutormarket/internal/database"
	"tutormarket/internal/domain"
	"tutormarket/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "tutormarket.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM tutor_services")
	db.Exec("DELETE FROM tutor_profiles")
	db.Exec("DELETE FROM subjects")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	subjects := repository.NewSubjectRepository(db)
	tutors := repository.NewTutorRepository(db)
	bookings := repository.NewBookingRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@tutormarket.io",
		Username:     "admin",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Status:       domain.UserActive,
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatal("seed admin failed:", err)
	}
	log.Println("Admin created: admin@tutormarket.io / admin123")

	students := make([]domain.User, 0, 3)
	for i, email := range []string{"alice@example.com", "bolat@example.com", "carla@example.com"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("student123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        email,
			Username:     fmt.Sprintf("student%d", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleStudent,
			Status:       domain.UserActive,
		}
		if err := users.Create(ctx, &u); err != nil {
			log.Fatal("seed student failed:", err)
		}
		students = append(students, u)
	}

	tutorUsers := make([]domain.User, 0, 3)
	for i, email := range []string{"marat@example.com", "nina@example.com", "oleg@example.com"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("tutor123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        email,
			Username:     fmt.Sprintf("tutor%d", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleTutor,
			Status:       domain.UserActive,
		}
		if err := users.Create(ctx, &u); err != nil {
			log.Fatal("seed tutor failed:", err)
		}
		tutorUsers = append(tutorUsers, u)

		profile := domain.TutorProfile{
			UserID:             u.ID,
			FullName:           fmt.Sprintf("Tutor %d", i+1),
			Bio:                "Experienced tutor, online and in person.",
			YearsExperience:    3 + i,
			HourlyRate:         2000 + int64(i)*500,
			VerificationStatus: domain.VerificationVerified,
		}
		if err := tutors.CreateProfile(ctx, &profile); err != nil {
			log.Fatal("seed tutor profile failed:", err)
		}
	}

	// ================== SUBJECTS ==================
	log.Println("Creating subjects...")

	subjectDefs := []domain.Subject{
		{Name: "Mathematics", Level: domain.LevelK12},
		{Name: "Physics", Level: domain.LevelUndergrad},
		{Name: "English", Level: domain.LevelOther},
		{Name: "Algorithms", Level: domain.LevelGraduate},
	}
	for i := range subjectDefs {
		if err := subjects.Create(ctx, &subjectDefs[i]); err != nil {
			log.Fatal("seed subject failed:", err)
		}
	}

	// ================== TUTOR SERVICES ==================
	log.Println("Creating tutor services...")

	services := make([]domain.TutorService, 0)
	for i, tu := range tutorUsers {
		for j := 0; j < 2; j++ {
			svc := domain.TutorService{
				TutorID:    tu.ID,
				SubjectID:  subjectDefs[(i+j)%len(subjectDefs)].ID,
				HourlyRate: 2000 + int64(i)*500,
				Active:     true,
			}
			if err := tutors.CreateService(ctx, &svc); err != nil {
				log.Fatal("seed service failed:", err)
			}
			services = append(services, svc)
		}
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	now := time.Now().UTC().Truncate(time.Hour)
	statuses := []domain.BookingStatus{
		domain.BookingPending,
		domain.BookingConfirmed,
		domain.BookingCompleted,
	}
	for i, status := range statuses {
		svc := services[i%len(services)]
		start := now.Add(time.Duration(24*(i+1)) * time.Hour)
		end := start.Add(90 * time.Minute)
		hours := end.Sub(start).Hours()

		b := domain.Booking{
			StudentID:   students[i%len(students)].ID,
			TutorID:     svc.TutorID,
			ServiceID:   svc.ID,
			SubjectID:   svc.SubjectID,
			StartAt:     start,
			EndAt:       end,
			Hours:       hours,
			TotalAmount: int64(hours * float64(svc.HourlyRate)),
			Status:      status,
		}
		if err := bookings.Create(ctx, &b); err != nil {
			log.Fatal("seed booking failed:", err)
		}
	}

	log.Println("Seed complete.")
	log.Println("Students: alice@example.com / student123 (and friends)")
	log.Println("Tutors:   marat@example.com / tutor123 (and friends)")
}
