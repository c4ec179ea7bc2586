package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every table the repositories
// touch. Used by the seed command and local development.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&subjectModel{},
		&tutorProfileModel{},
		&tutorServiceModel{},
		&bookingModel{},
		&reviewModel{},
		&notificationModel{},
		&messageModel{},
	); err != nil {
		return err
	}
	return addBookingOverlapConstraint(db)
}

// addBookingOverlapConstraint installs the exclusion constraint that makes
// tutor calendar consistency a database guarantee. The application-level
// overlap check races between read and write; this constraint rejects the
// loser at commit with SQLSTATE 23P01, which the booking service maps to
// ErrTutorBusy. Only confirmed and in-progress sessions occupy the calendar,
// so pending requests may still pile up on the same window.
//
// Postgres only. The sqlite dev database keeps the application check alone.
func addBookingOverlapConstraint(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	return db.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_tutor_overlap
				EXCLUDE USING gist (
					tutor_id WITH =,
					tsrange(start_at, end_at) WITH &&
				) WHERE (status IN ('confirmed', 'in_progress'));
		EXCEPTION
			WHEN duplicate_object THEN NULL;
		END $$
	`).Error
}
