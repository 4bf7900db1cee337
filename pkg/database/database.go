package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/healthcrm/healthcrm-api/internal/config"
	"github.com/healthcrm/healthcrm-api/internal/domain"
	"github.com/healthcrm/healthcrm-api/internal/domain/appointment"
	"github.com/healthcrm/healthcrm-api/internal/domain/doctor"
	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
	mr "github.com/healthcrm/healthcrm-api/internal/domain/medicalrecord"
	"github.com/healthcrm/healthcrm-api/internal/domain/patient"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
		// Surface unique/FK violations as gorm.ErrDuplicatedKey and
		// gorm.ErrForeignKeyViolated so the services can map them.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"clinic", "auth", "audit"} // logical namespace
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&domain.User{},
		&domain.AuditLog{},
		&doctor.Doctor{},
		&patient.Patient{},
		&mr.MedicalRecord{},
		&examination.Examination{},
		&appointment.Appointment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createConstraints(db); err != nil {
		return fmt.Errorf("creating constraints: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// createConstraints adds the referential and uniqueness guards that AutoMigrate
// does not express: the pre-write checks in the services are advisory, these
// are the authoritative ones.
func createConstraints(db *gorm.DB) error {
	stmts := []string{
		// A patient always belongs to a doctor; the doctor cannot be removed
		// from under it.
		`ALTER TABLE clinic.patients ADD CONSTRAINT fk_patients_doctor
			FOREIGN KEY (doctor_id) REFERENCES clinic.doctors (id) ON DELETE RESTRICT`,

		`ALTER TABLE clinic.medical_records ADD CONSTRAINT fk_medical_records_patient
			FOREIGN KEY (patient_id) REFERENCES clinic.patients (id) ON DELETE RESTRICT`,
		`ALTER TABLE clinic.medical_records ADD CONSTRAINT fk_medical_records_doctor
			FOREIGN KEY (doctor_id) REFERENCES clinic.doctors (id) ON DELETE RESTRICT`,

		`ALTER TABLE clinic.examinations ADD CONSTRAINT fk_examinations_patient
			FOREIGN KEY (patient_id) REFERENCES clinic.patients (id) ON DELETE RESTRICT`,
		`ALTER TABLE clinic.examinations ADD CONSTRAINT fk_examinations_doctor
			FOREIGN KEY (doctor_id) REFERENCES clinic.doctors (id) ON DELETE RESTRICT`,

		`ALTER TABLE clinic.appointments ADD CONSTRAINT fk_appointments_patient
			FOREIGN KEY (patient_id) REFERENCES clinic.patients (id) ON DELETE RESTRICT`,
		`ALTER TABLE clinic.appointments ADD CONSTRAINT fk_appointments_doctor
			FOREIGN KEY (doctor_id) REFERENCES clinic.doctors (id) ON DELETE RESTRICT`,
		`ALTER TABLE clinic.appointments ADD CONSTRAINT fk_appointments_examination
			FOREIGN KEY (examination_id) REFERENCES clinic.examinations (id)`,
		`ALTER TABLE clinic.appointments ADD CONSTRAINT fk_appointments_medical_record
			FOREIGN KEY (medical_record_id) REFERENCES clinic.medical_records (id)`,

		// One appointment per examination. NULLs are exempt, so the partial
		// predicate just documents intent.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_examination_id
			ON clinic.appointments (examination_id) WHERE examination_id IS NOT NULL`,
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			// Re-running migrations hits "already exists" for the ALTERs;
			// that is expected and not a failure.
			if isDuplicateObject(err) {
				continue
			}
			return err
		}
	}

	return nil
}

func isDuplicateObject(err error) bool {
	// 42710 duplicate_object, 42P07 duplicate_table
	return strings.Contains(err.Error(), "already exists")
}
