package cmd

import "time"

// Config carries all runtime settings. Values come from the environment,
// with local-development defaults applied in main.
type Config struct {
	HTTPPort string

	// StorageBackend selects the order and pharmacist stores:
	// "memory" or "postgres".
	StorageBackend string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string

	// QueueBackend selects the pharmacist queue: "memory" or "redis".
	QueueBackend string
	RedisAddr    string

	// OTCRequiresReview routes OTC orders through the pharmacist queue
	// instead of straight to Fulfillable.
	OTCRequiresReview bool

	// Cancellation policy per role.
	CustomerCanCancel   bool
	PharmacistCanCancel bool

	// ConsultationTimeout bounds how long an order may stay Claimed or
	// InConsultation before the watchdog cancels it.
	ConsultationTimeout time.Duration

	// SettlementURL points at the payment provider. Empty means the local
	// simulator with SettlementLimit as its approval ceiling.
	SettlementURL   string
	SettlementLimit string

	// PrescriptionDir is the root directory for uploaded prescriptions.
	PrescriptionDir string
}
