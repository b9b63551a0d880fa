package config

import "time"

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration

// Configuration holds the settings of every subcommand.
type Configuration struct {
	Server    Server    `debugmap:"visible"`
	Tester    Tester    `debugmap:"visible"`
	Auth      Auth      `debugmap:"hidden"`
	Log       Log       `debugmap:"visible"`
	Validator Validator `debugmap:"visible"`
	MailSink  MailSink  `debugmap:"hidden"`
}

type Server struct {
	HTTPPort      int    `default:"8000"`
	ServerMode    string `default:"dev"`
	StaticsFolder string
}

// Tester configures the connection test orchestrator.
type Tester struct {
	ValidatorURL   string        `default:"http://localhost:8001"`
	RequestTimeout time.Duration `default:"30s"`
	ResetDelay     time.Duration `default:"5s"`
	NumWorkers     int           `default:"2"`
}

// Auth is the login gate. The gate is open unless both are set.
type Auth struct {
	Username string
	Password string
}

type Log struct {
	Level  string `default:"info"`
	Format string `default:"console"`
	// File enables rotation through lumberjack when set.
	File       string
	MaxSizeMB  int `default:"50"`
	MaxBackups int `default:"3"`
	MaxAgeDays int `default:"7"`
}

// Validator configures the SMTP validation service.
type Validator struct {
	HTTPPort            int           `default:"8001"`
	Timeout             time.Duration `default:"10s"`
	AllowPrivateTargets bool
	RateLimit           float64 `default:"5"`
	RateBurst           int     `default:"10"`
	HeloName            string  `default:"localhost"`
	Version             string  `default:"1.0"`
}

// MailSink configures the fake SMTP gateway.
type MailSink struct {
	Addr            string `default:"0.0.0.0:587"`
	Domain          string `default:"localhost"`
	Username        string `default:"printer@local.test"`
	Password        string
	STARTTLS        bool          `default:"true"`
	ReadTimeout     time.Duration `default:"60s"`
	WriteTimeout    time.Duration `default:"10s"`
	MaxMessageBytes int64         `default:"10485760"`
	MaxRecipients   int           `default:"100"`
}
