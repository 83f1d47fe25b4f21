package configs

import "time"

// TikTok bounds calls to the engagement source.
type TikTok struct {
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
	// RPS is the sustained request rate; Burst the bucket size.
	RPS   float64 `env:"RPS" envDefault:"10"`
	Burst int     `env:"BURST" envDefault:"5"`
}
