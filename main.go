package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env next to the binary; real environment wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("env: %v", err)
	}

	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Printf("reservas: %v", err)
		os.Exit(1)
	}
}
