package main

import (
	"os"
)

// @title pet-social API
// @version 1.0
// @description Perfiles de mascotas con imagen de perfil en object storage.
// @BasePath /
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
