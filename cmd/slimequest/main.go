// Package main is the entry point for SlimeQuest.
package main

import (
	"log"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("slimequest: %v", err)
		os.Exit(1)
	}
}
