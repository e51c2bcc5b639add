package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"veab-goa.backend/pkg/crypto"
)

const passwordEnv = "ADMIN_PASSWORD"

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	fatalfFn       = log.Fatalf
	getenvFn       = os.Getenv
)

var errNoPassword = errors.New("usage: hash-gen <password> (or set " + passwordEnv + ")")

func resolvePassword(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if password := getenvFn(passwordEnv); password != "" {
		return password, nil
	}
	return "", errNoPassword
}

func generateHash(password string) (string, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return "", err
	}
	if !crypto.CheckPassword(password, hash) {
		return "", errors.New("generated hash does not verify")
	}
	return hash, nil
}

// hash-gen prints a bcrypt hash for the ADMIN_PASSWORD_HASH setting.
func main() {
	password, err := resolvePassword(os.Args[1:])
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("ADMIN_PASSWORD_HASH=%s\n", hash)
}
