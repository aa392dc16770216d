// Package main implements the keygen operator tool.
//
// keygen generates the two kinds of credentials the API uses:
//
//	go run ./cmd/ops/keygen              # API key + SHA-256 digest
//	go run ./cmd/ops/keygen -admin       # admin key + bcrypt hash
//
// The API key output pairs the plaintext (hand it to the client) with the
// digest to insert into api_clients.key_hash. The admin output pairs the
// plaintext operator key with the bcrypt hash to set as ADMIN_KEY_HASH;
// the plaintext never goes into configuration.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"golfphysics/internal/auth"
)

func main() {
	admin := flag.Bool("admin", false, "generate an operator key and its bcrypt hash")
	flag.Parse()

	if err := run(*admin); err != nil {
		fmt.Fprintf(os.Stderr, "keygen: %v\n", err)
		os.Exit(1)
	}
}

func run(admin bool) error {
	if admin {
		return generateAdminKey()
	}
	return generateClientKey()
}

func generateClientKey() error {
	plaintext, digest, err := auth.GenerateAPIKey()
	if err != nil {
		return err
	}
	clientID, err := auth.GenerateClientID()
	if err != nil {
		return err
	}

	fmt.Printf("client_id: %s\n", clientID)
	fmt.Printf("api_key:   %s\n", plaintext)
	fmt.Printf("key_hash:  %s\n", digest)
	fmt.Println("\nStore only key_hash. The api_key above is shown once.")
	return nil
}

func generateAdminKey() error {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generating operator key: %w", err)
	}
	plaintext := hex.EncodeToString(buf)

	hash, err := auth.HashAdminKey(plaintext)
	if err != nil {
		return err
	}

	fmt.Printf("admin_key:      %s\n", plaintext)
	fmt.Printf("ADMIN_KEY_HASH: %s\n", hash)
	fmt.Println("\nSet ADMIN_KEY_HASH in the environment; keep admin_key in the team vault.")
	return nil
}
