// Command genkey prints a fresh Fernet key for ENCRYPTION_KEY.
package main

import (
	"fmt"
	"log"

	"github.com/psicare/clinic-scheduling/internal/crypt"
)

func main() {
	key, err := crypt.GenerateKey()
	if err != nil {
		log.Fatalf("generate key: %v", err)
	}
	fmt.Println(key)
}
