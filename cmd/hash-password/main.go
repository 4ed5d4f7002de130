// Command hash-password prints bcrypt hashes for the given passwords, in the
// form the server stores them when auth.hash_passwords is enabled. It is
// meant for seeding accounts and for checking existing hashes by hand.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/account-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-password [-cost n] password...")
		os.Exit(2)
	}
	if err := hashAll(os.Stdout, auth.NewBcryptHasher(*cost), flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// hashAll writes one hash per password, in argument order.
func hashAll(w io.Writer, hasher auth.PasswordHasher, passwords []string) error {
	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, hash); err != nil {
			return err
		}
	}
	return nil
}
