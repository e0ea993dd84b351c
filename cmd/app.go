// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	cashflowr "github.com/JulianVillete/Cashflowr"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&signupCmd{}, "accounts")
	c.Register(&loginCmd{}, "accounts")
	c.Register(&logoutCmd{}, "accounts")

	c.Register(&addCmd{}, "transactions")
	c.Register(&deleteCmd{}, "transactions")
	c.Register(&listCmd{}, "transactions")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&breakdownCmd{}, "reports")
	c.Register(&goalCmd{}, "reports")

	c.Register(&currencyCmd{}, "settings")
	c.Register(&ratesCmd{}, "settings")

	c.Register(&importCmd{}, "data")
	c.Register(&exportCmd{}, "data")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var dataDirFlag = flag.String("data", "", "Path to the data directory; defaults to $CASHFLOWR_DATA or ~/.cashflowr")
var identityFlag = flag.String("u", "", "Identity to operate on, overriding the logged-in account")

// dataDir resolves the data directory at call time, after flags and any .env
// file have been processed.
func dataDir() string {
	if *dataDirFlag != "" {
		return *dataDirFlag
	}
	if dir := os.Getenv("CASHFLOWR_DATA"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cashflowr"
	}
	return filepath.Join(home, ".cashflowr")
}

// currentFile holds the identity of the logged-in account, if any.
func currentFile() string { return filepath.Join(dataDir(), "current") }

// activeIdentity resolves the partition all commands operate on: the -u flag
// wins, then the logged-in account, then the guest partition.
func activeIdentity() string {
	if *identityFlag != "" {
		return *identityFlag
	}
	data, err := os.ReadFile(currentFile())
	if err != nil {
		return cashflowr.GuestPartition
	}
	return strings.TrimSpace(string(data))
}

// storeActiveIdentity persists the logged-in account's identity.
func storeActiveIdentity(identity string) error {
	if err := os.MkdirAll(dataDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(currentFile(), []byte(identity+"\n"), 0644)
}

// clearActiveIdentity logs out. Being already logged out is fine.
func clearActiveIdentity() error {
	err := os.Remove(currentFile())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// openSession opens the active identity's session against the data
// directory, with the live rate source attached.
func openSession() (*cashflowr.Session, error) {
	return cashflowr.OpenSession(dataDir(), activeIdentity(), rateSource())
}

func rateSource() cashflowr.RateSource {
	api := &cashflowr.ExchangeRateAPI{}
	if addr := os.Getenv("CASHFLOWR_RATES_URL"); addr != "" {
		api.URL = addr
	}
	return api
}

// openUsers loads the account registry.
func openUsers() (*cashflowr.Users, error) {
	return cashflowr.LoadUsers(dataDir())
}

func saveUsers(u *cashflowr.Users) error {
	return cashflowr.SaveUsers(dataDir(), u)
}

// fail prints an error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
