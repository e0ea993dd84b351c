package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	cashflowr "github.com/JulianVillete/Cashflowr"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

// readPassword prompts for a password without echoing it. A non-terminal
// stdin reads the password from a line instead, for scripting.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		var pw string
		_, err := fmt.Scanln(&pw)
		return pw, err
	}
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// migrateGuestInto moves guest data into a freshly authenticated account,
// at most once, and reports it to the user.
func migrateGuestInto(identity string) error {
	migrated, err := cashflowr.MigrateGuest(dataDir(), identity)
	if err != nil {
		return err
	}
	if migrated {
		fmt.Println("Your guest transactions now belong to this account.")
	}
	return nil
}

// --- Signup Command ---

type signupCmd struct {
	name  string
	email string
}

func (*signupCmd) Name() string     { return "signup" }
func (*signupCmd) Synopsis() string { return "create a new account" }
func (*signupCmd) Usage() string {
	return `signup -name <name> -email <email>

  Creates a new account and logs into it. The password is prompted for.
  Existing guest data is migrated into the new account.
`
}

func (c *signupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name for the account")
	f.StringVar(&c.email, "email", "", "Email address, used to log in")
}

func (c *signupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.email == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return fail(err)
	}

	users, err := openUsers()
	if err != nil {
		return fail(err)
	}
	user, err := users.Signup(c.name, c.email, password)
	if err != nil {
		return fail(err)
	}
	if err := saveUsers(users); err != nil {
		return fail(err)
	}
	if err := migrateGuestInto(user.ID); err != nil {
		return fail(err)
	}
	if err := storeActiveIdentity(user.ID); err != nil {
		return fail(err)
	}

	fmt.Printf("Welcome, %s. You are logged in.\n", user.Name)
	return subcommands.ExitSuccess
}

// --- Login Command ---

type loginCmd struct {
	email string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log into an existing account" }
func (*loginCmd) Usage() string {
	return `login -email <email>

  Logs into an account. The password is prompted for. On the account's first
  login, existing guest data is migrated into it.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email address of the account")
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return fail(err)
	}

	users, err := openUsers()
	if err != nil {
		return fail(err)
	}
	user, err := users.Login(c.email, password)
	if err != nil {
		return fail(err)
	}
	// persist the updated last-login time
	if err := saveUsers(users); err != nil {
		return fail(err)
	}
	if err := migrateGuestInto(user.ID); err != nil {
		return fail(err)
	}
	if err := storeActiveIdentity(user.ID); err != nil {
		return fail(err)
	}

	fmt.Printf("Welcome back, %s.\n", user.Name)
	return subcommands.ExitSuccess
}

// --- Logout Command ---

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "log out of the current account" }
func (*logoutCmd) Usage() string {
	return `logout

  Logs out. Subsequent commands operate on the guest partition.
`
}

func (c *logoutCmd) SetFlags(f *flag.FlagSet) {}

func (c *logoutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := clearActiveIdentity(); err != nil {
		return fail(err)
	}
	fmt.Println("Logged out.")
	return subcommands.ExitSuccess
}
