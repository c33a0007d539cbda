package cmd

import (
	ishell "github.com/abiosoft/ishell"
	"github.com/common-nighthawk/go-figure"

	"github.com/askhatb/challenge-on/internal/client/api"
	"github.com/askhatb/challenge-on/internal/client/session"
)

// Command defines one shell command: its name, a short description and the
// function executed when the command is invoked.
type Command struct {
	Name string
	Desc string
	Func func(c *ishell.Context)
}

var (
	shell     *ishell.Shell
	apiClient *api.Client
	loggedIn  bool

	guestCommands []Command
	userCommands  []Command
)

// Init builds the shell and registers the command set matching the stored
// session state. A session token found in the keyring is reused until the
// server rejects it.
func Init(client *api.Client) {
	apiClient = client
	shell = ishell.New()

	figure.NewFigure("ChallengeOn", "", true).Print()
	shell.Println("Type 'help' to see available commands.")

	if token, err := session.Token(); err == nil {
		apiClient.Token = token
		loggedIn = true
	}

	guestCommands = []Command{loginCommand()}
	userCommands = []Command{
		whoamiCommand(),
		listCommand(),
		viewCommand(),
		newCommand(),
		editCommand(),
		deleteCommand(),
		logCommand(),
		logsCommand(),
		calendarCommand(),
		logoutCommand(),
	}

	if loggedIn {
		addCommands(shell, userCommands)
	} else {
		addCommands(shell, guestCommands)
	}
}

// Execute runs the interactive shell until the user exits.
func Execute() {
	shell.Run()
}

func addCommands(sh *ishell.Shell, commands []Command) {
	for _, command := range commands {
		command := command
		sh.AddCmd(&ishell.Cmd{
			Name: command.Name,
			Help: command.Desc,
			Func: command.Func,
		})
	}
}

func switchToUserCommands() {
	for _, command := range guestCommands {
		shell.DeleteCmd(command.Name)
	}
	addCommands(shell, userCommands)
	loggedIn = true
}

func switchToGuestCommands() {
	for _, command := range userCommands {
		shell.DeleteCmd(command.Name)
	}
	addCommands(shell, guestCommands)
	loggedIn = false
}

func loginCommand() Command {
	return Command{
		Name: "login",
		Desc: "Sign in with a Google ID token",
		Func: func(c *ishell.Context) {
			c.Println("Paste the Google ID token obtained from your Google sign-in flow.")
			var idToken string
			for {
				c.Print("ID token: ")
				idToken = c.ReadLine()
				if idToken != "" {
					break
				}
				c.Println("Token cannot be empty.")
			}

			resp, err := apiClient.SignIn(idToken)
			if err != nil {
				c.Println("Sign-in failed: " + err.Error())
				return
			}

			if err := session.Save(resp.Token, resp.User); err != nil {
				c.Println("Warning: could not store the session: " + err.Error())
			}

			c.Printf("Welcome, %s! You are now signed in.\n", resp.User.Name)
			switchToUserCommands()
		},
	}
}

func logoutCommand() Command {
	return Command{
		Name: "logout",
		Desc: "Sign out and forget the stored session",
		Func: func(c *ishell.Context) {
			if err := session.Clear(); err != nil {
				c.Println("Failed to clear session: " + err.Error())
				return
			}
			apiClient.Token = ""
			c.Println("Signed out.")
			switchToGuestCommands()
		},
	}
}

func whoamiCommand() Command {
	return Command{
		Name: "whoami",
		Desc: "Show the signed-in user",
		Func: func(c *ishell.Context) {
			user, err := apiClient.Me()
			if err != nil {
				c.Println("Error: " + err.Error())
				return
			}
			c.Printf("%s <%s>\n", user.Name, user.Email)
		},
	}
}
