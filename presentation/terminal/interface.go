package terminal

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"pinpilot/application/boards"
	"pinpilot/domain/entities"
	"pinpilot/domain/interfaces"
	"pinpilot/infrastructure/ai"
	"pinpilot/infrastructure/media"
	"pinpilot/infrastructure/pinterest"
	"pinpilot/infrastructure/sessions"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type TerminalInterface struct {
	publisher  interfaces.Publisher
	creds      interfaces.CredentialProvider
	copywriter interfaces.Copywriter
	logger     *logrus.Logger
	reader     *bufio.Reader
}

func NewTerminalInterface() (*TerminalInterface, error) {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	// Setup logger
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	store := sessions.NewFileStore(os.Getenv("PINPILOT_SESSION_DIR"), logger)
	stager := media.NewStager(logger)

	// The AI tier is optional: without a key the resolver only does exact
	// matching and compose is unavailable.
	var matcher interfaces.BoardMatcher
	var copywriter interfaces.Copywriter
	if aiClient, err := ai.NewClient(logger); err != nil {
		logger.WithError(err).Warn("AI client unavailable, semantic board matching disabled")
	} else {
		matcher = aiClient
		copywriter = aiClient
	}

	resolver := boards.NewResolver(matcher, logger)

	var opts []pinterest.Option
	if os.Getenv("PINPILOT_HEADLESS") == "true" {
		opts = append(opts, pinterest.WithHeadless(true))
	}
	engine := pinterest.NewEngine(store, stager, resolver, logger, opts...)

	return &TerminalInterface{
		publisher:  engine,
		creds:      envCredentials{},
		copywriter: copywriter,
		logger:     logger,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

func (t *TerminalInterface) Run() error {
	fmt.Println("Pinpilot")
	fmt.Println("========")
	fmt.Println("Commands: login <user> | publish <user> | compose <user> | status <user> | quit")
	fmt.Println()

	for {
		fmt.Print("> ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			return err
		}

		fields := strings.Fields(strings.TrimSpace(input))
		if len(fields) == 0 {
			continue
		}

		cmd := fields[0]
		if cmd == "quit" || cmd == "exit" || cmd == "q" {
			fmt.Println("Bye!")
			return nil
		}

		if len(fields) < 2 {
			fmt.Println("Usage: <command> <user>")
			continue
		}
		userID := fields[1]

		switch cmd {
		case "login":
			t.runLogin(userID)
		case "publish":
			t.runPublish(userID, entities.PinRequest{})
		case "compose":
			t.runCompose(userID)
		case "status":
			t.runStatus(userID)
		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}
		fmt.Println()
	}
}

func (t *TerminalInterface) Close() error {
	return nil
}

func (t *TerminalInterface) runLogin(userID string) {
	creds, err := t.creds.Credentials(userID)
	if err != nil {
		fmt.Printf("Credentials unavailable: %v\n", err)
		return
	}

	fmt.Println("Starting Pinterest login (complete any 2FA in the browser window)...")
	if err := t.publisher.Login(context.Background(), userID, creds); err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}
	fmt.Println("Login successful, session saved")
}

func (t *TerminalInterface) runPublish(userID string, pin entities.PinRequest) {
	if pin.Title == "" {
		pin.Title = t.prompt("Title: ")
	}
	if pin.Description == "" {
		pin.Description = t.prompt("Description (optional): ")
	}
	if pin.ImageRef == "" {
		pin.ImageRef = t.prompt("Image path or URL (optional): ")
	}
	if pin.Board == "" {
		pin.Board = t.prompt("Board: ")
	}

	if err := t.publisher.Publish(context.Background(), userID, pin); err != nil {
		fmt.Printf("Publish failed: %v\n", err)
		return
	}
	fmt.Println("Pin created")
}

func (t *TerminalInterface) runCompose(userID string) {
	if t.copywriter == nil {
		fmt.Println("compose requires an OPENAI_API_KEY")
		return
	}

	product := entities.Product{
		Title:        t.prompt("Product title: "),
		Description:  t.prompt("Product description: "),
		Category:     t.prompt("Category: "),
		TargetBuyers: t.prompt("Target audience: "),
		PainPoints:   t.prompt("Pain points: "),
	}

	content, err := t.copywriter.GeneratePinContent(context.Background(), product)
	if err != nil {
		fmt.Printf("Copy generation failed: %v\n", err)
		return
	}

	fmt.Printf("\nGenerated copy:\n  Title: %s\n  Board: %s\n  Description: %s\n  Hashtags: %s\n\n",
		content.Title, content.Board, content.Description, content.Hashtags)

	t.runPublish(userID, entities.PinRequest{
		Title:       content.Title,
		Description: strings.TrimSpace(content.Description + " " + content.Hashtags),
		ImageRef:    t.prompt("Image path or URL (optional): "),
		Board:       content.Board,
	})
}

func (t *TerminalInterface) runStatus(userID string) {
	active, modified := t.publisher.HasActiveSession(userID)
	if !active {
		fmt.Printf("No Pinterest session for user %s\n", userID)
		return
	}
	fmt.Printf("Session present for user %s, last saved %s\n", userID, modified.Format("2006-01-02 15:04:05"))
}

func (t *TerminalInterface) prompt(label string) string {
	fmt.Print(label)
	line, err := t.reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// envCredentials reads login credentials from the environment. The secret is
// expected plaintext-ready; decrypting stored credentials is the caller's
// concern, never this layer's.
type envCredentials struct{}

func (envCredentials) Credentials(userID string) (entities.Credentials, error) {
	email := os.Getenv("PINTEREST_EMAIL")
	password := os.Getenv("PINTEREST_PASSWORD")
	if email == "" || password == "" {
		return entities.Credentials{}, fmt.Errorf("PINTEREST_EMAIL and PINTEREST_PASSWORD must be set")
	}
	return entities.Credentials{Email: email, Password: password}, nil
}
