package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"strings"

	"rechord-client/api"
	"rechord-client/config"
	"rechord-client/models"
	"rechord-client/reaction"
	"rechord-client/session"
	"rechord-client/store"
	"rechord-client/syncer"
	"rechord-client/telemetry"
	"rechord-client/utils"

	"github.com/joho/godotenv"
)

var (
	loadEnv           = godotenv.Load
	loadConfig        = config.Load
	initTelemetry     = telemetry.Init
	sessionFromEnv    = session.FromEnv
	sessionFromSecret = session.FromSecret
	openDraftStore    = func(cfg config.DraftConfig) (store.DraftStore, error) { return store.NewSQLiteStore(cfg) }
	logFatal          = log.Fatal
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		logFatal(err)
	}
}

func run(args []string) error {
	if err := loadEnv(); err != nil {
		log.Println("No .env file found; using system environment variables")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx := context.Background()
	shutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("telemetry error: %w", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	sess, err := currentSession(cfg)
	if err != nil {
		return err
	}

	client := api.NewClient(cfg)

	if len(args) == 0 {
		return fmt.Errorf("usage: rechord-client <show|save|like|unlike> [flags]")
	}

	switch args[0] {
	case "show":
		return showProfile(ctx, cfg, client, sess)
	case "save":
		return saveProfile(ctx, cfg, client, sess, args[1:])
	case "like", "unlike":
		return reactToVoice(client, sess, args[0], args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// currentSession resolves credentials: a Secrets Manager secret in prod when
// configured, the local environment otherwise.
func currentSession(cfg config.Config) (session.Session, error) {
	secretName := os.Getenv("RECHORD_SESSION_SECRET")
	if cfg.AppEnv == "prod" && secretName != "" {
		sess, err := sessionFromSecret(secretName)
		if err != nil {
			return nil, fmt.Errorf("session error: %w", err)
		}
		return sess, nil
	}
	return sessionFromEnv(), nil
}

func showProfile(ctx context.Context, cfg config.Config, client *api.Client, sess session.Session) error {
	drafts, err := openDraftStore(cfg.Drafts)
	if err != nil {
		return err
	}
	defer drafts.Close()

	controller := syncer.NewController(client, drafts)
	if restored, err := controller.RestoreDraft(ctx); err != nil {
		log.Printf("draft restore failed: %v", err)
	} else if restored {
		log.Println("Restored local draft")
	}

	if err := controller.Load(ctx, sess); err != nil {
		return err
	}

	profile := controller.Profile()
	fmt.Printf("id:        %d\n", profile.ID)
	fmt.Printf("name:      %s\n", profile.Name)
	fmt.Printf("username:  %s\n", profile.Username)
	fmt.Printf("email:     %s\n", profile.Email)
	fmt.Printf("phone:     %s\n", profile.Phone)
	fmt.Printf("website:   %s\n", profile.Website)
	fmt.Printf("bio link:  %s\n", profile.BioLink)
	fmt.Printf("private:   %t\n", profile.IsPrivate)
	fmt.Printf("location:  %t\n", profile.LocationPermission)
	fmt.Printf("languages: %s\n", strings.Join(profile.Languages.Slice(), ", "))
	fmt.Printf("avatar:    %s\n", profile.AvatarLink)
	return nil
}

func saveProfile(ctx context.Context, cfg config.Config, client *api.Client, sess session.Session, args []string) error {
	flags := flag.NewFlagSet("save", flag.ContinueOnError)
	name := flags.String("name", "", "display name")
	username := flags.String("username", "", "handle")
	email := flags.String("email", "", "email address")
	phone := flags.String("phone", "", "phone number")
	website := flags.String("website", "", "website link")
	bioLink := flags.String("bio", "", "bio link")
	private := flags.Bool("private", false, "private account")
	location := flags.Bool("location", false, "location sharing permission")
	languages := flags.String("languages", "", "comma-separated language preferences")
	avatarPath := flags.String("avatar", "", "path to an avatar image to upload")
	if err := flags.Parse(args); err != nil {
		return err
	}

	drafts, err := openDraftStore(cfg.Drafts)
	if err != nil {
		return err
	}
	defer drafts.Close()

	controller := syncer.NewController(client, drafts)
	if _, err := controller.RestoreDraft(ctx); err != nil {
		log.Printf("draft restore failed: %v", err)
	}
	if err := controller.Load(ctx, sess); err != nil {
		return err
	}

	profile := controller.Profile()
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			profile.Name = *name
		case "username":
			profile.Username = *username
		case "email":
			profile.Email = *email
		case "phone":
			profile.Phone = *phone
		case "website":
			profile.Website = *website
		case "bio":
			profile.BioLink = *bioLink
		case "private":
			profile.IsPrivate = *private
		case "location":
			profile.LocationPermission = *location
		case "languages":
			profile.Languages = models.NewLanguageSet(models.ParseLanguages(*languages)...)
		}
	})

	if *avatarPath != "" {
		img, err := loadImage(*avatarPath)
		if err != nil {
			return fmt.Errorf("could not read avatar image: %w", err)
		}
		controller.StageAvatar(img)
	}

	status, err := controller.Save(ctx, sess)
	if err != nil {
		return err
	}
	fmt.Println(status)
	return nil
}

func reactToVoice(client *api.Client, sess session.Session, verb string, args []string) error {
	flags := flag.NewFlagSet(verb, flag.ContinueOnError)
	voiceID := flags.Int64("voice", 0, "voice id")
	likeCount := flags.Int("count", 0, "current like count to seed the overlay with")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *voiceID == 0 {
		return fmt.Errorf("-voice is required")
	}

	reactor := reaction.NewOptimistic(client, reaction.GoDispatcher{}, models.Voice{
		ID:        *voiceID,
		LikeCount: *likeCount,
	})
	if verb == "unlike" {
		// Seed the liked state locally; an anonymous toggle never makes a
		// request, so the dispatched call below is the unlike.
		reactor.Toggle(session.Anonymous{})
	}

	liked, count := reactor.Toggle(sess)
	fmt.Printf("liked: %t\ncount: %s\n", liked, utils.FormatCount(count))

	// Local state is already final; waiting only keeps the process alive
	// until the fire-and-forget request has run its course.
	if task := reactor.LastTask(); task != nil {
		<-task.Done()
	}
	return nil
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}
