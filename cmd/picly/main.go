package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/anonto42/picly/internal/account"
	"github.com/anonto42/picly/internal/api"
	"github.com/anonto42/picly/internal/cache"
	"github.com/anonto42/picly/internal/favorites"
	"github.com/anonto42/picly/internal/feed"
	"github.com/anonto42/picly/internal/logging"
	"github.com/anonto42/picly/internal/media"
	"github.com/anonto42/picly/internal/models"
	"github.com/anonto42/picly/internal/session"
	"github.com/anonto42/picly/pkg/config"
)

const usageText = `picly is a command line client for the Picly photo service.

Usage:

  picly <command> [arguments]

Commands:

  signup        create a new account
  login         sign in and save the session
  password-reset  reset a forgotten password with an emailed code
  logout        clear the saved session
  whoami        show the signed-in user
  feed          list photos with favorite status and like counts
  search        filter the feed by title
  favorites     list the signed-in user's favorited photos
  toggle        favorite or unfavorite a photo
  post          upload images and publish a new photo
  photos        list the signed-in user's own photos
  photo-edit    retitle or relocate one of the signed-in user's photos
  photo-delete  delete one of the signed-in user's photos
  comments      list comments on a photo
  comment       add a comment to a photo
  comment-delete remove one of the signed-in user's comments
  profile       show the signed-in user's profile
  profile-edit  update name, avatar or address
  map           list photo locations as map pins
  albums        list albums, create one, or add a photo to one
`

// app bundles the shared dependencies every command needs.
type app struct {
	cfg      *config.Config
	client   *api.Client
	kv       *cache.SQLiteStore
	sessions *session.Manager
	svc      *favorites.Service
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	ctx := logging.WithLogger(context.Background(), logger)

	kv, err := cache.OpenSQLite(cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "picly: open cache: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	a := &app{
		cfg:      cfg,
		client:   client,
		kv:       kv,
		sessions: session.NewManager(kv),
		svc:      favorites.NewService(client, kv),
	}

	cmd, args := os.Args[1], os.Args[2:]
	if err := a.run(ctx, cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "picly: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup":
		return a.signup(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "password-reset":
		return a.passwordReset(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "feed":
		return a.feed(ctx, "")
	case "search":
		return a.search(ctx, args)
	case "favorites":
		return a.favorites(ctx)
	case "toggle":
		return a.toggle(ctx, args)
	case "post":
		return a.post(ctx, args)
	case "photos":
		return a.photos(ctx)
	case "photo-edit":
		return a.photoEdit(ctx, args)
	case "photo-delete":
		return a.photoDelete(ctx, args)
	case "comments":
		return a.comments(ctx, args)
	case "comment":
		return a.comment(ctx, args)
	case "comment-delete":
		return a.commentDelete(ctx, args)
	case "profile":
		return a.profile(ctx)
	case "profile-edit":
		return a.profileEdit(ctx, args)
	case "map":
		return a.mapPins(ctx)
	case "albums":
		return a.albums(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// currentUser returns the signed-in user or an error telling the caller
// to log in first.
func (a *app) currentUser(ctx context.Context) (*models.User, error) {
	user, ok := a.sessions.Current(ctx)
	if !ok {
		return nil, errors.New("not signed in, run `picly login` first")
	}
	return user, nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	wizard := account.NewWizard(a.client, a.otpSender())

	form := account.Form{
		Name:     *name,
		Email:    *email,
		Phone:    *phone,
		Password: *password,
	}
	if err := wizard.Begin(ctx, form); err != nil {
		return err
	}

	code, err := promptCode(*email)
	if err != nil {
		return err
	}

	user, err := wizard.Verify(ctx, code)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome to Picly, %s! You can now sign in.\n", user.Name)
	return nil
}

func (a *app) otpSender() *account.MailSender {
	return &account.MailSender{
		Endpoint:   a.cfg.OTPEndpoint,
		ServiceID:  a.cfg.OTPServiceID,
		TemplateID: a.cfg.OTPTemplateID,
		PublicKey:  a.cfg.OTPPublicKey,
	}
}

func promptCode(email string) (string, error) {
	fmt.Printf("A verification code was sent to %s.\n", email)
	fmt.Print("Enter the code: ")
	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read verification code: %w", err)
	}
	return strings.TrimSpace(code), nil
}

func (a *app) passwordReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("password-reset", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("usage: picly password-reset -email <email> -password <new-password>")
	}

	flow := account.NewResetFlow(a.client, a.otpSender())
	if err := flow.Begin(ctx, *email); err != nil {
		return err
	}

	code, err := promptCode(*email)
	if err != nil {
		return err
	}
	if err := flow.Verify(ctx, code, *password); err != nil {
		return err
	}
	fmt.Println("Password updated. Sign in with the new password.")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := account.Login(ctx, a.client, *email, *password)
	if err != nil {
		return err
	}
	if _, err := a.sessions.Establish(ctx, *user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Account.Email)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.sessions.TearDown(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (id %s)\n", user.Name, user.Account.Email, user.ID)
	return nil
}

func (a *app) feed(ctx context.Context, query string) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	loader := feed.NewLoader(a.client, a.svc, a.kv)
	f, err := loader.Load(ctx, user.ID)
	if err != nil && f == nil {
		return err
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "picly: favorite status unavailable, showing plain feed")
	}

	photos := f.Photos
	if query != "" {
		photos = feed.Search(photos, query)
	}
	for _, p := range photos {
		marker := " "
		if p.IsFavorite {
			marker = "*"
		}
		fmt.Printf("%s %-24s  %-10s  likes:%d\n", marker, p.ID.Hex(), p.Title, f.Likes[p.ID.Hex()])
	}
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: picly search <query>")
	}
	return a.feed(ctx, strings.Join(args, " "))
}

func (a *app) favorites(ctx context.Context) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	favs, err := a.client.FavoritesByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, f := range favs {
		fmt.Printf("%-24s  %s\n", f.Photo.ID.Hex(), f.Photo.Title)
	}
	return nil
}

func (a *app) toggle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: picly toggle <photo-id>")
	}
	photoID := args[0]

	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	result, err := a.svc.ToggleFavorite(ctx, photoID, user.ID)
	if err != nil {
		return err
	}

	delta := 1
	if !result.IsFavorite {
		delta = -1
	}
	likes, err := a.svc.SyncLikeCountShadow(ctx, photoID, delta)
	if err != nil {
		fmt.Fprintf(os.Stderr, "picly: like count not updated: %v\n", err)
	}

	if result.IsFavorite {
		fmt.Printf("Favorited %s (likes: %d)\n", photoID, likes[photoID])
	} else {
		fmt.Printf("Unfavorited %s (likes: %d)\n", photoID, likes[photoID])
	}
	return nil
}

func (a *app) post(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	title := fs.String("title", "", "photo title")
	lat := fs.String("lat", "", "latitude (optional)")
	lng := fs.String("lng", "", "longitude (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if *title == "" || len(paths) == 0 {
		return errors.New("usage: picly post -title <title> [-lat <lat> -lng <lng>] <image>...")
	}

	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	images := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		images = append(images, data)
	}

	uploader, err := media.NewS3Uploader(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("media storage: %w", err)
	}
	img, err := media.PrepareImage(ctx, uploader, user.ID, images)
	if err != nil {
		return fmt.Errorf("upload images: %w", err)
	}

	req := models.CreatePhotoRequest{
		Title:  *title,
		Image:  img,
		UserID: user.ID,
	}
	if *lat != "" && *lng != "" {
		req.Location = &models.GeoPoint{Latitude: *lat, Longitude: *lng}
	}

	photo, err := a.client.CreatePhoto(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Posted %s (%s)\n", photo.Title, photo.ID.Hex())
	return nil
}

func (a *app) photos(ctx context.Context) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	photos, err := a.client.PhotosByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, p := range photos {
		fmt.Printf("%-24s  %s\n", p.ID.Hex(), p.Title)
	}
	return nil
}

// requireOwnPhoto verifies the photo belongs to user. The store does
// not enforce ownership, so mutations check against the user's own
// list first.
func (a *app) requireOwnPhoto(ctx context.Context, user *models.User, photoID string) error {
	own, err := a.client.PhotosByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, p := range own {
		if p.ID.Hex() == photoID {
			return nil
		}
	}
	return fmt.Errorf("photo %s is not yours", photoID)
}

func (a *app) photoEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("photo-edit", flag.ExitOnError)
	photoID := fs.String("photo", "", "photo id")
	title := fs.String("title", "", "new title")
	lat := fs.String("lat", "", "new latitude")
	lng := fs.String("lng", "", "new longitude")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *photoID == "" || (*title == "" && (*lat == "" || *lng == "")) {
		return errors.New("usage: picly photo-edit -photo <photo-id> [-title <title>] [-lat <lat> -lng <lng>]")
	}

	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := a.requireOwnPhoto(ctx, user, *photoID); err != nil {
		return err
	}

	req := models.UpdatePhotoRequest{Title: *title}
	if *lat != "" && *lng != "" {
		req.Location = &models.GeoPoint{Latitude: *lat, Longitude: *lng}
	}

	photo, err := a.client.UpdatePhoto(ctx, *photoID, req)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s (%s)\n", photo.Title, photo.ID.Hex())
	return nil
}

func (a *app) photoDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: picly photo-delete <photo-id>")
	}
	photoID := args[0]

	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := a.requireOwnPhoto(ctx, user, photoID); err != nil {
		return err
	}

	if err := a.client.DeletePhoto(ctx, photoID); err != nil {
		return err
	}
	fmt.Println("Photo deleted.")
	return nil
}

func (a *app) comments(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: picly comments <photo-id>")
	}
	comments, err := a.client.CommentsByPhoto(ctx, args[0])
	if err != nil {
		return err
	}
	for _, c := range comments {
		fmt.Printf("[%s] %s\n", c.UserID, c.Text)
	}
	return nil
}

func (a *app) comment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("comment", flag.ExitOnError)
	photoID := fs.String("photo", "", "photo id")
	text := fs.String("text", "", "comment text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *photoID == "" || *text == "" {
		return errors.New("usage: picly comment -photo <photo-id> -text <text>")
	}

	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	// Ratings are not collected by the client. Comments are always
	// submitted with the maximum rate.
	_, err = a.client.CreateComment(ctx, models.CreateCommentRequest{
		PhotoID: *photoID,
		UserID:  user.ID,
		Text:    *text,
		Rate:    5,
	})
	if err != nil {
		return err
	}
	fmt.Println("Comment posted.")
	return nil
}

func (a *app) commentDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("comment-delete", flag.ExitOnError)
	photoID := fs.String("photo", "", "photo id the comment is on")
	commentID := fs.String("comment", "", "comment id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *photoID == "" || *commentID == "" {
		return errors.New("usage: picly comment-delete -photo <photo-id> -comment <comment-id>")
	}

	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	comments, err := a.client.CommentsByPhoto(ctx, *photoID)
	if err != nil {
		return err
	}
	for _, c := range comments {
		if c.ID.Hex() != *commentID {
			continue
		}
		if c.UserID != user.ID {
			return fmt.Errorf("comment %s is not yours", *commentID)
		}
		if err := a.client.DeleteComment(ctx, *commentID); err != nil {
			return err
		}
		fmt.Println("Comment deleted.")
		return nil
	}
	return fmt.Errorf("no comment %s on photo %s", *commentID, *photoID)
}

func (a *app) profile(ctx context.Context) error {
	cached, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	// The store has the authoritative record. Fall back to the cached
	// copy when it is unreachable.
	user, err := a.client.GetUser(ctx, cached.ID)
	if err != nil {
		user = cached
	}

	fmt.Printf("Name:    %s\n", user.Name)
	fmt.Printf("Email:   %s\n", user.Account.Email)
	fmt.Printf("Avatar:  %s\n", user.Avatar)
	fmt.Printf("Address: %s, %s %d\n", user.Address.Street, user.Address.City, user.Address.ZipCode)
	return nil
}

func (a *app) profileEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile-edit", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	avatar := fs.String("avatar", "", "avatar URL")
	avatarFile := fs.String("avatar-file", "", "local image to upload as the avatar")
	street := fs.String("street", "", "street")
	city := fs.String("city", "", "city")
	zip := fs.Int("zip", 0, "zip code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	if *avatarFile != "" {
		data, err := os.ReadFile(*avatarFile)
		if err != nil {
			return fmt.Errorf("read avatar image: %w", err)
		}
		uploader, err := media.NewS3Uploader(ctx, a.cfg)
		if err != nil {
			return fmt.Errorf("media storage: %w", err)
		}
		thumb, err := media.Thumbnail(data)
		if err != nil {
			return fmt.Errorf("resize avatar: %w", err)
		}
		url, err := uploader.Upload(ctx, user.ID+"_avatar.jpg", bytes.NewReader(thumb))
		if err != nil {
			return fmt.Errorf("upload avatar: %w", err)
		}
		*avatar = url
	}

	req := models.UpdateUserRequest{Name: *name, Avatar: *avatar}
	if *street != "" || *city != "" || *zip != 0 {
		addr := user.Address
		if *street != "" {
			addr.Street = *street
		}
		if *city != "" {
			addr.City = *city
		}
		if *zip != 0 {
			addr.ZipCode = *zip
		}
		req.Address = &addr
	}

	updated, err := a.client.UpdateUser(ctx, user.ID, req)
	if err != nil {
		return err
	}
	if _, err := a.sessions.Establish(ctx, *updated); err != nil {
		fmt.Fprintf(os.Stderr, "picly: cached profile not refreshed: %v\n", err)
	}
	fmt.Println("Profile updated.")
	return nil
}

func (a *app) mapPins(ctx context.Context) error {
	photos, err := a.client.ListPhotos(ctx)
	if err != nil {
		return err
	}
	for _, pin := range feed.Pins(photos) {
		fmt.Printf("%-10s  %9.5f  %10.5f\n", pin.Photo.Title, pin.Latitude, pin.Longitude)
	}
	return nil
}

func (a *app) albums(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("albums", flag.ExitOnError)
	create := fs.String("create", "", "create an album with the given title")
	add := fs.String("add", "", "album id to add a photo to")
	photoID := fs.String("photo", "", "photo id to add")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	switch {
	case *create != "":
		album, err := a.client.CreateAlbum(ctx, *create, user.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Created album %s (%s)\n", album.Title, album.ID.Hex())
		return nil
	case *add != "":
		if *photoID == "" {
			return errors.New("usage: picly albums -add <album-id> -photo <photo-id>")
		}
		album, err := a.client.AddPhotoToAlbum(ctx, *add, *photoID)
		if err != nil {
			return err
		}
		fmt.Printf("Album %s now holds %d photos\n", album.Title, len(album.PhotoIDs))
		return nil
	default:
		albums, err := a.client.AlbumsByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, al := range albums {
			fmt.Printf("%-24s  %-20s  %d photos\n", al.ID.Hex(), al.Title, len(al.PhotoIDs))
		}
		return nil
	}
}
