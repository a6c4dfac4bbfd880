package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"daffodil-hmo/internal/core/cache"
	"daffodil-hmo/internal/domain"
	"daffodil-hmo/internal/mail"
	"daffodil-hmo/pkg/utils"
)

type AuthService struct {
	users   domain.UserRepository
	cache   *cache.Cache
	mailer  mail.Sender
	baseURL string
	linkTTL time.Duration
}

func NewAuthService(users domain.UserRepository, c *cache.Cache, mailer mail.Sender, baseURL string, linkTTL time.Duration) *AuthService {
	return &AuthService{users: users, cache: c, mailer: mailer, baseURL: baseURL, linkTTL: linkTTL}
}

// SignIn upserts the user for a verified identity (Google profile or a
// confirmed magic link). First sign-in creates the record; later Google
// sign-ins refresh the profile image.
func (s *AuthService) SignIn(email, name, image string) (*domain.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, false, domain.ErrInvalidInput
	}
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, false, err
	}
	if u != nil {
		if image != "" && image != u.Image {
			u.Image = image
			if err := s.users.Update(u); err != nil {
				return nil, false, err
			}
		}
		return u, false, nil
	}
	if name == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		} else {
			name = "user"
		}
	}
	u = &domain.User{
		ID:    utils.NewID(),
		Email: email,
		Name:  name,
		Image: image,
		Role:  domain.RoleUser,
	}
	if err := s.users.Create(u); err != nil {
		// concurrent first sign-in hits the unique email index; re-read
		if u2, err2 := s.users.FindByEmail(email); err2 == nil && u2 != nil {
			return u2, false, nil
		}
		return nil, false, err
	}
	return u, true, nil
}

// Me resolves the session's user record.
func (s *AuthService) Me(userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func magicLinkKey(email string) string { return "magiclink:" + email }

// RequestMagicLink issues a one-time sign-in link and emails it. Only the
// bcrypt hash of the token is kept, under a TTL.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.ErrInvalidInput
	}
	token := utils.NewID()
	if err := s.cache.RDB.Set(ctx, magicLinkKey(email), utils.HashToken(token), s.linkTTL).Err(); err != nil {
		return err
	}
	link := fmt.Sprintf("%s/api/v1/auth/verify?email=%s&token=%s",
		strings.TrimRight(s.baseURL, "/"), url.QueryEscape(email), token)
	body, err := mail.Render("magic_link", map[string]any{
		"Link":       link,
		"TTLMinutes": int(s.linkTTL.Minutes()),
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(email, "Your sign-in link", body)
}

// VerifyMagicLink consumes the link and signs the user in.
func (s *AuthService) VerifyMagicLink(ctx context.Context, email, token string) (*domain.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || token == "" {
		return nil, false, domain.ErrInvalidInput
	}
	hashed, err := s.cache.RDB.GetDel(ctx, magicLinkKey(email)).Result()
	if err == redis.Nil {
		return nil, false, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, false, err
	}
	if !utils.CheckToken(token, hashed) {
		return nil, false, domain.ErrUnauthorized
	}
	return s.SignIn(email, "", "")
}

// EnsureAdmins promotes the configured bootstrap emails. Admin access is a
// role on the user record, checked from JWT claims, never an email match at
// request time.
func (s *AuthService) EnsureAdmins(emails []string) error {
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		u, _, err := s.SignIn(e, "", "")
		if err != nil {
			return err
		}
		if u.Role != domain.RoleAdmin {
			if err := s.users.SetRole(u.ID, domain.RoleAdmin); err != nil {
				return err
			}
		}
	}
	return nil
}
