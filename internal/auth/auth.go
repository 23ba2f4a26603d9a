// Copyright 2024 Bonchef Industrial
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	cache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/bonchef/maintenance-api/internal/helpers"
	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

const userKey = "auth.user"

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// Authenticator issues and validates bearer tokens and carries the gin
// middleware that resolves them to users. Resolved users are cached briefly
// so a busy client does not hit the user collection on every request.
type Authenticator struct {
	store  *store.Store
	secret []byte
	expiry time.Duration
	users  *cache.Cache
}

func New(st *store.Store, secret string, expiry time.Duration) *Authenticator {
	return &Authenticator{
		store:  st,
		secret: []byte(secret),
		expiry: expiry,
		users:  cache.New(30*time.Second, time.Minute),
	}
}

// HashPassword bcrypt-hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a token whose subject is the user's email.
func (a *Authenticator) IssueToken(user models.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.expiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// ResolveToken validates a token and loads its user.
func (a *Authenticator) ResolveToken(ctx context.Context, tokenString string) (models.User, error) {
	if cached, found := a.users.Get(tokenString); found {
		return cached.(models.User), nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return models.User{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return models.User{}, ErrInvalidToken
	}

	user, err := a.store.Users.FindOne(ctx, bson.M{"email": claims.Subject})
	if errors.Is(err, store.ErrNoDocument) {
		return models.User{}, ErrInvalidToken
	}
	if err != nil {
		return models.User{}, err
	}

	a.users.SetDefault(tokenString, user)
	return user, nil
}

// Middleware requires a valid Bearer token and stashes the resolved user in
// the request context.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			helpers.HandleUnauthorized(c, errors.New("missing bearer token"))
			return
		}
		user, err := a.ResolveToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			helpers.HandleUnauthorized(c, ErrInvalidToken)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. It must run after Middleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		helpers.HandleForbidden(c, errors.New("insufficient permissions"))
	}
}

// CurrentUser returns the authenticated user stored by Middleware.
func CurrentUser(c *gin.Context) models.User {
	user, _ := c.Get(userKey)
	u, _ := user.(models.User)
	return u
}
