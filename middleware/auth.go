package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/bakery-api/config"
)

const (
	adminSubjectKey    = "admin_subject"
	validatedClaimsKey = "validated_claims"
)

// CustomClaims contains custom data we want from the token.
type CustomClaims struct {
	Scope string `json:"scope"`
}

// Validate satisfies validator.CustomClaims; scopes are checked by RequireScope.
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// HasScope checks whether our claims have a specific scope.
func (c CustomClaims) HasScope(expectedScope string) bool {
	for _, scope := range strings.Split(c.Scope, " ") {
		if scope == expectedScope {
			return true
		}
	}
	return false
}

// TokenValidator checks a locally issued admin token
type TokenValidator interface {
	ValidateToken(token string) error
	TokensEnabled() bool
}

// RequireAdmin returns the handlers guarding admin routes. With Auth0
// configured a valid Auth0 token carrying the admin scope is required.
// Otherwise a token from POST /admin/verify-password is required when the
// admin service issues them. With neither, admin routes are open.
func RequireAdmin(cfg *config.Config, tokens TokenValidator) ([]gin.HandlerFunc, error) {
	switch {
	case cfg.Auth0Enabled():
		ensure, err := EnsureValidToken(cfg)
		if err != nil {
			return nil, err
		}
		return []gin.HandlerFunc{ensure, RequireScope(cfg.AdminScope)}, nil
	case tokens != nil && tokens.TokensEnabled():
		return []gin.HandlerFunc{RequireAdminToken(tokens)}, nil
	default:
		log.Printf("WARNING: admin routes are not protected; set AUTH0_DOMAIN or ADMIN_TOKEN_SECRET")
		return []gin.HandlerFunc{func(c *gin.Context) { c.Next() }}, nil
	}
}

// EnsureValidToken is a middleware that will check the validity of an Auth0 JWT.
func EnsureValidToken(cfg *config.Config) (gin.HandlerFunc, error) {
	issuerURL, err := url.Parse("https://" + cfg.Auth0Domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.Auth0Audience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("Encountered error while validating JWT: %v", err)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, writeErr := w.Write([]byte(`{"success":false,"error":{"code":"INVALID_TOKEN","message":"Failed to validate JWT."}}`)); writeErr != nil {
			log.Printf("Failed to write error response: %v", writeErr)
		}
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		passed := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			claims := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			c.Set(adminSubjectKey, claims.RegisteredClaims.Subject)
			c.Set(validatedClaimsKey, claims)
			passed = true
		}

		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if !passed {
			// the error handler already wrote the response
			c.Abort()
		}
	}, nil
}

// RequireAdminToken checks the Bearer token against the admin service
func RequireAdminToken(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "MISSING_TOKEN", "Admin token required")
			return
		}
		if err := tokens.ValidateToken(token); err != nil {
			log.Printf("Rejected admin token: %v", err)
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid or expired admin token")
			return
		}

		c.Set(adminSubjectKey, "admin")
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// GetAdminSubject returns who passed the admin check
func GetAdminSubject(c *gin.Context) (string, error) {
	subject, exists := c.Get(adminSubjectKey)
	if !exists {
		return "", &AuthError{Code: "MISSING_SUBJECT", Message: "Admin subject not found in context"}
	}

	subjectStr, ok := subject.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_SUBJECT", Message: "Admin subject is not a string"}
	}

	return subjectStr, nil
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get(validatedClaimsKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// RequireScope is a middleware that checks if the token has a specific scope
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := GetClaims(c)
		if err != nil {
			abortUnauthorized(c, "MISSING_CLAIMS", "Could not retrieve token claims")
			return
		}

		customClaims, ok := claims.CustomClaims.(*CustomClaims)
		if !ok || !customClaims.HasScope(scope) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSUFFICIENT_SCOPE",
					"message": "Insufficient permissions to access this resource",
				},
			})
			return
		}

		c.Next()
	}
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
