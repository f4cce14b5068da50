package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/auth"
)

// Claims represents the session transmitted via the signed cookie. There is
// one shared password and no user identity, so the only claim of substance
// is the authenticated flag.
type Claims struct {
	jwt.StandardClaims
	Authenticated bool `json:"authenticated"`
}

// sessionGate blocks access to data operations unless the request carries a
// valid signed session cookie.
func sessionGate(conf *core.Config) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "sessionToken",
		TokenLookup:   "cookie:" + conf.Server.SessionCookieName,
		Claims:        new(Claims),
		ErrorHandler: func(error) error {
			return errUnauthorized
		},
	})
}

// NewSessionClaims builds the claims for a freshly authenticated session.
func NewSessionClaims(conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			ExpiresAt: now.Add(conf.Server.SessionExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Authenticated: true,
	}
}

// GenerateToken generates a signed JWT token string representing the session Claims.
func GenerateToken(claims *Claims, conf *core.Config) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func newSessionCookie(token string, conf *core.Config) *http.Cookie {
	return &http.Cookie{
		Name:     conf.Server.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(conf.Server.SessionExpirationDelta),
		HttpOnly: true,
		Secure:   !conf.Debug,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionValid reports whether the request carries a valid session cookie;
// unlike the gate it never errors, it only answers yes or no.
func sessionValid(ctx echo.Context, conf *core.Config) bool {
	cookie, err := ctx.Cookie(conf.Server.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != middleware.AlgorithmHS256 {
			return nil, errors.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return []byte(conf.SecretKey), nil
	})
	return err == nil && token.Valid && claims.Authenticated
}

type authApi struct {
	svc      *auth.Service
	conf     *core.Config
	validate *validator.Validate
}

func registerAuthAPI(e *echo.Echo, svc *auth.Service, conf *core.Config, validate *validator.Validate) {
	api := authApi{svc: svc, conf: conf, validate: validate}

	e.POST("/authenticate", api.authenticate)
	e.GET("/getAuthentication", api.getAuthentication)
}

type (
	AuthenticateRequest struct {
		Password string `json:"password" validate:"required"`
	}

	AuthResponse struct {
		IsAuthenticated bool `json:"isAuthenticated"`
	}
)

func (api *authApi) authenticate(ctx echo.Context) error {
	var data AuthenticateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AuthenticateRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	if err := api.svc.Authenticate(ctx.Request().Context(), data.Password); err != nil {
		if errors.Cause(err) == auth.ErrInvalidPassword {
			return core.NewValidationError(auth.ErrInvalidPassword)
		}
		return errors.Wrap(err, "authenticating")
	}

	token, err := GenerateToken(NewSessionClaims(api.conf), api.conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	ctx.SetCookie(newSessionCookie(token, api.conf))

	return ctx.JSON(http.StatusOK, AuthResponse{IsAuthenticated: true})
}

func (api *authApi) getAuthentication(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, AuthResponse{IsAuthenticated: sessionValid(ctx, api.conf)})
}
